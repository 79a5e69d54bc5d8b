package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shipdrop/backend/internal/analytics"
	"github.com/shipdrop/backend/internal/analytics/usecase/query"
	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// AnalyticsHandler handles HTTP requests for the analytics aggregator
type AnalyticsHandler struct {
	profitHandler *query.ProfitSummaryHandler
	topHandler    *query.TopProductsHandler
	trendHandler  *query.SalesTrendHandler
	cache         *analytics.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	cacheHits      *prometheus.CounterVec
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(orders orderdomain.OrderRepository, cache *analytics.Cache) *AnalyticsHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_requests_total",
			Help: "Total number of requests to the analytics aggregator",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_request_duration_seconds",
			Help:    "Duration of analytics requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	cacheHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_hits_total",
			Help: "Analytics cache lookups by outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	prometheus.MustRegister(requestCounter, requestLatency, cacheHits)

	return &AnalyticsHandler{
		profitHandler:  query.NewProfitSummaryHandler(orders),
		topHandler:     query.NewTopProductsHandler(orders),
		trendHandler:   query.NewSalesTrendHandler(orders),
		cache:          cache,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		cacheHits:      cacheHits,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *AnalyticsHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router, authenticate func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/analytics/profit", h.metricsMiddleware("/api/analytics/profit", authenticate(h.ProfitSummary))).Methods("GET")
	router.HandleFunc("/api/analytics/top-products", h.metricsMiddleware("/api/analytics/top-products", authenticate(h.TopProducts))).Methods("GET")
	router.HandleFunc("/api/analytics/sales-trend", h.metricsMiddleware("/api/analytics/sales-trend", authenticate(h.SalesTrend))).Methods("GET")
}

// ProfitSummary handles GET /api/analytics/profit
func (h *AnalyticsHandler) ProfitSummary(w http.ResponseWriter, r *http.Request) {
	const key = "analytics:profit"

	var cached query.ProfitSummary
	if h.cache.Get(r.Context(), key, &cached) {
		h.cacheHits.WithLabelValues("/api/analytics/profit", "hit").Inc()
		respondJSON(w, http.StatusOK, Response{Success: true, Data: cached})
		return
	}
	h.cacheHits.WithLabelValues("/api/analytics/profit", "miss").Inc()

	summary, err := h.profitHandler.Handle(r.Context())
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute profit summary")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: "Failed to compute profit summary"})
		return
	}

	h.cache.Set(r.Context(), key, summary)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: summary})
}

// TopProducts handles GET /api/analytics/top-products
func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid limit"})
			return
		}
		limit = parsed
	}

	key := fmt.Sprintf("analytics:top-products:%d", limit)

	var cached []query.TopProduct
	if h.cache.Get(r.Context(), key, &cached) {
		h.cacheHits.WithLabelValues("/api/analytics/top-products", "hit").Inc()
		respondJSON(w, http.StatusOK, Response{Success: true, Data: cached})
		return
	}
	h.cacheHits.WithLabelValues("/api/analytics/top-products", "miss").Inc()

	products, err := h.topHandler.Handle(r.Context(), limit)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute top products")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.cache.Set(r.Context(), key, products)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// SalesTrend handles GET /api/analytics/sales-trend
func (h *AnalyticsHandler) SalesTrend(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	key := "analytics:sales-trend:" + bucket

	var cached []query.TrendPoint
	if h.cache.Get(r.Context(), key, &cached) {
		h.cacheHits.WithLabelValues("/api/analytics/sales-trend", "hit").Inc()
		respondJSON(w, http.StatusOK, Response{Success: true, Data: cached})
		return
	}
	h.cacheHits.WithLabelValues("/api/analytics/sales-trend", "miss").Inc()

	trend, err := h.trendHandler.Handle(r.Context(), bucket)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute sales trend")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.cache.Set(r.Context(), key, trend)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: trend})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
