package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/inventory/selection"
	"github.com/shipdrop/backend/internal/inventory/usecase/command"
	"github.com/shipdrop/backend/internal/inventory/usecase/query"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// InventoryHandler handles HTTP requests for the inventory registry
type InventoryHandler struct {
	createHandler      *command.CreateProductHandler
	updateHandler      *command.UpdateProductHandler
	deleteHandler      *command.DeleteProductHandler
	updateStockHandler *command.UpdateStockHandler

	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	statsHandler      *query.GetStatsHandler

	repo      domain.ProductRepository
	selection *selection.Set

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(repo domain.ProductRepository, lowStockThreshold int) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_requests_total",
			Help: "Total number of requests to the inventory registry",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_total_products",
			Help: "Total number of products in the registry",
		},
	)

	prometheus.MustRegister(requestCounter, requestLatency, totalProducts)

	return &InventoryHandler{
		createHandler:      command.NewCreateProductHandler(repo),
		updateHandler:      command.NewUpdateProductHandler(repo),
		deleteHandler:      command.NewDeleteProductHandler(repo),
		updateStockHandler: command.NewUpdateStockHandler(repo),
		getProductHandler:  query.NewGetProductHandler(repo, lowStockThreshold),
		listHandler:        query.NewListProductsHandler(repo, lowStockThreshold),
		statsHandler:       query.NewGetStatsHandler(repo, lowStockThreshold),
		repo:               repo,
		selection:          selection.NewSet(),
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		totalProducts:      totalProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *InventoryHandler) RegisterRoutes(router *mux.Router, authenticate func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", authenticate(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", authenticate(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/products/selection", h.metricsMiddleware("/api/products/selection", authenticate(h.UpdateSelection))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", authenticate(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", authenticate(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", authenticate(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", authenticate(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", authenticate(h.UpdateStock))).Methods("PATCH")
}

type productRequest struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	ImageURL     string  `json:"image_url"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Stock        int     `json:"stock"`
	WholesalerID uint    `json:"wholesaler_id"`
	Category     string  `json:"category"`
}

// CreateProduct handles POST /api/products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Name:         req.Name,
		SKU:          req.SKU,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		Cost:         req.Cost,
		Stock:        req.Stock,
		WholesalerID: req.WholesalerID,
		Category:     req.Category,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create product")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}

	products, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	selected := h.selection.IDs()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    len(products),
			"selected": selected,
		},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *InventoryHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:           id,
		Name:         req.Name,
		SKU:          req.SKU,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		Cost:         req.Cost,
		Stock:        req.Stock,
		WholesalerID: req.WholesalerID,
		Category:     req.Category,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update product")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete product")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.selection.Deselect(id)
	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// UpdateStock handles PATCH /api/products/{id}/stock
func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.updateStockHandler.Handle(command.UpdateStockCommand{ProductID: id, Stock: req.Stock}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update stock")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock updated successfully"})
}

// UpdateSelection handles POST /api/products/selection
func (h *InventoryHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"` // select, deselect, select-all, clear
		IDs    []uint `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	switch req.Action {
	case "select":
		h.selection.Select(req.IDs...)
	case "deselect":
		h.selection.Deselect(req.IDs...)
	case "select-all":
		h.selection.SelectAll(req.IDs)
	case "clear":
		h.selection.Clear()
	default:
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Unknown selection action"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"selected": h.selection.IDs()},
	})
}

// GetStats handles GET /api/products/stats
func (h *InventoryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get inventory stats")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to get statistics"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

func (h *InventoryHandler) updateProductsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
