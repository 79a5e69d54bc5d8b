package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/internal/order/usecase/command"
	"github.com/shipdrop/backend/internal/order/usecase/query"
	wholesalerdomain "github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// OrderHandler handles HTTP requests for the order router
type OrderHandler struct {
	createHandler    *command.CreateOrderHandler
	fulfillHandler   *command.FulfillOrderHandler
	dispatchHandler  *command.DispatchOrderHandler
	shippedHandler   *command.MarkShippedHandler
	deliveredHandler *command.MarkDeliveredHandler
	failedHandler    *command.MarkFailedHandler

	listHandler *query.ListOrdersHandler
	getHandler  *query.GetOrderHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orders domain.OrderRepository,
	products inventorydomain.ProductRepository,
	wholesalers wholesalerdomain.WholesalerRepository,
	api wholesalerdomain.APIClient,
	events command.EventPublisher,
) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_requests_total",
			Help: "Total number of requests to the order router",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_request_duration_seconds",
			Help:    "Duration of order router requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter, requestLatency)

	return &OrderHandler{
		createHandler:    command.NewCreateOrderHandler(orders, products, wholesalers, events),
		fulfillHandler:   command.NewFulfillOrderHandler(orders, events),
		dispatchHandler:  command.NewDispatchOrderHandler(orders, wholesalers, api, events),
		shippedHandler:   command.NewMarkShippedHandler(orders, events),
		deliveredHandler: command.NewMarkDeliveredHandler(orders, events),
		failedHandler:    command.NewMarkFailedHandler(orders, events),
		listHandler:      query.NewListOrdersHandler(orders),
		getHandler:       query.NewGetOrderHandler(orders),
		requestCounter:   requestCounter,
		requestLatency:   requestLatency,
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

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router, authenticate func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", authenticate(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", authenticate(h.CreateOrder))).Methods("POST")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", authenticate(h.GetOrder))).Methods("GET")
	router.HandleFunc("/api/orders/{id}/fulfill", h.metricsMiddleware("/api/orders/{id}/fulfill", authenticate(h.FulfillOrder))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/dispatch", h.metricsMiddleware("/api/orders/{id}/dispatch", authenticate(h.DispatchOrder))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/ship", h.metricsMiddleware("/api/orders/{id}/ship", authenticate(h.MarkShipped))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/deliver", h.metricsMiddleware("/api/orders/{id}/deliver", authenticate(h.MarkDelivered))).Methods("POST")
	router.HandleFunc("/api/orders/{id}/fail", h.metricsMiddleware("/api/orders/{id}/fail", authenticate(h.MarkFailed))).Methods("POST")
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		Text:   r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"orders": orders,
			"total":  len(orders),
		},
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.getHandler.Handle(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req command.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	order, err := h.createHandler.Handle(r.Context(), req)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create order")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// FulfillOrder handles POST /api/orders/{id}/fulfill
func (h *OrderHandler) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.fulfillHandler.Handle(r.Context(), command.FulfillOrderCommand{ID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Str("order_id", id).Msg("Failed to fulfill order")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order fulfilled successfully",
		Data:    order,
	})
}

// DispatchOrder handles POST /api/orders/{id}/dispatch
func (h *OrderHandler) DispatchOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.dispatchHandler.Handle(r.Context(), command.DispatchOrderCommand{ID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Str("order_id", id).Msg("Failed to dispatch order")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order dispatched successfully",
		Data:    order,
	})
}

// MarkShipped handles POST /api/orders/{id}/ship
func (h *OrderHandler) MarkShipped(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		TrackingNumber    string     `json:"tracking_number"`
		EstimatedDelivery *time.Time `json:"estimated_delivery"`
	}
	if r.Body != nil {
		// Body is optional for manual shipment without tracking details.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	order, err := h.shippedHandler.Handle(r.Context(), command.MarkShippedCommand{
		ID:                id,
		TrackingNumber:    req.TrackingNumber,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("order_id", id).Msg("Failed to mark order shipped")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order marked as shipped",
		Data:    order,
	})
}

// MarkDelivered handles POST /api/orders/{id}/deliver
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.deliveredHandler.Handle(r.Context(), command.MarkDeliveredCommand{ID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Str("order_id", id).Msg("Failed to mark order delivered")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order marked as delivered",
		Data:    order,
	})
}

// MarkFailed handles POST /api/orders/{id}/fail
func (h *OrderHandler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.failedHandler.Handle(r.Context(), command.MarkFailedCommand{ID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Str("order_id", id).Msg("Failed to mark order failed")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order marked as failed",
		Data:    order,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
