package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/internal/wholesaler/usecase/command"
	"github.com/shipdrop/backend/internal/wholesaler/usecase/query"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// WholesalerHandler handles HTTP requests for the wholesaler registry
type WholesalerHandler struct {
	addHandler    *command.AddWholesalerHandler
	updateHandler *command.UpdateWholesalerHandler
	activeHandler *command.SetActiveHandler
	deleteHandler *command.DeleteWholesalerHandler
	testHandler   *command.TestConnectionHandler

	listHandler *query.ListWholesalersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewWholesalerHandler creates a new wholesaler handler
func NewWholesalerHandler(repo domain.WholesalerRepository, api domain.APIClient, orders domain.OpenOrderCounter) *WholesalerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesaler_requests_total",
			Help: "Total number of requests to the wholesaler registry",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wholesaler_request_duration_seconds",
			Help:    "Duration of wholesaler registry requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter, requestLatency)

	return &WholesalerHandler{
		addHandler:     command.NewAddWholesalerHandler(repo),
		updateHandler:  command.NewUpdateWholesalerHandler(repo),
		activeHandler:  command.NewSetActiveHandler(repo),
		deleteHandler:  command.NewDeleteWholesalerHandler(repo, orders),
		testHandler:    command.NewTestConnectionHandler(repo, api),
		listHandler:    query.NewListWholesalersHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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

func (h *WholesalerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *WholesalerHandler) RegisterRoutes(router *mux.Router, authenticate func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/wholesalers", h.metricsMiddleware("/api/wholesalers", authenticate(h.ListWholesalers))).Methods("GET")
	router.HandleFunc("/api/wholesalers", h.metricsMiddleware("/api/wholesalers", authenticate(h.AddWholesaler))).Methods("POST")
	router.HandleFunc("/api/wholesalers/{id}", h.metricsMiddleware("/api/wholesalers/{id}", authenticate(h.UpdateWholesaler))).Methods("PUT")
	router.HandleFunc("/api/wholesalers/{id}", h.metricsMiddleware("/api/wholesalers/{id}", authenticate(h.DeleteWholesaler))).Methods("DELETE")
	router.HandleFunc("/api/wholesalers/{id}/test", h.metricsMiddleware("/api/wholesalers/{id}/test", authenticate(h.TestConnection))).Methods("POST")
	router.HandleFunc("/api/wholesalers/{id}/active", h.metricsMiddleware("/api/wholesalers/{id}/active", authenticate(h.SetActive))).Methods("PATCH")
}

// ListWholesalers handles GET /api/wholesalers
func (h *WholesalerHandler) ListWholesalers(w http.ResponseWriter, r *http.Request) {
	wholesalers, err := h.listHandler.Handle(query.ListWholesalersQuery{
		ActiveOnly: r.URL.Query().Get("active") == "true",
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list wholesalers")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list wholesalers"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"wholesalers": wholesalers,
			"total":       len(wholesalers),
		},
	})
}

// AddWholesaler handles POST /api/wholesalers
func (h *WholesalerHandler) AddWholesaler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		APIEndpoint string `json:"api_endpoint"`
		APIKey      string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	wholesaler, err := h.addHandler.Handle(command.AddWholesalerCommand{
		Name:        req.Name,
		APIEndpoint: req.APIEndpoint,
		APIKey:      req.APIKey,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add wholesaler")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Wholesaler added successfully",
		Data:    wholesaler,
	})
}

// UpdateWholesaler handles PUT /api/wholesalers/{id}
func (h *WholesalerHandler) UpdateWholesaler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		APIEndpoint string `json:"api_endpoint"`
		APIKey      string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	wholesaler, err := h.updateHandler.Handle(command.UpdateWholesalerCommand{
		ID:          id,
		Name:        req.Name,
		APIEndpoint: req.APIEndpoint,
		APIKey:      req.APIKey,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update wholesaler")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Wholesaler updated successfully",
		Data:    wholesaler,
	})
}

// TestConnection handles POST /api/wholesalers/{id}/test
func (h *WholesalerHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	result, err := h.testHandler.Handle(r.Context(), command.TestConnectionCommand{ID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("wholesaler_id", id).Msg("Connection test failed")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// SetActive handles PATCH /api/wholesalers/{id}/active
func (h *WholesalerHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	wholesaler, err := h.activeHandler.Handle(command.SetActiveCommand{ID: id, Active: req.Active})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to toggle wholesaler")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Wholesaler updated successfully",
		Data:    wholesaler,
	})
}

// DeleteWholesaler handles DELETE /api/wholesalers/{id}
func (h *WholesalerHandler) DeleteWholesaler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteWholesalerCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete wholesaler")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Wholesaler deleted successfully"})
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid wholesaler ID"})
		return 0, false
	}
	return uint(id), true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
