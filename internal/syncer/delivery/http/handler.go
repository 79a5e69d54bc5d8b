package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shipdrop/backend/internal/syncer"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// SyncHandler handles HTTP requests for the sync coordinator
type SyncHandler struct {
	coordinator *syncer.Coordinator

	requestCounter *prometheus.CounterVec
	syncDuration   prometheus.Histogram
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(coordinator *syncer.Coordinator) *SyncHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_requests_total",
			Help: "Total number of requests to the sync coordinator",
		},
		[]string{"method", "endpoint", "status"},
	)

	syncDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Duration of full inventory sync runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	prometheus.MustRegister(requestCounter, syncDuration)

	return &SyncHandler{
		coordinator:    coordinator,
		requestCounter: requestCounter,
		syncDuration:   syncDuration,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *SyncHandler) RegisterRoutes(router *mux.Router, authenticate func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/api/sync", authenticate(h.SyncInventory)).Methods("POST")
	router.HandleFunc("/api/sync/status", authenticate(h.SyncStatus)).Methods("GET")
}

// SyncInventory handles POST /api/sync
func (h *SyncHandler) SyncInventory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.coordinator.SyncInventory(r.Context())

	status := http.StatusOK
	if err != nil {
		status = apperrors.HTTPStatus(err)
	}
	h.requestCounter.WithLabelValues(r.Method, "/api/sync", strconv.Itoa(status)).Inc()
	h.syncDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Logger.Error().Err(err).Msg("Inventory sync request failed")
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Inventory sync finished",
		Data:    result,
	})
}

// SyncStatus handles GET /api/sync/status
func (h *SyncHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	h.requestCounter.WithLabelValues(r.Method, "/api/sync/status", strconv.Itoa(http.StatusOK)).Inc()
	respondJSON(w, http.StatusOK, Response{Success: true, Data: h.coordinator.Status()})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
