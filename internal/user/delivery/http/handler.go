package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/internal/user/usecase/command"
	"github.com/shipdrop/backend/internal/user/usecase/query"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// UserHandler handles HTTP requests for the identity store
type UserHandler struct {
	signupHandler  *command.SignupHandler
	loginHandler   *command.LoginHandler
	logoutHandler  *command.LogoutHandler
	currentHandler *query.CurrentUserHandler
	middleware     *AuthMiddleware

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository, sessions domain.SessionStore) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_requests_total",
			Help: "Total number of requests to the identity store",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_request_duration_seconds",
			Help:    "Duration of identity store requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter, requestLatency)

	return &UserHandler{
		signupHandler:  command.NewSignupHandler(repo, sessions),
		loginHandler:   command.NewLoginHandler(repo, sessions),
		logoutHandler:  command.NewLogoutHandler(sessions),
		currentHandler: query.NewCurrentUserHandler(repo, sessions),
		middleware:     NewAuthMiddleware(sessions),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// Middleware exposes the auth middleware for other route groups
func (h *UserHandler) Middleware() *AuthMiddleware {
	return h.middleware
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

func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/signup", h.metricsMiddleware("/auth/signup", h.Signup)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/logout", h.metricsMiddleware("/auth/logout", h.middleware.Authenticate(h.Logout))).Methods("POST")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", h.middleware.Authenticate(h.Me))).Methods("GET")
}

// Signup handles POST /auth/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.signupHandler.Handle(r.Context(), command.SignupCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Signup failed")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Account created successfully",
		Data:    resp,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: resp})
}

// Logout handles POST /auth/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(TokenKey).(string)

	if err := h.logoutHandler.Handle(r.Context(), command.LogoutCommand{Token: token}); err != nil {
		logger.Logger.Error().Err(err).Msg("Logout failed")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out successfully"})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(TokenKey).(string)

	user, err := h.currentHandler.Handle(r.Context(), query.CurrentUserQuery{Token: token})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
