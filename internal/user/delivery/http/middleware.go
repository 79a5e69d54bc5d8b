package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/pkg/auth"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
	TokenKey  contextKey = "token"
)

// AuthMiddleware validates the bearer token and requires a live session
type AuthMiddleware struct {
	sessions domain.SessionStore
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions domain.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate wraps a handler with JWT plus session validation
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		live, err := m.sessions.Exists(r.Context(), token)
		if err != nil || !live {
			respondError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": message})
}
