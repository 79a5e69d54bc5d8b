package query

import (
	"context"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/auth"
)

// CurrentUserQuery represents the query for the authenticated operator
type CurrentUserQuery struct {
	Token string
}

// CurrentUserHandler resolves the operator behind a session token
type CurrentUserHandler struct {
	repo     domain.UserRepository
	sessions domain.SessionStore
}

// NewCurrentUserHandler creates a new current user handler
func NewCurrentUserHandler(repo domain.UserRepository, sessions domain.SessionStore) *CurrentUserHandler {
	return &CurrentUserHandler{repo: repo, sessions: sessions}
}

// Handle executes the current user query. A valid JWT alone is not
// enough; the session must still be live.
func (h *CurrentUserHandler) Handle(ctx context.Context, q CurrentUserQuery) (*domain.User, error) {
	if q.Token == "" {
		return nil, apperrors.Authf("token is required")
	}

	claims, err := auth.ValidateToken(q.Token)
	if err != nil {
		return nil, apperrors.Authf("invalid token")
	}

	live, err := h.sessions.Exists(ctx, q.Token)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, apperrors.Authf("session expired")
	}

	user, err := h.repo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Authf("invalid token")
	}
	return user, nil
}
