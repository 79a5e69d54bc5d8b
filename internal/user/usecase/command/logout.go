package command

import (
	"context"
	"fmt"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// LogoutCommand represents the command to revoke a session
type LogoutCommand struct {
	Token string
}

// LogoutHandler handles session revocation
type LogoutHandler struct {
	sessions domain.SessionStore
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(sessions domain.SessionStore) *LogoutHandler {
	return &LogoutHandler{sessions: sessions}
}

// Handle executes the logout command
func (h *LogoutHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if cmd.Token == "" {
		return apperrors.Authf("token is required")
	}
	if err := h.sessions.Delete(ctx, cmd.Token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
