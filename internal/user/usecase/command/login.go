package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/auth"
)

// LoginCommand represents the command to log an operator in
type LoginCommand struct {
	Email    string
	Password string
}

// LoginHandler handles operator login
type LoginHandler struct {
	repo     domain.UserRepository
	sessions domain.SessionStore
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(repo domain.UserRepository, sessions domain.SessionStore) *LoginHandler {
	return &LoginHandler{repo: repo, sessions: sessions}
}

// Handle executes the login command. Unknown emails and wrong passwords
// produce the same error so accounts cannot be enumerated.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	if email == "" || cmd.Password == "" {
		return nil, apperrors.Authf("email and password are required")
	}

	user, err := h.repo.FindByEmail(email)
	if err != nil {
		return nil, apperrors.Authf("invalid credentials")
	}
	if !auth.CheckPassword(user.PasswordHash, cmd.Password) {
		return nil, apperrors.Authf("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := h.sessions.Save(ctx, token, user.ID, auth.TokenTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}
