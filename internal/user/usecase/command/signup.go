package command

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/auth"
)

// SignupCommand represents the command to register a new operator
type SignupCommand struct {
	Name     string
	Email    string
	Password string
}

// AuthResponse is returned after signup or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// SignupHandler handles operator registration
type SignupHandler struct {
	repo     domain.UserRepository
	sessions domain.SessionStore
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(repo domain.UserRepository, sessions domain.SessionStore) *SignupHandler {
	return &SignupHandler{repo: repo, sessions: sessions}
}

// avatarURL derives a deterministic avatar for the account name
func avatarURL(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}

// Handle executes the signup command
func (h *SignupHandler) Handle(ctx context.Context, cmd SignupCommand) (*AuthResponse, error) {
	name := strings.TrimSpace(cmd.Name)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	if name == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if email == "" {
		return nil, apperrors.Validationf("email is required")
	}
	if cmd.Password == "" {
		return nil, apperrors.Validationf("password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, apperrors.Validationf("password must be at least 6 characters")
	}

	if existing, _ := h.repo.FindByEmail(email); existing != nil {
		return nil, apperrors.Conflictf("email %s is already registered", email)
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    avatarURL(name),
	}
	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
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
