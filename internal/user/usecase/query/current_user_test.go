package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/auth"
)

type fakeUserRepo struct {
	users map[uint]*domain.User
}

func (r *fakeUserRepo) Create(user *domain.User) error { return nil }

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %d not found", id)
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NotFoundf("user %s not found", email)
}

func (r *fakeUserRepo) Update(*domain.User) error { return nil }
func (r *fakeUserRepo) Delete(uint) error         { return nil }

type fakeSessionStore struct {
	sessions map[string]uint
}

func (s *fakeSessionStore) Save(_ context.Context, token string, userID uint, _ time.Duration) error {
	s.sessions[token] = userID
	return nil
}

func (s *fakeSessionStore) Exists(_ context.Context, token string) (bool, error) {
	_, ok := s.sessions[token]
	return ok, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func TestCurrentUserResolvesLiveSession(t *testing.T) {
	user := &domain.User{ID: 7, Name: "Jamie", Email: "jamie@example.com"}
	repo := &fakeUserRepo{users: map[uint]*domain.User{7: user}}
	sessions := &fakeSessionStore{sessions: make(map[string]uint)}
	handler := NewCurrentUserHandler(repo, sessions)

	token, err := auth.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), token, user.ID, time.Hour))

	resolved, err := handler.Handle(context.Background(), CurrentUserQuery{Token: token})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "jamie@example.com", resolved.Email)
}

func TestCurrentUserRejectsRevokedSession(t *testing.T) {
	user := &domain.User{ID: 7, Name: "Jamie", Email: "jamie@example.com"}
	repo := &fakeUserRepo{users: map[uint]*domain.User{7: user}}
	sessions := &fakeSessionStore{sessions: make(map[string]uint)}
	handler := NewCurrentUserHandler(repo, sessions)

	// Valid JWT, but the session was never saved (or already revoked)
	token, err := auth.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), CurrentUserQuery{Token: token})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}

func TestCurrentUserRejectsGarbageToken(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uint]*domain.User)}
	sessions := &fakeSessionStore{sessions: map[string]uint{"not-a-jwt": 1}}
	handler := NewCurrentUserHandler(repo, sessions)

	_, err := handler.Handle(context.Background(), CurrentUserQuery{Token: "not-a-jwt"})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))

	_, err = handler.Handle(context.Background(), CurrentUserQuery{})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}

func TestCurrentUserRejectsDeletedAccount(t *testing.T) {
	repo := &fakeUserRepo{users: make(map[uint]*domain.User)}
	sessions := &fakeSessionStore{sessions: make(map[string]uint)}
	handler := NewCurrentUserHandler(repo, sessions)

	token, err := auth.GenerateToken(99, "gone@example.com")
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), token, 99, time.Hour))

	_, err = handler.Handle(context.Background(), CurrentUserQuery{Token: token})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}
