package command

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
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

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

func (r *fakeUserRepo) Update(user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]uint
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uint)}
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

func TestSignupCreatesAccountAndSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	handler := NewSignupHandler(repo, sessions)

	resp, err := handler.Handle(context.Background(), SignupCommand{
		Name:     "Jamie Doe",
		Email:    "  Jamie@Example.COM  ",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jamie@example.com", resp.User.Email, "email is normalized")
	assert.Contains(t, resp.User.AvatarURL, "dicebear.com")
	assert.Contains(t, resp.User.AvatarURL, "seed=Jamie+Doe")
	assert.True(t, auth.CheckPassword(resp.User.PasswordHash, "hunter22"))
	assert.NotEqual(t, "hunter22", resp.User.PasswordHash)

	live, err := sessions.Exists(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, live)
}

func TestSignupValidation(t *testing.T) {
	handler := NewSignupHandler(newFakeUserRepo(), newFakeSessionStore())
	ctx := context.Background()

	cases := []SignupCommand{
		{Email: "a@b.c", Password: "secret1"},
		{Name: "Jamie", Password: "secret1"},
		{Name: "Jamie", Email: "a@b.c"},
		{Name: "Jamie", Email: "a@b.c", Password: "short"},
	}
	for _, cmd := range cases {
		_, err := handler.Handle(ctx, cmd)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "%+v", cmd)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewSignupHandler(repo, newFakeSessionStore())
	ctx := context.Background()

	_, err := handler.Handle(ctx, SignupCommand{Name: "Jamie", Email: "jamie@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, SignupCommand{Name: "Other", Email: "JAMIE@example.com", Password: "secret2"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestLoginIssuesFreshSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	signup := NewSignupHandler(repo, sessions)
	login := NewLoginHandler(repo, sessions)
	ctx := context.Background()

	_, err := signup.Handle(ctx, SignupCommand{Name: "Jamie", Email: "jamie@example.com", Password: "hunter22"})
	require.NoError(t, err)

	resp, err := login.Handle(ctx, LoginCommand{Email: "Jamie@Example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jamie@example.com", resp.User.Email)

	live, err := sessions.Exists(ctx, resp.Token)
	require.NoError(t, err)
	assert.True(t, live)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	signup := NewSignupHandler(repo, sessions)
	login := NewLoginHandler(repo, sessions)
	ctx := context.Background()

	_, err := signup.Handle(ctx, SignupCommand{Name: "Jamie", Email: "jamie@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, wrongPassword := login.Handle(ctx, LoginCommand{Email: "jamie@example.com", Password: "nope"})
	_, unknownEmail := login.Handle(ctx, LoginCommand{Email: "ghost@example.com", Password: "hunter22"})

	assert.True(t, errors.Is(wrongPassword, apperrors.ErrAuth))
	assert.True(t, errors.Is(unknownEmail, apperrors.ErrAuth))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error(),
		"unknown email and wrong password must not be distinguishable")
}

func TestLoginRequiresCredentials(t *testing.T) {
	login := NewLoginHandler(newFakeUserRepo(), newFakeSessionStore())

	_, err := login.Handle(context.Background(), LoginCommand{Email: "jamie@example.com"})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))

	_, err = login.Handle(context.Background(), LoginCommand{Password: "hunter22"})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newFakeSessionStore()
	require.NoError(t, sessions.Save(context.Background(), "tok-1", 1, time.Hour))

	handler := NewLogoutHandler(sessions)
	require.NoError(t, handler.Handle(context.Background(), LogoutCommand{Token: "tok-1"}))

	live, err := sessions.Exists(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.False(t, live)

	err = handler.Handle(context.Background(), LogoutCommand{})
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}
