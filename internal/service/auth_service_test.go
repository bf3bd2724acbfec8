package service

import (
	"context"
	"errors"
	"testing"

	"ventapos/internal/config"
	"ventapos/internal/dto"
	"ventapos/internal/model"
	"ventapos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.IsActive {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func buildAuthSvc(t *testing.T) (AuthService, *stubUserRepo, *model.User) {
	t.Helper()
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    168,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		ID:           uuid.New(),
		Username:     "cashier1",
		Name:         "Cashier One",
		PasswordHash: string(hash),
		Role:         "CAJERO",
		IsActive:     true,
	}
	repo.users[user.ID] = user
	return NewAuthService(repo, cfg), repo, user
}

func TestLogin(t *testing.T) {
	svc, _, user := buildAuthSvc(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "s3cret"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, user.ID.String(), resp.User.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo, user := buildAuthSvc(t)
	repo.users[user.ID].IsActive = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	svc, repo, user := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "s3cret"})
	require.NoError(t, err)

	repo.users[user.ID].IsActive = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateUser(t *testing.T) {
	svc, repo, _ := buildAuthSvc(t)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "admin2",
		Name:     "Second Admin",
		Password: "changeme",
		Role:     "ADMIN",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin2", resp.Username)
	assert.Equal(t, "ADMIN", resp.Role)

	stored, err := repo.FindByUsername(context.Background(), "admin2")
	require.NoError(t, err)
	assert.NotEqual(t, "changeme", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("changeme")))
}
