package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type fakeAuthRepo struct {
	users      map[string]*models.User
	lastUpdate *models.UserUpdate
}

func newFakeAuthRepo(users ...*models.User) *fakeAuthRepo {
	repo := &fakeAuthRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeAuthRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (f *fakeAuthRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return u, nil
}

func (f *fakeAuthRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, appErrors.Clone(appErrors.ErrConflict, "user with this email already exists")
		}
	}
	record := *user
	if record.ID == "" {
		record.ID = "generated-id"
	}
	f.users[record.ID] = &record
	return &record, nil
}

func (f *fakeAuthRepo) Update(_ context.Context, id string, updates models.UserUpdate) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	f.lastUpdate = &updates
	if updates.LastLogin != nil {
		u.LastLogin = updates.LastLogin
	}
	return u, nil
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testAuthConfig() AuthConfig {
	return AuthConfig{TokenSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "ojtrack-test"}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeAuthRepo(&models.User{
		ID: "u1", Name: "John", Email: "john@x.com", Role: models.RoleStudent,
		Status: models.UserStatusActive, PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "john@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "u1", res.User.ID)
	assert.NotNil(t, repo.lastUpdate, "last login is recorded")

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo(&models.User{
		ID: "u1", Email: "john@x.com", Status: models.UserStatusActive,
		Role: models.RoleStudent, PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "john@x.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginUnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@x.com", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials), "email existence is not leaked")
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newFakeAuthRepo(&models.User{
		ID: "u1", Email: "p@x.com", Status: models.UserStatusPendingApproval,
		Role: models.RoleStudent, PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "p@x.com", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInactiveAccount))
}

func TestRegisterCreatesActiveAccount(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Alice", Email: "alice@x.com", Password: "secret123",
		Role: models.RoleStudent, StudentID: "2021-67890",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, models.RoleStudent, res.User.Role)

	stored, err := repo.GetByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, stored.Status)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "password is stored hashed")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), nil, nil, testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Evil", Email: "evil@x.com", Password: "secret123", Role: models.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	repo := newFakeAuthRepo(&models.User{
		ID: "u1", Email: "j@x.com", Status: models.UserStatusActive,
		Role: models.RoleStudent, PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "j@x.com", Password: "secret123"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{TokenSecret: "different", TokenExpiry: time.Hour})
	_, err = other.ValidateToken(res.AccessToken)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
