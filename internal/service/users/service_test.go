package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/auth"
	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/service/users/models"

	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) (*Service, *memory.UserStore, *auth.TokenManager) {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserStore(store)
	tokens := auth.NewTokenManager("test-secret", 60)

	return NewService(users, tokens, bcrypt.MinCost, nopLogger{}), users, tokens
}

func TestRegister(t *testing.T) {
	svc, _, tokens := newService(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Иван Петров",
		Email:    "Ivan@Example.Com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Публичная регистрация всегда выдаёт роль customer и нормализует email
	assert.Equal(t, string(domain.RoleCustomer), resp.User.Role)
	assert.Equal(t, "ivan@example.com", resp.User.Email)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"empty name", models.RegisterRequest{Email: "a@b.ru", Password: "password123"}},
		{"bad email", models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "password123"}},
		{"short password", models.RegisterRequest{Name: "A", Email: "a@b.ru", Password: "1234567"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	req := &models.RegisterRequest{Name: "Иван", Email: "ivan@example.com", Password: "password123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Регистр email не обходит проверку уникальности
	req.Email = "IVAN@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "Иван",
		Email:    "ivan@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: "ivan@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ivan@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListEmployees(t *testing.T) {
	svc, users, _ := newService(t)
	ctx := context.Background()

	for _, u := range []domain.User{
		{Name: "Клиент", Email: "c@example.com", Role: domain.RoleCustomer},
		{Name: "Мастер", Email: "s@example.com", Role: domain.RoleStaff},
	} {
		u := u
		_, err := users.Create(ctx, &u)
		require.NoError(t, err)
	}

	resp, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "Мастер", resp.Users[0].Name)
}
