package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/service"
	"github.com/linemk/nexus-shop/internal/storage"
	"github.com/stretchr/testify/assert"
)

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	return service.NewAuthService(testLogger(), storage.NewUserRepository(storage.SeedUsers()), time.Hour)
}

func TestAuthLogin_KnownEmail(t *testing.T) {
	auth := newAuthService(t)

	user, token, err := auth.Login(context.Background(), "user@nexus.com")
	assert.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, token)

	// в токене должны быть идентификатор, email и роль
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "u2", claims["sub"])
	assert.Equal(t, "user@nexus.com", claims["email"])
	assert.Equal(t, "user", claims["role"])
}

func TestAuthLogin_AdminEmail(t *testing.T) {
	auth := newAuthService(t)

	user, _, err := auth.Login(context.Background(), "admin@nexus.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestAuthLogin_EmailCaseInsensitive(t *testing.T) {
	auth := newAuthService(t)

	user, _, err := auth.Login(context.Background(), "  ADMIN@Nexus.Com ")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	auth := newAuthService(t)

	user, token, err := auth.Login(context.Background(), "nobody@nexus.com")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Empty(t, token)
}
