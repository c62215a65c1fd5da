package service

import (
	"context"
	"testing"

	"hangulhub/internal/config"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTTLMin = 60
	cfg.JWT.RefreshTTLHours = 24
	return cfg
}

func newAuthService(t *testing.T) (AuthService, *config.Config) {
	t.Helper()
	db := setupTestDB(t)
	cfg := newTestConfig()
	return NewAuthService(db, cfg, repository.NewGormUserRepository()), cfg
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with default level and tokens", func(t *testing.T) {
		svc, _ := newAuthService(t)

		resp, err := svc.Register(ctx, &model.RegisterRequest{
			Name:     "Minh",
			Email:    "minh@example.com",
			Username: "minh",
			Password: "password123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Equal(t, "minh", resp.User.Username)
		assert.Equal(t, model.DefaultUserLevel, resp.User.Level)
	})

	t.Run("generates username from email local part when omitted", func(t *testing.T) {
		svc, _ := newAuthService(t)

		resp, err := svc.Register(ctx, &model.RegisterRequest{
			Name:     "Lan",
			Email:    "lan@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^lan_\d+$`, resp.User.Username)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "A", Email: "dup@example.com", Username: "first", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &model.RegisterRequest{
			Name: "B", Email: "dup@example.com", Username: "second", Password: "password123",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "A", Email: "a@example.com", Username: "shared", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &model.RegisterRequest{
			Name: "B", Email: "b@example.com", Username: "shared", Password: "password123",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "Minh", Email: "minh@example.com", Username: "minh", Password: "password123",
		})
		require.NoError(t, err)

		resp, err := svc.Login(ctx, &model.LoginRequest{Email: "minh@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "minh@example.com", resp.User.Email)
	})

	t.Run("returns the same error for unknown email and wrong password", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "Minh", Email: "minh@example.com", Username: "minh", Password: "password123",
		})
		require.NoError(t, err)

		_, errUnknown := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		_, errWrongPw := svc.Login(ctx, &model.LoginRequest{Email: "minh@example.com", Password: "wrongpass"})

		require.Error(t, errUnknown)
		require.Error(t, errWrongPw)
		assert.ErrorIs(t, errUnknown, model.ErrUnauthorized)
		assert.ErrorIs(t, errWrongPw, model.ErrUnauthorized)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues new tokens from a refresh token", func(t *testing.T) {
		svc, _ := newAuthService(t)
		registered, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "Minh", Email: "minh@example.com", Username: "minh", Password: "password123",
		})
		require.NoError(t, err)

		resp, err := svc.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, registered.User.ID, resp.User.ID)
	})

	t.Run("rejects an access token on the refresh endpoint", func(t *testing.T) {
		svc, _ := newAuthService(t)
		registered, err := svc.Register(ctx, &model.RegisterRequest{
			Name: "Minh", Email: "minh@example.com", Username: "minh", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: registered.AccessToken})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})
}
