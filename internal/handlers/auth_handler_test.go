package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	registered := registerUser(t, app, "minh@example.com", "minh")
	accessToken, _ := registered["accessToken"].(string)
	refreshToken, _ := registered["refreshToken"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	t.Run("me returns the authenticated user", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/auth/me", accessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var user map[string]interface{}
		decodeBody(t, rec, &user)
		assert.Equal(t, "minh@example.com", user["email"])
		assert.Equal(t, "minh", user["username"])
	})

	t.Run("me without a token is rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login with the registered credentials", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "minh@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp["accessToken"])
	})

	t.Run("login with a wrong password yields the generic error", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "minh@example.com",
			"password": "wrongpass",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]map[string]interface{}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "INVALID_CREDENTIALS", resp["error"]["code"])
	})

	t.Run("refresh rotates the access token", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
			"refreshToken": refreshToken,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp["accessToken"])
	})

	t.Run("a refresh token cannot be used as an access token", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/auth/me", refreshToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("register with a taken email conflicts", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "Other",
			"email":    "minh@example.com",
			"username": "other",
			"password": "password123",
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		var resp map[string]map[string]interface{}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "EMAIL_TAKEN", resp["error"]["code"])
	})

	t.Run("register rejects an invalid payload", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "X",
			"email":    "not-an-email",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("logout responds no content", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/logout", accessToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("logout succeeds without a token", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/logout", "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("logout succeeds with a garbage token", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/auth/logout", "not-a-jwt", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
