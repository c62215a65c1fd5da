package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hangulhub/internal/config"
	"hangulhub/internal/model"
	"hangulhub/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware validates the Bearer token in the Authorization header
// and stores the authenticated user id in the request context. Refresh
// tokens are rejected here; only the refresh endpoint accepts them.
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized))
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authorization header must be of the form 'Bearer {token}'.", "", model.ErrUnauthorized))
				return
			}
			tokenString := headerParts[1]

			userID, err := parseAccessToken(cfg, tokenString)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, model.NewAppError("INVALID_TOKEN", "Token is invalid or expired.", "", model.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTAuthMiddleware attaches the user id when a valid Bearer token is
// present and passes the request through untouched otherwise. Endpoints with a
// no-fail contract (logout) use this instead of JWTAuthMiddleware.
func OptionalJWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headerParts := strings.Split(r.Header.Get("Authorization"), " ")
			if len(headerParts) == 2 && strings.ToLower(headerParts[0]) == "bearer" {
				if userID, err := parseAccessToken(cfg, headerParts[1]); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), model.UserIDKey, userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseAccessToken verifies an HS256 access token and returns its subject.
// Refresh tokens are rejected here; only the refresh endpoint accepts them.
func parseAccessToken(cfg *config.Config, tokenString string) (uint, error) {
	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token is invalid")
	}
	if claims.TokenType == model.TokenTypeRefresh {
		return 0, errors.New("refresh token used for access")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed token subject: %w", err)
	}
	return uint(userID), nil
}

// GetUserIDFromContext returns the authenticated user id placed in the
// context by JWTAuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	value, ok := ctx.Value(model.UserIDKey).(uint)
	if !ok {
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "Authenticated user not found in request context.", "", model.ErrInternalServer)
	}
	return value, nil
}
