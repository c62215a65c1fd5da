package model

import "github.com/golang-jwt/jwt/v5"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"omitempty,min=3,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
	User         UserResponse `json:"user"`
}

// TokenTypeRefresh marks refresh tokens so an access token can never be
// replayed against the refresh endpoint.
const TokenTypeRefresh = "refresh"

type JWTCustomClaims struct {
	TokenType string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

type ContextKey string

const UserIDKey ContextKey = "userID"
