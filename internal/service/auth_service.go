package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hangulhub/internal/config"
	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID uint) (*model.UserResponse, error)
	Logout(ctx context.Context, userID uint) error
}

type authService struct {
	db       *gorm.DB
	cfg      *config.Config
	userRepo repository.UserRepository
}

func NewAuthService(db *gorm.DB, cfg *config.Config, userRepo repository.UserRepository) AuthService {
	return &authService{db: db, cfg: cfg, userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	var created *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByEmail(ctx, tx, req.Email); err == nil {
			return model.NewAppError("EMAIL_TAKEN", "Email is already registered", "email", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		username := req.Username
		if username != "" {
			if _, err := s.userRepo.FindByUsername(ctx, tx, username); err == nil {
				return model.NewAppError("USERNAME_TAKEN", "Username is already taken", "username", model.ErrConflict)
			} else if !errors.Is(err, model.ErrNotFound) {
				return err
			}
		} else {
			local := req.Email
			if at := strings.Index(local, "@"); at >= 0 {
				local = local[:at]
			}
			username = fmt.Sprintf("%s_%d", local, time.Now().UnixMilli())
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Error hashing password", "error", err)
			return model.ErrInternalServer
		}

		user := &model.User{
			Name:     req.Name,
			Email:    req.Email,
			Username: username,
			Password: string(hash),
			Level:    model.DefaultUserLevel,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return model.ErrInternalServer
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", created.ID, "email", created.Email)
	return s.issueTokens(created)
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	// The same error is returned for an unknown email and a wrong password so
	// the endpoint cannot be used to probe which accounts exist.
	invalid := model.NewAppError("INVALID_CREDENTIALS", "Invalid email or password", "", model.ErrUnauthorized)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, invalid
		}
		logger.Error("Error looking up user for login", "error", err)
		return nil, model.ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	logger.Info("User logged in", "user_id", user.ID)
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.AuthResponse, error) {
	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.TokenType != model.TokenTypeRefresh {
		return nil, model.NewAppError("INVALID_REFRESH_TOKEN", "Invalid or expired refresh token", "", model.ErrUnauthorized)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, model.NewAppError("INVALID_REFRESH_TOKEN", "Invalid or expired refresh token", "", model.ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(ctx, s.db, uint(userID))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INVALID_REFRESH_TOKEN", "Invalid or expired refresh token", "", model.ErrUnauthorized)
		}
		return nil, model.ErrInternalServer
	}

	return s.issueTokens(user)
}

func (s *authService) GetCurrentUser(ctx context.Context, userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	resp := model.NewUserResponse(user)
	return &resp, nil
}

// Logout is a no-op server side; tokens are stateless and simply expire.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	middleware.GetLogger(ctx).Info("User logged out", "user_id", userID)
	return nil
}

func (s *authService) issueTokens(user *model.User) (*model.AuthResponse, error) {
	accessTTL := time.Duration(s.cfg.JWT.AccessTTLMin) * time.Minute
	refreshTTL := time.Duration(s.cfg.JWT.RefreshTTLHours) * time.Hour

	access, err := s.signToken(user.ID, "", accessTTL)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	refresh, err := s.signToken(user.ID, model.TokenTypeRefresh, refreshTTL)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	return &model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         model.NewUserResponse(user),
	}, nil
}

func (s *authService) signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.JWTCustomClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
