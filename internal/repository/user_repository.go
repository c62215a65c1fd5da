package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error)
	Update(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	AddPoints(ctx context.Context, tx *gorm.DB, userID uint, delta int) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.Error("Error creating user in DB", "error", result.Error, "email", user.Email)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByUsername: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) Update(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating user in DB", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormUserRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) AddPoints(ctx context.Context, tx *gorm.DB, userID uint, delta int) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", delta))
	if result.Error != nil {
		logger.Error("Error adjusting user points in DB", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormUserRepository.AddPoints: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
