package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Achievement, error)
	FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Achievement, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, achievementID uint) (*model.Achievement, error)
	Create(ctx context.Context, tx *gorm.DB, achievement *model.Achievement) error

	FindUserAchievement(ctx context.Context, db *gorm.DB, userID, achievementID uint) (*model.UserAchievement, error)
	FindUserAchievements(ctx context.Context, db *gorm.DB, userID uint) ([]*model.UserAchievement, error)
	CreateUserAchievement(ctx context.Context, tx *gorm.DB, ua *model.UserAchievement) error
	SaveUserAchievement(ctx context.Context, tx *gorm.DB, ua *model.UserAchievement) error
}

var achievementSortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"targetCount": "target_count",
	"createdAt":   "created_at",
}

type gormAchievementRepository struct{}

func NewGormAchievementRepository() AchievementRepository {
	return &gormAchievementRepository{}
}

func (r *gormAchievementRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	result := db.WithContext(ctx).Order("id ASC").Find(&achievements)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAchievementRepository.FindAll: %w", result.Error)
	}
	return achievements, nil
}

func (r *gormAchievementRepository) FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Achievement, int64, error) {
	query := db.WithContext(ctx).Model(&model.Achievement{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormAchievementRepository.FindPage count: %w", err)
	}

	var achievements []*model.Achievement
	err := query.
		Order(req.OrderClause(achievementSortColumns, "id ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&achievements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormAchievementRepository.FindPage: %w", err)
	}
	return achievements, total, nil
}

func (r *gormAchievementRepository) FindByID(ctx context.Context, db *gorm.DB, achievementID uint) (*model.Achievement, error) {
	var achievement model.Achievement
	result := db.WithContext(ctx).First(&achievement, achievementID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormAchievementRepository.FindByID: %w", result.Error)
	}
	return &achievement, nil
}

func (r *gormAchievementRepository) Create(ctx context.Context, tx *gorm.DB, achievement *model.Achievement) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(achievement)
	if result.Error != nil {
		logger.Error("Error creating achievement in DB", "error", result.Error, "title", achievement.Title)
		return fmt.Errorf("gormAchievementRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAchievementRepository) FindUserAchievement(ctx context.Context, db *gorm.DB, userID, achievementID uint) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	result := db.WithContext(ctx).Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&ua)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormAchievementRepository.FindUserAchievement: %w", result.Error)
	}
	return &ua, nil
}

func (r *gormAchievementRepository) FindUserAchievements(ctx context.Context, db *gorm.DB, userID uint) ([]*model.UserAchievement, error) {
	var uas []*model.UserAchievement
	result := db.WithContext(ctx).Preload("Achievement").Where("user_id = ?", userID).Find(&uas)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAchievementRepository.FindUserAchievements: %w", result.Error)
	}
	return uas, nil
}

func (r *gormAchievementRepository) CreateUserAchievement(ctx context.Context, tx *gorm.DB, ua *model.UserAchievement) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(ua)
	if result.Error != nil {
		logger.Error("Error creating user achievement in DB", "error", result.Error,
			"user_id", ua.UserID, "achievement_id", ua.AchievementID)
		return fmt.Errorf("gormAchievementRepository.CreateUserAchievement: %w", result.Error)
	}
	return nil
}

func (r *gormAchievementRepository) SaveUserAchievement(ctx context.Context, tx *gorm.DB, ua *model.UserAchievement) error {
	result := tx.WithContext(ctx).Save(ua)
	if result.Error != nil {
		return fmt.Errorf("gormAchievementRepository.SaveUserAchievement: %w", result.Error)
	}
	return nil
}
