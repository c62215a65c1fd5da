package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type RankingRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uint) (*model.Ranking, error)
	Create(ctx context.Context, tx *gorm.DB, ranking *model.Ranking) error
	Save(ctx context.Context, tx *gorm.DB, ranking *model.Ranking) error
	FindOrdered(ctx context.Context, db *gorm.DB, limit int) ([]*model.Ranking, error)
	FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Ranking, int64, error)
}

type gormRankingRepository struct{}

func NewGormRankingRepository() RankingRepository {
	return &gormRankingRepository{}
}

func (r *gormRankingRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uint) (*model.Ranking, error) {
	var ranking model.Ranking
	result := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&ranking)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormRankingRepository.FindByUser: %w", result.Error)
	}
	return &ranking, nil
}

func (r *gormRankingRepository) Create(ctx context.Context, tx *gorm.DB, ranking *model.Ranking) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(ranking)
	if result.Error != nil {
		logger.Error("Error creating ranking in DB", "error", result.Error, "user_id", ranking.UserID)
		return fmt.Errorf("gormRankingRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormRankingRepository) Save(ctx context.Context, tx *gorm.DB, ranking *model.Ranking) error {
	result := tx.WithContext(ctx).Save(ranking)
	if result.Error != nil {
		return fmt.Errorf("gormRankingRepository.Save: %w", result.Error)
	}
	return nil
}

// FindOrdered returns rankings by points descending, streak days as the
// tie-breaker. Position is the 1-based index in this ordering.
func (r *gormRankingRepository) FindOrdered(ctx context.Context, db *gorm.DB, limit int) ([]*model.Ranking, error) {
	query := db.WithContext(ctx).
		Preload("User").
		Order("points DESC").
		Order("days DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rankings []*model.Ranking
	result := query.Find(&rankings)
	if result.Error != nil {
		return nil, fmt.Errorf("gormRankingRepository.FindOrdered: %w", result.Error)
	}
	return rankings, nil
}

func (r *gormRankingRepository) FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Ranking, int64, error) {
	query := db.WithContext(ctx).Model(&model.Ranking{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormRankingRepository.FindPage count: %w", err)
	}

	var rankings []*model.Ranking
	err := query.
		Preload("User").
		Order("points DESC").
		Order("days DESC").
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&rankings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormRankingRepository.FindPage: %w", err)
	}
	return rankings, total, nil
}
