package repository

import (
	"context"
	"fmt"
	"time"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type TaskRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.Task, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, tasks []*model.Task) error
	DeleteCreatedBefore(ctx context.Context, tx *gorm.DB, userID uint, cutoff time.Time) error
	UpdateProgress(ctx context.Context, tx *gorm.DB, taskID uint, progressPercent float64) error
}

type gormTaskRepository struct{}

func NewGormTaskRepository() TaskRepository {
	return &gormTaskRepository{}
}

func (r *gormTaskRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.Task, error) {
	var tasks []*model.Task
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&tasks)
	if result.Error != nil {
		return nil, fmt.Errorf("gormTaskRepository.FindByUser: %w", result.Error)
	}
	return tasks, nil
}

func (r *gormTaskRepository) CreateBatch(ctx context.Context, tx *gorm.DB, tasks []*model.Task) error {
	logger := middleware.GetLogger(ctx)
	if len(tasks) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(tasks)
	if result.Error != nil {
		logger.Error("Error creating tasks in DB", "error", result.Error, "count", len(tasks))
		return fmt.Errorf("gormTaskRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormTaskRepository) DeleteCreatedBefore(ctx context.Context, tx *gorm.DB, userID uint, cutoff time.Time) error {
	result := tx.WithContext(ctx).Where("user_id = ? AND created_at < ?", userID, cutoff).Delete(&model.Task{})
	if result.Error != nil {
		return fmt.Errorf("gormTaskRepository.DeleteCreatedBefore: %w", result.Error)
	}
	return nil
}

func (r *gormTaskRepository) UpdateProgress(ctx context.Context, tx *gorm.DB, taskID uint, progressPercent float64) error {
	result := tx.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("progress_percent", progressPercent)
	if result.Error != nil {
		return fmt.Errorf("gormTaskRepository.UpdateProgress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
