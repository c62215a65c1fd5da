package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type CurriculumRepository interface {
	Create(ctx context.Context, tx *gorm.DB, curriculum *model.Curriculum) error
	FindByID(ctx context.Context, db *gorm.DB, curriculumID uint) (*model.Curriculum, error)
	FindByBookNumber(ctx context.Context, db *gorm.DB, bookNumber int) (*model.Curriculum, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Curriculum, error)
	FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Curriculum, int64, error)
	Update(ctx context.Context, tx *gorm.DB, curriculumID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, curriculumID uint) error
}

type CurriculumProgressRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID, curriculumID uint) (*model.CurriculumProgress, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.CurriculumProgress, error)
	Create(ctx context.Context, tx *gorm.DB, progress *model.CurriculumProgress) error
	Update(ctx context.Context, tx *gorm.DB, progressID uint, updates map[string]interface{}) error
}

var bookSortColumns = map[string]string{
	"id":         "id",
	"bookNumber": "book_number",
	"title":      "title",
	"createdAt":  "created_at",
}

type gormCurriculumRepository struct{}

func NewGormCurriculumRepository() CurriculumRepository {
	return &gormCurriculumRepository{}
}

func (r *gormCurriculumRepository) Create(ctx context.Context, tx *gorm.DB, curriculum *model.Curriculum) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(curriculum)
	if result.Error != nil {
		logger.Error("Error creating curriculum in DB", "error", result.Error, "book_number", curriculum.BookNumber)
		return fmt.Errorf("gormCurriculumRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCurriculumRepository) FindByID(ctx context.Context, db *gorm.DB, curriculumID uint) (*model.Curriculum, error) {
	var curriculum model.Curriculum
	result := db.WithContext(ctx).First(&curriculum, curriculumID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCurriculumRepository.FindByID: %w", result.Error)
	}
	return &curriculum, nil
}

func (r *gormCurriculumRepository) FindByBookNumber(ctx context.Context, db *gorm.DB, bookNumber int) (*model.Curriculum, error) {
	var curriculum model.Curriculum
	result := db.WithContext(ctx).Where("book_number = ?", bookNumber).First(&curriculum)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCurriculumRepository.FindByBookNumber: %w", result.Error)
	}
	return &curriculum, nil
}

func (r *gormCurriculumRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Curriculum, error) {
	var curricula []*model.Curriculum
	result := db.WithContext(ctx).Order("book_number ASC").Find(&curricula)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCurriculumRepository.FindAll: %w", result.Error)
	}
	return curricula, nil
}

func (r *gormCurriculumRepository) FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Curriculum, int64, error) {
	query := db.WithContext(ctx).Model(&model.Curriculum{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormCurriculumRepository.FindPage count: %w", err)
	}

	var curricula []*model.Curriculum
	err := query.
		Order(req.OrderClause(bookSortColumns, "book_number ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&curricula).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormCurriculumRepository.FindPage: %w", err)
	}
	return curricula, total, nil
}

func (r *gormCurriculumRepository) Update(ctx context.Context, tx *gorm.DB, curriculumID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Curriculum{}).Where("id = ?", curriculumID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating curriculum in DB", "error", result.Error, "curriculum_id", curriculumID)
		return fmt.Errorf("gormCurriculumRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCurriculumRepository) Delete(ctx context.Context, tx *gorm.DB, curriculumID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Curriculum{}, curriculumID)
	if result.Error != nil {
		logger.Error("Error deleting curriculum in DB", "error", result.Error, "curriculum_id", curriculumID)
		return fmt.Errorf("gormCurriculumRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type gormCurriculumProgressRepository struct{}

func NewGormCurriculumProgressRepository() CurriculumProgressRepository {
	return &gormCurriculumProgressRepository{}
}

func (r *gormCurriculumProgressRepository) Find(ctx context.Context, db *gorm.DB, userID, curriculumID uint) (*model.CurriculumProgress, error) {
	var progress model.CurriculumProgress
	result := db.WithContext(ctx).Where("user_id = ? AND curriculum_id = ?", userID, curriculumID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCurriculumProgressRepository.Find: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormCurriculumProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.CurriculumProgress, error) {
	var progresses []*model.CurriculumProgress
	result := db.WithContext(ctx).Where("user_id = ?", userID).Find(&progresses)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCurriculumProgressRepository.FindByUser: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormCurriculumProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.CurriculumProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		logger.Error("Error creating curriculum progress in DB", "error", result.Error,
			"user_id", progress.UserID, "curriculum_id", progress.CurriculumID)
		return fmt.Errorf("gormCurriculumProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCurriculumProgressRepository) Update(ctx context.Context, tx *gorm.DB, progressID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.CurriculumProgress{}).Where("id = ?", progressID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormCurriculumProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
