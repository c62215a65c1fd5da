package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type TextbookRepository interface {
	Create(ctx context.Context, tx *gorm.DB, textbook *model.Textbook) error
	FindByID(ctx context.Context, db *gorm.DB, textbookID uint) (*model.Textbook, error)
	FindByBookNumber(ctx context.Context, db *gorm.DB, bookNumber int) (*model.Textbook, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Textbook, error)
	FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Textbook, int64, error)
	Update(ctx context.Context, tx *gorm.DB, textbookID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, textbookID uint) error
}

type TextbookProgressRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID, textbookID uint) (*model.TextbookProgress, error)
	Create(ctx context.Context, tx *gorm.DB, progress *model.TextbookProgress) error
	Update(ctx context.Context, tx *gorm.DB, progressID uint, updates map[string]interface{}) error
}

type gormTextbookRepository struct{}

func NewGormTextbookRepository() TextbookRepository {
	return &gormTextbookRepository{}
}

func (r *gormTextbookRepository) Create(ctx context.Context, tx *gorm.DB, textbook *model.Textbook) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(textbook)
	if result.Error != nil {
		logger.Error("Error creating textbook in DB", "error", result.Error, "book_number", textbook.BookNumber)
		return fmt.Errorf("gormTextbookRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTextbookRepository) FindByID(ctx context.Context, db *gorm.DB, textbookID uint) (*model.Textbook, error) {
	var textbook model.Textbook
	result := db.WithContext(ctx).First(&textbook, textbookID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormTextbookRepository.FindByID: %w", result.Error)
	}
	return &textbook, nil
}

func (r *gormTextbookRepository) FindPage(ctx context.Context, db *gorm.DB, req model.PageRequest) ([]*model.Textbook, int64, error) {
	query := db.WithContext(ctx).Model(&model.Textbook{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormTextbookRepository.FindPage count: %w", err)
	}

	var textbooks []*model.Textbook
	err := query.
		Order(req.OrderClause(bookSortColumns, "book_number ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&textbooks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormTextbookRepository.FindPage: %w", err)
	}
	return textbooks, total, nil
}

func (r *gormTextbookRepository) FindByBookNumber(ctx context.Context, db *gorm.DB, bookNumber int) (*model.Textbook, error) {
	var textbook model.Textbook
	result := db.WithContext(ctx).Where("book_number = ?", bookNumber).First(&textbook)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormTextbookRepository.FindByBookNumber: %w", result.Error)
	}
	return &textbook, nil
}

func (r *gormTextbookRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Textbook, error) {
	var textbooks []*model.Textbook
	result := db.WithContext(ctx).Order("book_number ASC").Find(&textbooks)
	if result.Error != nil {
		return nil, fmt.Errorf("gormTextbookRepository.FindAll: %w", result.Error)
	}
	return textbooks, nil
}

func (r *gormTextbookRepository) Update(ctx context.Context, tx *gorm.DB, textbookID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Textbook{}).Where("id = ?", textbookID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormTextbookRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTextbookRepository) Delete(ctx context.Context, tx *gorm.DB, textbookID uint) error {
	result := tx.WithContext(ctx).Delete(&model.Textbook{}, textbookID)
	if result.Error != nil {
		return fmt.Errorf("gormTextbookRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type gormTextbookProgressRepository struct{}

func NewGormTextbookProgressRepository() TextbookProgressRepository {
	return &gormTextbookProgressRepository{}
}

func (r *gormTextbookProgressRepository) Find(ctx context.Context, db *gorm.DB, userID, textbookID uint) (*model.TextbookProgress, error) {
	var progress model.TextbookProgress
	result := db.WithContext(ctx).Where("user_id = ? AND textbook_id = ?", userID, textbookID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormTextbookProgressRepository.Find: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormTextbookProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.TextbookProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		logger.Error("Error creating textbook progress in DB", "error", result.Error,
			"user_id", progress.UserID, "textbook_id", progress.TextbookID)
		return fmt.Errorf("gormTextbookProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTextbookProgressRepository) Update(ctx context.Context, tx *gorm.DB, progressID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.TextbookProgress{}).Where("id = ?", progressID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormTextbookProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
