package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(ctx context.Context, tx *gorm.DB, material *model.Material) error
	FindByID(ctx context.Context, db *gorm.DB, materialID uint) (*model.Material, error)
	FindPage(ctx context.Context, db *gorm.DB, filter MaterialFilter, req model.PageRequest) ([]*model.Material, int64, error)
	Update(ctx context.Context, tx *gorm.DB, materialID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, materialID uint) error
	AddDownloads(ctx context.Context, tx *gorm.DB, materialID uint, delta int) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	SumDownloads(ctx context.Context, db *gorm.DB) (int64, error)

	FindDownload(ctx context.Context, db *gorm.DB, userID, materialID uint) (*model.MaterialDownload, error)
	CreateDownload(ctx context.Context, tx *gorm.DB, download *model.MaterialDownload) error
	DownloadedMaterialIDs(ctx context.Context, db *gorm.DB, userID uint, materialIDs []uint) (map[uint]bool, error)
}

// MaterialFilter narrows the material listing; empty fields are ignored.
type MaterialFilter struct {
	Level    string
	Skill    string
	Type     string
	Search   string
	Featured *bool
}

var materialSortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"downloads": "downloads",
	"rating":    "rating",
	"points":    "points",
	"createdAt": "created_at",
}

type gormMaterialRepository struct{}

func NewGormMaterialRepository() MaterialRepository {
	return &gormMaterialRepository{}
}

func (r *gormMaterialRepository) Create(ctx context.Context, tx *gorm.DB, material *model.Material) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(material)
	if result.Error != nil {
		logger.Error("Error creating material in DB", "error", result.Error, "title", material.Title)
		return fmt.Errorf("gormMaterialRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormMaterialRepository) FindByID(ctx context.Context, db *gorm.DB, materialID uint) (*model.Material, error) {
	var material model.Material
	result := db.WithContext(ctx).First(&material, materialID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormMaterialRepository.FindByID: %w", result.Error)
	}
	return &material, nil
}

func (r *gormMaterialRepository) FindPage(ctx context.Context, db *gorm.DB, filter MaterialFilter, req model.PageRequest) ([]*model.Material, int64, error) {
	query := db.WithContext(ctx).Model(&model.Material{})
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Skill != "" {
		query = query.Where("skill = ?", filter.Skill)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormMaterialRepository.FindPage count: %w", err)
	}

	var materials []*model.Material
	err := query.
		Order(req.OrderClause(materialSortColumns, "id ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&materials).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormMaterialRepository.FindPage: %w", err)
	}
	return materials, total, nil
}

func (r *gormMaterialRepository) Update(ctx context.Context, tx *gorm.DB, materialID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Material{}).Where("id = ?", materialID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormMaterialRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormMaterialRepository) Delete(ctx context.Context, tx *gorm.DB, materialID uint) error {
	result := tx.WithContext(ctx).Delete(&model.Material{}, materialID)
	if result.Error != nil {
		return fmt.Errorf("gormMaterialRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormMaterialRepository) AddDownloads(ctx context.Context, tx *gorm.DB, materialID uint, delta int) error {
	result := tx.WithContext(ctx).Model(&model.Material{}).Where("id = ?", materialID).
		Update("downloads", gorm.Expr("downloads + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("gormMaterialRepository.AddDownloads: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormMaterialRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	result := db.WithContext(ctx).Model(&model.Material{}).Count(&total)
	if result.Error != nil {
		return 0, fmt.Errorf("gormMaterialRepository.Count: %w", result.Error)
	}
	return total, nil
}

func (r *gormMaterialRepository) SumDownloads(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	result := db.WithContext(ctx).Model(&model.Material{}).
		Select("COALESCE(SUM(downloads), 0)").Scan(&total)
	if result.Error != nil {
		return 0, fmt.Errorf("gormMaterialRepository.SumDownloads: %w", result.Error)
	}
	return total, nil
}

func (r *gormMaterialRepository) FindDownload(ctx context.Context, db *gorm.DB, userID, materialID uint) (*model.MaterialDownload, error) {
	var download model.MaterialDownload
	result := db.WithContext(ctx).Where("user_id = ? AND material_id = ?", userID, materialID).First(&download)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormMaterialRepository.FindDownload: %w", result.Error)
	}
	return &download, nil
}

func (r *gormMaterialRepository) CreateDownload(ctx context.Context, tx *gorm.DB, download *model.MaterialDownload) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(download)
	if result.Error != nil {
		logger.Error("Error creating material download in DB", "error", result.Error,
			"user_id", download.UserID, "material_id", download.MaterialID)
		return fmt.Errorf("gormMaterialRepository.CreateDownload: %w", result.Error)
	}
	return nil
}

func (r *gormMaterialRepository) DownloadedMaterialIDs(ctx context.Context, db *gorm.DB, userID uint, materialIDs []uint) (map[uint]bool, error) {
	downloaded := make(map[uint]bool)
	if len(materialIDs) == 0 {
		return downloaded, nil
	}
	var downloads []model.MaterialDownload
	result := db.WithContext(ctx).Where("user_id = ? AND material_id IN ?", userID, materialIDs).Find(&downloads)
	if result.Error != nil {
		return nil, fmt.Errorf("gormMaterialRepository.DownloadedMaterialIDs: %w", result.Error)
	}
	for _, d := range downloads {
		downloaded[d.MaterialID] = true
	}
	return downloaded, nil
}
