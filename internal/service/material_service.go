package service

import (
	"context"
	"errors"
	"strings"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type MaterialService interface {
	ListMaterials(ctx context.Context, userID uint, filter repository.MaterialFilter, req model.PageRequest) (*model.PageResponse[model.MaterialResponse], error)
	GetMaterial(ctx context.Context, materialID, userID uint) (*model.MaterialResponse, error)
	ListFeatured(ctx context.Context, userID uint, req model.PageRequest) (*model.PageResponse[model.MaterialResponse], error)
	Download(ctx context.Context, materialID, userID uint) (*model.MaterialResponse, error)
	TotalCount(ctx context.Context) (int64, error)
	TotalDownloads(ctx context.Context) (int64, error)
	CreateMaterial(ctx context.Context, req *model.MaterialRequest) (*model.MaterialResponse, error)
	UpdateMaterial(ctx context.Context, materialID uint, req *model.MaterialRequest) (*model.MaterialResponse, error)
	DeleteMaterial(ctx context.Context, materialID uint) error
}

type materialService struct {
	db           *gorm.DB
	materialRepo repository.MaterialRepository
	userRepo     repository.UserRepository
}

func NewMaterialService(db *gorm.DB, materialRepo repository.MaterialRepository, userRepo repository.UserRepository) MaterialService {
	return &materialService{db: db, materialRepo: materialRepo, userRepo: userRepo}
}

func (s *materialService) ListMaterials(ctx context.Context, userID uint, filter repository.MaterialFilter, req model.PageRequest) (*model.PageResponse[model.MaterialResponse], error) {
	logger := middleware.GetLogger(ctx)

	normalizeFilter(&filter)
	materials, total, err := s.materialRepo.FindPage(ctx, s.db, filter, req)
	if err != nil {
		logger.Error("Error listing materials", "error", err)
		return nil, model.ErrInternalServer
	}

	downloaded, err := s.downloadedSet(ctx, userID, materials)
	if err != nil {
		logger.Error("Error loading downloads", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.MaterialResponse, 0, len(materials))
	for _, material := range materials {
		content = append(content, model.NewMaterialResponse(material, downloaded[material.ID]))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *materialService) GetMaterial(ctx context.Context, materialID, userID uint) (*model.MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, s.db, materialID)
	if err != nil {
		return nil, err
	}

	isDownloaded := false
	if userID != 0 {
		if _, err := s.materialRepo.FindDownload(ctx, s.db, userID, materialID); err == nil {
			isDownloaded = true
		} else if !errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInternalServer
		}
	}

	resp := model.NewMaterialResponse(material, isDownloaded)
	return &resp, nil
}

func (s *materialService) ListFeatured(ctx context.Context, userID uint, req model.PageRequest) (*model.PageResponse[model.MaterialResponse], error) {
	featured := true
	return s.ListMaterials(ctx, userID, repository.MaterialFilter{Featured: &featured}, req)
}

// Download charges the material's point cost on first download only; repeat
// downloads are free.
func (s *materialService) Download(ctx context.Context, materialID, userID uint) (*model.MaterialResponse, error) {
	var material *model.Material

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		material, err = s.materialRepo.FindByID(ctx, tx, materialID)
		if err != nil {
			return err
		}
		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			return err
		}

		if _, err := s.materialRepo.FindDownload(ctx, tx, userID, materialID); err == nil {
			return nil
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		if user.Points < material.Points {
			return model.NewAppError("INSUFFICIENT_POINTS", "Insufficient points", "", model.ErrForbidden)
		}
		if material.Points > 0 {
			if err := s.userRepo.AddPoints(ctx, tx, userID, -material.Points); err != nil {
				return err
			}
		}
		if err := s.materialRepo.CreateDownload(ctx, tx, &model.MaterialDownload{
			UserID:     userID,
			MaterialID: materialID,
		}); err != nil {
			return err
		}
		if err := s.materialRepo.AddDownloads(ctx, tx, materialID, 1); err != nil {
			return err
		}

		material, err = s.materialRepo.FindByID(ctx, tx, materialID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewMaterialResponse(material, true)
	return &resp, nil
}

func (s *materialService) TotalCount(ctx context.Context) (int64, error) {
	total, err := s.materialRepo.Count(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error counting materials", "error", err)
		return 0, model.ErrInternalServer
	}
	return total, nil
}

func (s *materialService) TotalDownloads(ctx context.Context) (int64, error) {
	total, err := s.materialRepo.SumDownloads(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error summing downloads", "error", err)
		return 0, model.ErrInternalServer
	}
	return total, nil
}

func (s *materialService) CreateMaterial(ctx context.Context, req *model.MaterialRequest) (*model.MaterialResponse, error) {
	material := &model.Material{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Skill:       req.Skill,
		Type:        req.Type,
		Thumbnail:   req.Thumbnail,
		Rating:      req.Rating,
		Size:        req.Size,
		Points:      req.Points,
		IsFeatured:  req.IsFeatured,
		Duration:    req.Duration,
		PdfURL:      req.PdfURL,
		VideoURL:    req.VideoURL,
		AudioURL:    req.AudioURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.materialRepo.Create(ctx, tx, material)
	})
	if err != nil {
		return nil, model.ErrInternalServer
	}

	resp := model.NewMaterialResponse(material, false)
	return &resp, nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, materialID uint, req *model.MaterialRequest) (*model.MaterialResponse, error) {
	var updated *model.Material

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.materialRepo.FindByID(ctx, tx, materialID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"level":       req.Level,
			"skill":       req.Skill,
			"type":        req.Type,
			"thumbnail":   req.Thumbnail,
			"rating":      req.Rating,
			"size":        req.Size,
			"points":      req.Points,
			"is_featured": req.IsFeatured,
			"duration":    req.Duration,
			"pdf_url":     req.PdfURL,
			"video_url":   req.VideoURL,
			"audio_url":   req.AudioURL,
		}
		if err := s.materialRepo.Update(ctx, tx, materialID, updates); err != nil {
			return err
		}

		var err error
		updated, err = s.materialRepo.FindByID(ctx, tx, materialID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewMaterialResponse(updated, false)
	return &resp, nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, materialID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.materialRepo.Delete(ctx, tx, materialID)
	})
}

func (s *materialService) downloadedSet(ctx context.Context, userID uint, materials []*model.Material) (map[uint]bool, error) {
	if userID == 0 || len(materials) == 0 {
		return map[uint]bool{}, nil
	}
	ids := make([]uint, 0, len(materials))
	for _, material := range materials {
		ids = append(ids, material.ID)
	}
	return s.materialRepo.DownloadedMaterialIDs(ctx, s.db, userID, ids)
}

// normalizeFilter treats "all" the same as an absent filter value.
func normalizeFilter(filter *repository.MaterialFilter) {
	if strings.EqualFold(filter.Level, "all") {
		filter.Level = ""
	}
	if strings.EqualFold(filter.Skill, "all") {
		filter.Skill = ""
	}
	if strings.EqualFold(filter.Type, "all") {
		filter.Type = ""
	}
}
