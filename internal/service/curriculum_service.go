package service

import (
	"context"
	"errors"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type CurriculumService interface {
	ListCurricula(ctx context.Context, userID uint, req model.PageRequest) (*model.PageResponse[model.CurriculumResponse], error)
	GetCurriculum(ctx context.Context, curriculumID uint) (*model.CurriculumResponse, error)
	GetCurriculumByBookNumber(ctx context.Context, bookNumber int) (*model.CurriculumResponse, error)
	CreateCurriculum(ctx context.Context, req *model.CurriculumRequest) (*model.CurriculumResponse, error)
	UpdateCurriculum(ctx context.Context, curriculumID uint, req *model.CurriculumRequest) (*model.CurriculumResponse, error)
	DeleteCurriculum(ctx context.Context, curriculumID uint) error
	GetCurriculumProgress(ctx context.Context, curriculumID, userID uint) (*model.CurriculumResponse, error)
}

type curriculumService struct {
	db           *gorm.DB
	currRepo     repository.CurriculumRepository
	progressRepo repository.CurriculumProgressRepository
	userRepo     repository.UserRepository
}

func NewCurriculumService(
	db *gorm.DB,
	currRepo repository.CurriculumRepository,
	progressRepo repository.CurriculumProgressRepository,
	userRepo repository.UserRepository,
) CurriculumService {
	return &curriculumService{db: db, currRepo: currRepo, progressRepo: progressRepo, userRepo: userRepo}
}

// ListCurricula returns the paged catalog. With a user it also unlocks book 1
// on first sight and overlays that user's per-book progress.
func (s *curriculumService) ListCurricula(ctx context.Context, userID uint, req model.PageRequest) (*model.PageResponse[model.CurriculumResponse], error) {
	logger := middleware.GetLogger(ctx)

	if userID != 0 {
		if err := s.seedFirstBook(ctx, userID); err != nil {
			logger.Error("Error seeding first curriculum progress", "error", err, "user_id", userID)
			return nil, model.ErrInternalServer
		}
	}

	curricula, total, err := s.currRepo.FindPage(ctx, s.db, req)
	if err != nil {
		logger.Error("Error listing curricula", "error", err)
		return nil, model.ErrInternalServer
	}

	progressByID := make(map[uint]*model.CurriculumProgress)
	if userID != 0 {
		progresses, err := s.progressRepo.FindByUser(ctx, s.db, userID)
		if err != nil {
			logger.Error("Error loading curriculum progress", "error", err, "user_id", userID)
			return nil, model.ErrInternalServer
		}
		for _, p := range progresses {
			progressByID[p.CurriculumID] = p
		}
	}

	content := make([]model.CurriculumResponse, 0, len(curricula))
	for _, curriculum := range curricula {
		content = append(content, newCurriculumResponse(curriculum, progressByID[curriculum.ID]))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *curriculumService) GetCurriculum(ctx context.Context, curriculumID uint) (*model.CurriculumResponse, error) {
	curriculum, err := s.currRepo.FindByID(ctx, s.db, curriculumID)
	if err != nil {
		return nil, err
	}
	resp := newCurriculumResponse(curriculum, nil)
	return &resp, nil
}

func (s *curriculumService) GetCurriculumByBookNumber(ctx context.Context, bookNumber int) (*model.CurriculumResponse, error) {
	curriculum, err := s.currRepo.FindByBookNumber(ctx, s.db, bookNumber)
	if err != nil {
		return nil, err
	}
	resp := newCurriculumResponse(curriculum, nil)
	return &resp, nil
}

func (s *curriculumService) CreateCurriculum(ctx context.Context, req *model.CurriculumRequest) (*model.CurriculumResponse, error) {
	curriculum := &model.Curriculum{
		BookNumber:   req.BookNumber,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		TotalLessons: req.TotalLessons,
		Color:        req.Color,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.currRepo.FindByBookNumber(ctx, tx, req.BookNumber); err == nil {
			return model.NewAppError("BOOK_NUMBER_TAKEN", "A curriculum with this book number already exists", "bookNumber", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		return s.currRepo.Create(ctx, tx, curriculum)
	})
	if err != nil {
		return nil, err
	}

	resp := newCurriculumResponse(curriculum, nil)
	return &resp, nil
}

func (s *curriculumService) UpdateCurriculum(ctx context.Context, curriculumID uint, req *model.CurriculumRequest) (*model.CurriculumResponse, error) {
	var updated *model.Curriculum

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.currRepo.FindByID(ctx, tx, curriculumID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"book_number":   req.BookNumber,
			"title":         req.Title,
			"subtitle":      req.Subtitle,
			"total_lessons": req.TotalLessons,
			"color":         req.Color,
		}
		if err := s.currRepo.Update(ctx, tx, curriculumID, updates); err != nil {
			return err
		}

		var err error
		updated, err = s.currRepo.FindByID(ctx, tx, curriculumID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newCurriculumResponse(updated, nil)
	return &resp, nil
}

func (s *curriculumService) DeleteCurriculum(ctx context.Context, curriculumID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.currRepo.Delete(ctx, tx, curriculumID)
	})
}

// GetCurriculumProgress creates an unlocked zero-progress row on first access.
func (s *curriculumService) GetCurriculumProgress(ctx context.Context, curriculumID, userID uint) (*model.CurriculumResponse, error) {
	var (
		curriculum *model.Curriculum
		progress   *model.CurriculumProgress
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		curriculum, err = s.currRepo.FindByID(ctx, tx, curriculumID)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		progress, err = s.progressRepo.Find(ctx, tx, userID, curriculumID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		progress = &model.CurriculumProgress{UserID: userID, CurriculumID: curriculumID}
		return s.progressRepo.Create(ctx, tx, progress)
	})
	if err != nil {
		return nil, err
	}

	resp := newCurriculumResponse(curriculum, progress)
	return &resp, nil
}

// seedFirstBook gives a user their book 1 progress row (first book as a
// fallback) so the curriculum screen always has an entry point.
func (s *curriculumService) seedFirstBook(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		first, err := s.currRepo.FindByBookNumber(ctx, tx, 1)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			all, err := s.currRepo.FindAll(ctx, tx)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				return nil
			}
			first = all[0]
		}

		if _, err := s.progressRepo.Find(ctx, tx, userID, first.ID); err == nil {
			return nil
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		return s.progressRepo.Create(ctx, tx, &model.CurriculumProgress{
			UserID:       userID,
			CurriculumID: first.ID,
		})
	})
}

func newCurriculumResponse(curriculum *model.Curriculum, progress *model.CurriculumProgress) model.CurriculumResponse {
	resp := model.CurriculumResponse{
		ID:           curriculum.ID,
		BookNumber:   curriculum.BookNumber,
		Title:        curriculum.Title,
		Subtitle:     curriculum.Subtitle,
		TotalLessons: curriculum.TotalLessons,
		Color:        curriculum.Color,
	}
	if progress != nil {
		resp.CompletedLessons = progress.CompletedLessons
		resp.IsCompleted = progress.IsCompleted
		resp.IsLocked = progress.IsLocked
	}
	return resp
}
