package service

import (
	"context"
	"errors"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type TextbookService interface {
	ListTextbooks(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.TextbookResponse], error)
	GetTextbook(ctx context.Context, textbookID uint) (*model.TextbookResponse, error)
	GetTextbookByBookNumber(ctx context.Context, bookNumber int) (*model.TextbookResponse, error)
	CreateTextbook(ctx context.Context, req *model.TextbookRequest) (*model.TextbookResponse, error)
	UpdateTextbook(ctx context.Context, textbookID uint, req *model.TextbookRequest) (*model.TextbookResponse, error)
	DeleteTextbook(ctx context.Context, textbookID uint) error
	GetTextbookProgress(ctx context.Context, textbookID, userID uint) (*model.TextbookResponse, error)
}

type textbookService struct {
	db           *gorm.DB
	textbookRepo repository.TextbookRepository
	progressRepo repository.TextbookProgressRepository
	userRepo     repository.UserRepository
}

func NewTextbookService(
	db *gorm.DB,
	textbookRepo repository.TextbookRepository,
	progressRepo repository.TextbookProgressRepository,
	userRepo repository.UserRepository,
) TextbookService {
	return &textbookService{db: db, textbookRepo: textbookRepo, progressRepo: progressRepo, userRepo: userRepo}
}

func (s *textbookService) ListTextbooks(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.TextbookResponse], error) {
	textbooks, total, err := s.textbookRepo.FindPage(ctx, s.db, req)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing textbooks", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.TextbookResponse, 0, len(textbooks))
	for _, textbook := range textbooks {
		content = append(content, newTextbookResponse(textbook, nil))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *textbookService) GetTextbook(ctx context.Context, textbookID uint) (*model.TextbookResponse, error) {
	textbook, err := s.textbookRepo.FindByID(ctx, s.db, textbookID)
	if err != nil {
		return nil, err
	}
	resp := newTextbookResponse(textbook, nil)
	return &resp, nil
}

func (s *textbookService) GetTextbookByBookNumber(ctx context.Context, bookNumber int) (*model.TextbookResponse, error) {
	textbook, err := s.textbookRepo.FindByBookNumber(ctx, s.db, bookNumber)
	if err != nil {
		return nil, err
	}
	resp := newTextbookResponse(textbook, nil)
	return &resp, nil
}

func (s *textbookService) CreateTextbook(ctx context.Context, req *model.TextbookRequest) (*model.TextbookResponse, error) {
	textbook := &model.Textbook{
		BookNumber:   req.BookNumber,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		TotalLessons: req.TotalLessons,
		Color:        req.Color,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.textbookRepo.FindByBookNumber(ctx, tx, req.BookNumber); err == nil {
			return model.NewAppError("BOOK_NUMBER_TAKEN", "A textbook with this book number already exists", "bookNumber", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		return s.textbookRepo.Create(ctx, tx, textbook)
	})
	if err != nil {
		return nil, err
	}

	resp := newTextbookResponse(textbook, nil)
	return &resp, nil
}

func (s *textbookService) UpdateTextbook(ctx context.Context, textbookID uint, req *model.TextbookRequest) (*model.TextbookResponse, error) {
	var updated *model.Textbook

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.textbookRepo.FindByID(ctx, tx, textbookID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"book_number":   req.BookNumber,
			"title":         req.Title,
			"subtitle":      req.Subtitle,
			"total_lessons": req.TotalLessons,
			"color":         req.Color,
		}
		if err := s.textbookRepo.Update(ctx, tx, textbookID, updates); err != nil {
			return err
		}

		var err error
		updated, err = s.textbookRepo.FindByID(ctx, tx, textbookID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newTextbookResponse(updated, nil)
	return &resp, nil
}

func (s *textbookService) DeleteTextbook(ctx context.Context, textbookID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.textbookRepo.Delete(ctx, tx, textbookID)
	})
}

// GetTextbookProgress creates a zero-progress row on first access.
func (s *textbookService) GetTextbookProgress(ctx context.Context, textbookID, userID uint) (*model.TextbookResponse, error) {
	var (
		textbook *model.Textbook
		progress *model.TextbookProgress
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		textbook, err = s.textbookRepo.FindByID(ctx, tx, textbookID)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		progress, err = s.progressRepo.Find(ctx, tx, userID, textbookID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		progress = &model.TextbookProgress{UserID: userID, TextbookID: textbookID}
		return s.progressRepo.Create(ctx, tx, progress)
	})
	if err != nil {
		return nil, err
	}

	resp := newTextbookResponse(textbook, progress)
	return &resp, nil
}

func newTextbookResponse(textbook *model.Textbook, progress *model.TextbookProgress) model.TextbookResponse {
	resp := model.TextbookResponse{
		BookNumber:   textbook.BookNumber,
		Title:        textbook.Title,
		Subtitle:     textbook.Subtitle,
		TotalLessons: textbook.TotalLessons,
		Color:        textbook.Color,
	}
	if progress != nil {
		resp.CompletedLessons = progress.CompletedLessons
		resp.IsCompleted = progress.IsCompleted
		resp.IsLocked = progress.IsLocked
	}
	return resp
}
