package service

import (
	"context"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type SkillService interface {
	GetUserSkillProgress(ctx context.Context, userID uint) ([]model.SkillProgressResponse, error)
}

type skillService struct {
	db           *gorm.DB
	currRepo     repository.CurriculumRepository
	progressRepo repository.CurriculumProgressRepository
	userRepo     repository.UserRepository
}

func NewSkillService(
	db *gorm.DB,
	currRepo repository.CurriculumRepository,
	progressRepo repository.CurriculumProgressRepository,
	userRepo repository.UserRepository,
) SkillService {
	return &skillService{db: db, currRepo: currRepo, progressRepo: progressRepo, userRepo: userRepo}
}

// GetUserSkillProgress derives one shared completion fraction from curriculum
// progress and reports it for all four skills.
func (s *skillService) GetUserSkillProgress(ctx context.Context, userID uint) ([]model.SkillProgressResponse, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		return nil, err
	}

	curricula, err := s.currRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Error loading curricula for skill progress", "error", err)
		return nil, model.ErrInternalServer
	}
	progresses, err := s.progressRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error loading curriculum progress for skill progress", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	totalLessons := 0
	for _, curriculum := range curricula {
		totalLessons += curriculum.TotalLessons
	}
	completedLessons := 0
	for _, progress := range progresses {
		completedLessons += progress.CompletedLessons
	}

	percent := 0.0
	if totalLessons > 0 {
		percent = float64(completedLessons) / float64(totalLessons)
	}
	if percent > 1 {
		percent = 1
	}

	responses := make([]model.SkillProgressResponse, 0, len(model.SkillColors))
	for _, skill := range model.SkillColors {
		responses = append(responses, model.SkillProgressResponse{
			Label:   skill.Label,
			Percent: percent,
			Color:   skill.Color,
		})
	}
	return responses, nil
}
