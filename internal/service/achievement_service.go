package service

import (
	"context"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type AchievementService interface {
	ListAchievements(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.AchievementItemResponse], error)
	GetUserAchievements(ctx context.Context, userID uint) ([]model.AchievementItemResponse, error)
	GetUserAchievement(ctx context.Context, userID, achievementID uint) (*model.AchievementItemResponse, error)
}

type achievementService struct {
	db              *gorm.DB
	achievementRepo repository.AchievementRepository
	userRepo        repository.UserRepository
}

func NewAchievementService(db *gorm.DB, achievementRepo repository.AchievementRepository, userRepo repository.UserRepository) AchievementService {
	return &achievementService{db: db, achievementRepo: achievementRepo, userRepo: userRepo}
}

// ListAchievements returns the catalog with zero progress; per-user state
// comes from GetUserAchievements.
func (s *achievementService) ListAchievements(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.AchievementItemResponse], error) {
	achievements, total, err := s.achievementRepo.FindPage(ctx, s.db, req)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing achievements", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.AchievementItemResponse, 0, len(achievements))
	for _, achievement := range achievements {
		content = append(content, newAchievementItem(achievement, nil))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *achievementService) GetUserAchievements(ctx context.Context, userID uint) ([]model.AchievementItemResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		return nil, err
	}

	uas, err := s.achievementRepo.FindUserAchievements(ctx, s.db, userID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing user achievements", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	items := make([]model.AchievementItemResponse, 0, len(uas))
	for _, ua := range uas {
		if ua.Achievement == nil {
			continue
		}
		items = append(items, newAchievementItem(ua.Achievement, ua))
	}
	return items, nil
}

// GetUserAchievement does not seed: a user who never touched an achievement
// gets a not found.
func (s *achievementService) GetUserAchievement(ctx context.Context, userID, achievementID uint) (*model.AchievementItemResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		return nil, err
	}
	achievement, err := s.achievementRepo.FindByID(ctx, s.db, achievementID)
	if err != nil {
		return nil, err
	}

	ua, err := s.achievementRepo.FindUserAchievement(ctx, s.db, userID, achievementID)
	if err != nil {
		return nil, err
	}

	item := newAchievementItem(achievement, ua)
	return &item, nil
}

func newAchievementItem(achievement *model.Achievement, ua *model.UserAchievement) model.AchievementItemResponse {
	item := model.AchievementItemResponse{
		IconLabel: achievement.IconLabel,
		Title:     achievement.Title,
		Subtitle:  achievement.Subtitle,
		Color:     achievement.Color,
	}
	if ua != nil {
		item.Count = ua.CurrentCount
		item.IsCompleted = ua.IsCompleted
		item.Progress = ua.Progress
	}
	return item
}
