package service

import (
	"context"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type RankingService interface {
	ListRankings(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.RankingEntryResponse], error)
	ListAllRankings(ctx context.Context) ([]model.RankingEntryResponse, error)
	GetUserRanking(ctx context.Context, userID uint) (*model.RankingEntryResponse, error)
}

type rankingService struct {
	db          *gorm.DB
	rankingRepo repository.RankingRepository
}

func NewRankingService(db *gorm.DB, rankingRepo repository.RankingRepository) RankingService {
	return &rankingService{db: db, rankingRepo: rankingRepo}
}

func (s *rankingService) ListRankings(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.RankingEntryResponse], error) {
	rankings, total, err := s.rankingRepo.FindPage(ctx, s.db, req)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing rankings", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.RankingEntryResponse, 0, len(rankings))
	for i, ranking := range rankings {
		content = append(content, newRankingEntry(ranking, req.Offset()+i+1, false))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *rankingService) ListAllRankings(ctx context.Context) ([]model.RankingEntryResponse, error) {
	rankings, err := s.rankingRepo.FindOrdered(ctx, s.db, 0)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing rankings", "error", err)
		return nil, model.ErrInternalServer
	}

	entries := make([]model.RankingEntryResponse, 0, len(rankings))
	for i, ranking := range rankings {
		entries = append(entries, newRankingEntry(ranking, i+1, false))
	}
	return entries, nil
}

// GetUserRanking derives the position from the user's index in the full
// ordering.
func (s *rankingService) GetUserRanking(ctx context.Context, userID uint) (*model.RankingEntryResponse, error) {
	ranking, err := s.rankingRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.rankingRepo.FindOrdered(ctx, s.db, 0)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error computing ranking position", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	position := 0
	for i, r := range all {
		if r.UserID == userID {
			position = i + 1
			break
		}
	}

	entry := newRankingEntry(ranking, position, true)
	return &entry, nil
}

func newRankingEntry(ranking *model.Ranking, position int, isCurrentUser bool) model.RankingEntryResponse {
	name := ""
	if ranking.User != nil {
		name = ranking.User.Name
	}
	return model.RankingEntryResponse{
		Position:      position,
		Name:          name,
		Points:        ranking.Points,
		Days:          ranking.Days,
		IsCurrentUser: isCurrentUser,
		Color:         ranking.Color,
	}
}
