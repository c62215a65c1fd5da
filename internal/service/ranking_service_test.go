package service

import (
	"context"
	"testing"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRankingService(t *testing.T) (RankingService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewRankingService(db, repository.NewGormRankingRepository()), db
}

func seedRankings(t *testing.T, db *gorm.DB) (top, mid, low *model.User) {
	t.Helper()
	top = createTestUser(t, db, "top@example.com", 0)
	mid = createTestUser(t, db, "mid@example.com", 0)
	low = createTestUser(t, db, "low@example.com", 0)
	require.NoError(t, db.Create(&model.Ranking{UserID: top.ID, Points: 300, Days: 10}).Error)
	require.NoError(t, db.Create(&model.Ranking{UserID: mid.ID, Points: 200, Days: 30}).Error)
	require.NoError(t, db.Create(&model.Ranking{UserID: low.ID, Points: 100, Days: 5}).Error)
	return top, mid, low
}

func TestRankingService_ListRankings_Positions(t *testing.T) {
	ctx := context.Background()
	svc, db := newRankingService(t)
	seedRankings(t, db)

	page, err := svc.ListRankings(ctx, model.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, 1, page.Content[0].Position)
	assert.Equal(t, 300, page.Content[0].Points)
	assert.Equal(t, 2, page.Content[1].Position)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.True(t, page.HasNext)

	// The second page keeps counting from the overall offset.
	page, err = svc.ListRankings(ctx, model.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, 3, page.Content[0].Position)
	assert.Equal(t, 100, page.Content[0].Points)
}

func TestRankingService_ListAllRankings(t *testing.T) {
	ctx := context.Background()
	svc, db := newRankingService(t)
	seedRankings(t, db)

	entries, err := svc.ListAllRankings(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Position)
		assert.False(t, entry.IsCurrentUser)
	}
}

func TestRankingService_GetUserRanking(t *testing.T) {
	ctx := context.Background()
	svc, db := newRankingService(t)
	_, mid, _ := seedRankings(t, db)

	entry, err := svc.GetUserRanking(ctx, mid.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Position)
	assert.Equal(t, 200, entry.Points)
	assert.True(t, entry.IsCurrentUser)

	stranger := createTestUser(t, db, "stranger@example.com", 0)
	_, err = svc.GetUserRanking(ctx, stranger.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
