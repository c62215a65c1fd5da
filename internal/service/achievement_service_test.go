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

func newAchievementService(t *testing.T) (AchievementService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewAchievementService(db, repository.NewGormAchievementRepository(), repository.NewGormUserRepository())
	return svc, db
}

func seedAchievements(t *testing.T, db *gorm.DB) (first, second *model.Achievement) {
	t.Helper()
	first = &model.Achievement{Title: "Chuỗi 7 ngày", IconLabel: "🔥", TargetCount: 7}
	second = &model.Achievement{Title: "100 từ vựng", IconLabel: "📚", TargetCount: 100}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)
	return first, second
}

func TestAchievementService_ListAchievements_CatalogHasZeroProgress(t *testing.T) {
	ctx := context.Background()
	svc, db := newAchievementService(t)
	seedAchievements(t, db)
	user := createTestUser(t, db, "catalog@example.com", 0)

	// Even with user progress on record, the catalog stays neutral.
	var first model.Achievement
	require.NoError(t, db.First(&first).Error)
	require.NoError(t, db.Create(&model.UserAchievement{
		UserID: user.ID, AchievementID: first.ID, CurrentCount: 5, Progress: 0.7,
	}).Error)

	page, err := svc.ListAchievements(ctx, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	for _, item := range page.Content {
		assert.Equal(t, 0, item.Count)
		assert.Equal(t, 0.0, item.Progress)
		assert.False(t, item.IsCompleted)
	}
}

func TestAchievementService_GetUserAchievements(t *testing.T) {
	ctx := context.Background()
	svc, db := newAchievementService(t)
	first, _ := seedAchievements(t, db)
	user := createTestUser(t, db, "mine@example.com", 0)

	require.NoError(t, db.Create(&model.UserAchievement{
		UserID: user.ID, AchievementID: first.ID, CurrentCount: 7, IsCompleted: true, Progress: 1,
	}).Error)

	items, err := svc.GetUserAchievements(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "only touched achievements are listed")
	assert.Equal(t, "Chuỗi 7 ngày", items[0].Title)
	assert.Equal(t, 7, items[0].Count)
	assert.True(t, items[0].IsCompleted)
}

func TestAchievementService_GetUserAchievement_DoesNotSeed(t *testing.T) {
	ctx := context.Background()
	svc, db := newAchievementService(t)
	first, _ := seedAchievements(t, db)
	user := createTestUser(t, db, "noseed@example.com", 0)

	_, err := svc.GetUserAchievement(ctx, user.ID, first.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count, "a read must not create a progress row")
}
