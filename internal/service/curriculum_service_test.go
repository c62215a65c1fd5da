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

func newCurriculumService(t *testing.T) (CurriculumService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCurriculumService(
		db,
		repository.NewGormCurriculumRepository(),
		repository.NewGormCurriculumProgressRepository(),
		repository.NewGormUserRepository(),
	)
	return svc, db
}

func seedCurricula(t *testing.T, db *gorm.DB) (book1, book2 *model.Curriculum) {
	t.Helper()
	book1 = &model.Curriculum{BookNumber: 1, Title: "Quyển 1", TotalLessons: 20}
	book2 = &model.Curriculum{BookNumber: 2, Title: "Quyển 2", TotalLessons: 18}
	require.NoError(t, db.Create(book1).Error)
	require.NoError(t, db.Create(book2).Error)
	return book1, book2
}

func TestCurriculumService_ListCurricula_SeedsFirstBook(t *testing.T) {
	ctx := context.Background()
	svc, db := newCurriculumService(t)
	book1, book2 := seedCurricula(t, db)
	user := createTestUser(t, db, "seed@example.com", 0)

	page, err := svc.ListCurricula(ctx, user.ID, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)

	var progress model.CurriculumProgress
	require.NoError(t, db.Where("user_id = ? AND curriculum_id = ?", user.ID, book1.ID).First(&progress).Error)
	assert.False(t, progress.IsLocked)

	var count int64
	require.NoError(t, db.Model(&model.CurriculumProgress{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "only the first book is unlocked up front")

	// Listing again must not duplicate the seeded row.
	_, err = svc.ListCurricula(ctx, user.ID, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.CurriculumProgress{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_ = book2
}

func TestCurriculumService_ListCurricula_AnonymousSkipsSeeding(t *testing.T) {
	ctx := context.Background()
	svc, db := newCurriculumService(t)
	seedCurricula(t, db)

	page, err := svc.ListCurricula(ctx, 0, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)

	var count int64
	require.NoError(t, db.Model(&model.CurriculumProgress{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCurriculumService_GetCurriculumProgress_SeedsOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	svc, db := newCurriculumService(t)
	_, book2 := seedCurricula(t, db)
	user := createTestUser(t, db, "progress@example.com", 0)

	resp, err := svc.GetCurriculumProgress(ctx, book2.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CompletedLessons)
	assert.Equal(t, book2.TotalLessons, resp.TotalLessons)

	var count int64
	require.NoError(t, db.Model(&model.CurriculumProgress{}).
		Where("user_id = ? AND curriculum_id = ?", user.ID, book2.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCurriculumService_CreateCurriculum_DuplicateBookNumber(t *testing.T) {
	ctx := context.Background()
	svc, db := newCurriculumService(t)
	seedCurricula(t, db)

	_, err := svc.CreateCurriculum(ctx, &model.CurriculumRequest{
		BookNumber: 1, Title: "Trùng số quyển",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)

	created, err := svc.CreateCurriculum(ctx, &model.CurriculumRequest{
		BookNumber: 3, Title: "Quyển 3", TotalLessons: 16,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.BookNumber)
}

func TestCurriculumService_ListCurricula_OverlaysProgress(t *testing.T) {
	ctx := context.Background()
	svc, db := newCurriculumService(t)
	book1, _ := seedCurricula(t, db)
	user := createTestUser(t, db, "overlay@example.com", 0)

	require.NoError(t, db.Create(&model.CurriculumProgress{
		UserID: user.ID, CurriculumID: book1.ID, CompletedLessons: 7,
	}).Error)

	page, err := svc.ListCurricula(ctx, user.ID, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)

	var found bool
	for _, c := range page.Content {
		if c.ID == book1.ID {
			found = true
			assert.Equal(t, 7, c.CompletedLessons)
		}
	}
	assert.True(t, found)
}
