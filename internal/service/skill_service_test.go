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

func newSkillService(t *testing.T) (SkillService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewSkillService(
		db,
		repository.NewGormCurriculumRepository(),
		repository.NewGormCurriculumProgressRepository(),
		repository.NewGormUserRepository(),
	)
	return svc, db
}

func TestSkillService_GetUserSkillProgress(t *testing.T) {
	ctx := context.Background()
	svc, db := newSkillService(t)
	user := createTestUser(t, db, "skills@example.com", 0)

	book1 := &model.Curriculum{BookNumber: 1, Title: "Quyển 1", TotalLessons: 20}
	book2 := &model.Curriculum{BookNumber: 2, Title: "Quyển 2", TotalLessons: 20}
	require.NoError(t, db.Create(book1).Error)
	require.NoError(t, db.Create(book2).Error)

	require.NoError(t, db.Create(&model.CurriculumProgress{
		UserID: user.ID, CurriculumID: book1.ID, CompletedLessons: 10,
	}).Error)

	skills, err := svc.GetUserSkillProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, skills, len(model.SkillColors))

	// 10 of 40 lessons completed; the fraction is shared across all skills.
	for i, skill := range skills {
		assert.Equal(t, model.SkillColors[i].Label, skill.Label)
		assert.Equal(t, model.SkillColors[i].Color, skill.Color)
		assert.InDelta(t, 0.25, skill.Percent, 1e-9)
	}
}

func TestSkillService_GetUserSkillProgress_NoCurricula(t *testing.T) {
	ctx := context.Background()
	svc, db := newSkillService(t)
	user := createTestUser(t, db, "empty@example.com", 0)

	skills, err := svc.GetUserSkillProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, skills, len(model.SkillColors))
	for _, skill := range skills {
		assert.Equal(t, 0.0, skill.Percent)
	}
}

func TestSkillService_GetUserSkillProgress_ClampsToOne(t *testing.T) {
	ctx := context.Background()
	svc, db := newSkillService(t)
	user := createTestUser(t, db, "clamp@example.com", 0)

	book := &model.Curriculum{BookNumber: 1, Title: "Quyển 1", TotalLessons: 10}
	require.NoError(t, db.Create(book).Error)
	require.NoError(t, db.Create(&model.CurriculumProgress{
		UserID: user.ID, CurriculumID: book.ID, CompletedLessons: 15,
	}).Error)

	skills, err := svc.GetUserSkillProgress(ctx, user.ID)
	require.NoError(t, err)
	for _, skill := range skills {
		assert.Equal(t, 1.0, skill.Percent)
	}
}

func TestSkillService_GetUserSkillProgress_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSkillService(t)

	_, err := svc.GetUserSkillProgress(ctx, 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
