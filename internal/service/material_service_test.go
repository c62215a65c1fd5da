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

func newMaterialService(t *testing.T) (MaterialService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewMaterialService(db, repository.NewGormMaterialRepository(), repository.NewGormUserRepository())
	return svc, db
}

func TestMaterialService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("charges points once and bumps the download counter", func(t *testing.T) {
		svc, db := newMaterialService(t)
		user := createTestUser(t, db, "dl@example.com", 100)
		material := &model.Material{Title: "TOPIK I đề thi", Points: 30}
		require.NoError(t, db.Create(material).Error)

		resp, err := svc.Download(ctx, material.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDownloaded)

		var reloadedUser model.User
		require.NoError(t, db.First(&reloadedUser, user.ID).Error)
		assert.Equal(t, 70, reloadedUser.Points)

		var reloadedMaterial model.Material
		require.NoError(t, db.First(&reloadedMaterial, material.ID).Error)
		assert.Equal(t, 1, reloadedMaterial.Downloads)
	})

	t.Run("repeat download is free", func(t *testing.T) {
		svc, db := newMaterialService(t)
		user := createTestUser(t, db, "repeat@example.com", 50)
		material := &model.Material{Title: "Ngữ pháp sơ cấp", Points: 30}
		require.NoError(t, db.Create(material).Error)

		_, err := svc.Download(ctx, material.ID, user.ID)
		require.NoError(t, err)
		resp, err := svc.Download(ctx, material.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDownloaded)

		var reloadedUser model.User
		require.NoError(t, db.First(&reloadedUser, user.ID).Error)
		assert.Equal(t, 20, reloadedUser.Points, "second download must not charge again")

		var reloadedMaterial model.Material
		require.NoError(t, db.First(&reloadedMaterial, material.ID).Error)
		assert.Equal(t, 1, reloadedMaterial.Downloads)
	})

	t.Run("rejects a user with insufficient points", func(t *testing.T) {
		svc, db := newMaterialService(t)
		user := createTestUser(t, db, "poor@example.com", 10)
		material := &model.Material{Title: "Luyện nghe nâng cao", Points: 30}
		require.NoError(t, db.Create(material).Error)

		_, err := svc.Download(ctx, material.ID, user.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrForbidden)

		var reloadedUser model.User
		require.NoError(t, db.First(&reloadedUser, user.ID).Error)
		assert.Equal(t, 10, reloadedUser.Points)
	})

	t.Run("free material costs nothing", func(t *testing.T) {
		svc, db := newMaterialService(t)
		user := createTestUser(t, db, "free@example.com", 0)
		material := &model.Material{Title: "Bảng chữ cái Hangul"}
		require.NoError(t, db.Create(material).Error)

		resp, err := svc.Download(ctx, material.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDownloaded)
	})
}

func TestMaterialService_ListMaterials_Overlay(t *testing.T) {
	ctx := context.Background()
	svc, db := newMaterialService(t)
	user := createTestUser(t, db, "list@example.com", 100)

	owned := &model.Material{Title: "owned"}
	other := &model.Material{Title: "other"}
	require.NoError(t, db.Create(owned).Error)
	require.NoError(t, db.Create(other).Error)

	_, err := svc.Download(ctx, owned.ID, user.ID)
	require.NoError(t, err)

	page, err := svc.ListMaterials(ctx, user.ID, repository.MaterialFilter{}, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)

	downloaded := map[uint]bool{}
	for _, m := range page.Content {
		downloaded[m.ID] = m.IsDownloaded
	}
	assert.True(t, downloaded[owned.ID])
	assert.False(t, downloaded[other.ID])
}

func TestMaterialService_ListMaterials_AllFilterIsIgnored(t *testing.T) {
	ctx := context.Background()
	svc, db := newMaterialService(t)

	require.NoError(t, db.Create(&model.Material{Title: "a", Level: "beginner"}).Error)
	require.NoError(t, db.Create(&model.Material{Title: "b", Level: "advanced"}).Error)

	page, err := svc.ListMaterials(ctx, 0, repository.MaterialFilter{Level: "All"}, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2, "a level of 'all' must not filter anything")

	page, err = svc.ListMaterials(ctx, 0, repository.MaterialFilter{Level: "beginner"}, model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
}

func TestMaterialService_Totals(t *testing.T) {
	ctx := context.Background()
	svc, db := newMaterialService(t)

	require.NoError(t, db.Create(&model.Material{Title: "a", Downloads: 3}).Error)
	require.NoError(t, db.Create(&model.Material{Title: "b", Downloads: 4}).Error)

	count, err := svc.TotalCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	downloads, err := svc.TotalDownloads(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7, downloads)
}
