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

func newVocabFolderService(t *testing.T) (VocabFolderService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewVocabFolderService(db, repository.NewGormVocabFolderRepository(), repository.NewGormUserRepository())
	return svc, db
}

func TestVocabFolderService_CreateFolder(t *testing.T) {
	ctx := context.Background()
	svc, db := newVocabFolderService(t)
	user := createTestUser(t, db, "folders@example.com", 0)

	folder, err := svc.CreateFolder(ctx, user.ID, &model.VocabularyFolderRequest{Name: "Chủ đề gia đình"})
	require.NoError(t, err)
	assert.Equal(t, "Chủ đề gia đình", folder.Name)
	assert.Equal(t, model.DefaultFolderIcon, folder.Icon, "missing icon falls back to the default")
	assert.Equal(t, 0, folder.WordCount)

	custom, err := svc.CreateFolder(ctx, user.ID, &model.VocabularyFolderRequest{Name: "Động từ", Icon: "🔥"})
	require.NoError(t, err)
	assert.Equal(t, "🔥", custom.Icon)
}

func TestVocabFolderService_OwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	svc, db := newVocabFolderService(t)
	owner := createTestUser(t, db, "owner@example.com", 0)
	intruder := createTestUser(t, db, "intruder@example.com", 0)

	folder, err := svc.CreateFolder(ctx, owner.ID, &model.VocabularyFolderRequest{Name: "Riêng tư"})
	require.NoError(t, err)

	_, err = svc.GetFolder(ctx, folder.ID, intruder.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.UpdateFolder(ctx, folder.ID, intruder.ID, &model.VocabularyFolderRequest{Name: "hacked"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrForbidden)

	err = svc.DeleteFolder(ctx, folder.ID, intruder.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrForbidden)

	// The owner still sees the untouched folder.
	got, err := svc.GetFolder(ctx, folder.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riêng tư", got.Name)
}

func TestVocabFolderService_Words(t *testing.T) {
	ctx := context.Background()
	svc, db := newVocabFolderService(t)
	user := createTestUser(t, db, "words@example.com", 0)

	folder, err := svc.CreateFolder(ctx, user.ID, &model.VocabularyFolderRequest{Name: "Từ mới"})
	require.NoError(t, err)

	word, err := svc.AddWord(ctx, folder.ID, user.ID, &model.VocabularyWordRequest{
		Korean:     "사랑",
		Vietnamese: "tình yêu",
	})
	require.NoError(t, err)
	assert.False(t, word.IsLearned)

	learned := true
	updated, err := svc.UpdateWord(ctx, word.ID, user.ID, &model.VocabularyWordRequest{
		Korean:     "사랑",
		Vietnamese: "tình yêu",
		IsLearned:  &learned,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsLearned)

	got, err := svc.GetFolder(ctx, folder.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.WordCount)
	require.Len(t, got.Words, 1)
	assert.Equal(t, "사랑", got.Words[0].Korean)

	// A stranger cannot touch words through the folder they do not own.
	intruder := createTestUser(t, db, "intruder@example.com", 0)
	_, err = svc.UpdateWord(ctx, word.ID, intruder.ID, &model.VocabularyWordRequest{
		Korean: "x", Vietnamese: "y",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrForbidden)

	require.NoError(t, svc.DeleteWord(ctx, word.ID, user.ID))
	got, err = svc.GetFolder(ctx, folder.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.WordCount)
}

func TestVocabFolderService_DeleteFolderCascades(t *testing.T) {
	ctx := context.Background()
	svc, db := newVocabFolderService(t)
	user := createTestUser(t, db, "cascade@example.com", 0)

	folder, err := svc.CreateFolder(ctx, user.ID, &model.VocabularyFolderRequest{Name: "Xoá"})
	require.NoError(t, err)
	_, err = svc.AddWord(ctx, folder.ID, user.ID, &model.VocabularyWordRequest{Korean: "가", Vietnamese: "đi"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFolder(ctx, folder.ID, user.ID))

	folders, err := svc.ListFolders(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, folders)

	var words int64
	require.NoError(t, db.Model(&model.VocabularyWord{}).Where("folder_id = ?", folder.ID).Count(&words).Error)
	assert.EqualValues(t, 0, words)
}
