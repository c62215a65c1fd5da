package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal payload carrying the PNG signature, enough for
// content-type sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

func newUserService(t *testing.T) (UserService, string, *model.User) {
	t.Helper()
	db := setupTestDB(t)
	uploadDir := t.TempDir()
	svc := NewUserService(db, repository.NewGormUserRepository(), uploadDir)
	user := createTestUser(t, db, "avatar@example.com", 0)
	return svc, uploadDir, user
}

func TestUserService_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	svc, uploadDir, user := newUserService(t)

	resp, err := svc.UploadAvatar(ctx, user.ID, "me.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)

	prefix := fmt.Sprintf("/uploads/avatars/avatar_%d_", user.ID)
	assert.True(t, strings.HasPrefix(resp.Avatar, prefix), "avatar path %q", resp.Avatar)
	assert.True(t, strings.HasSuffix(resp.Avatar, ".png"))

	stored, err := os.ReadFile(filepath.Join(uploadDir, "avatars", filepath.Base(resp.Avatar)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)
}

func TestUserService_UploadAvatar_RejectsNonImage(t *testing.T) {
	ctx := context.Background()
	svc, uploadDir, user := newUserService(t)

	_, err := svc.UploadAvatar(ctx, user.ID, "notes.txt", strings.NewReader("just text, not an image"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = os.Stat(filepath.Join(uploadDir, "avatars"))
	assert.True(t, os.IsNotExist(err), "nothing should be written for a rejected upload")
}

func TestUserService_UploadAvatar_RejectsEmptyFile(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newUserService(t)

	_, err := svc.UploadAvatar(ctx, user.ID, "empty.png", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUserService_UploadAvatar_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService(t)

	_, err := svc.UploadAvatar(ctx, 9999, "me.png", bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	svc, _, user := newUserService(t)

	name := "Nguyễn Văn A"
	level := "Sơ cấp 2"
	resp, err := svc.UpdateUser(ctx, user.ID, &model.UpdateUserRequest{Name: &name, Level: &level})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn A", resp.Name)
	assert.Equal(t, "Sơ cấp 2", resp.Level)
	assert.Equal(t, user.Email, resp.Email)
}
