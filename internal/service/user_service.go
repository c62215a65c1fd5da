package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetUser(ctx context.Context, userID uint) (*model.UserResponse, error)
	UpdateUser(ctx context.Context, userID uint, req *model.UpdateUserRequest) (*model.UserResponse, error)
	UploadAvatar(ctx context.Context, userID uint, filename string, file io.Reader) (*model.UserResponse, error)
}

type userService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	uploadDir string
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, uploadDir string) UserService {
	return &userService{db: db, userRepo: userRepo, uploadDir: uploadDir}
}

func (s *userService) GetUser(ctx context.Context, userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	resp := model.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uint, req *model.UpdateUserRequest) (*model.UserResponse, error) {
	var updated *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Avatar != nil {
			updates["avatar"] = *req.Avatar
		}
		if req.Level != nil {
			updates["level"] = *req.Level
		}
		if err := s.userRepo.Update(ctx, tx, userID, updates); err != nil {
			return err
		}

		var err error
		updated, err = s.userRepo.FindByID(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewUserResponse(updated)
	return &resp, nil
}

// UploadAvatar stores the image under uploads/avatars/ and records the public
// path on the user row. The payload is sniffed; anything that does not look
// like an image is rejected before touching the filesystem.
func (s *userService) UploadAvatar(ctx context.Context, userID uint, filename string, file io.Reader) (*model.UserResponse, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		logger.Error("Error reading avatar upload", "error", err)
		return nil, model.ErrInternalServer
	}
	head = head[:n]
	if n == 0 {
		return nil, model.NewAppError("INVALID_IMAGE", "Uploaded file is empty.", "avatar", model.ErrInvalidInput)
	}
	if contentType := http.DetectContentType(head); !strings.HasPrefix(contentType, "image/") {
		return nil, model.NewAppError("INVALID_IMAGE", "Uploaded file must be an image.", "avatar", model.ErrInvalidInput)
	}

	ext := filepath.Ext(filename)
	stored := fmt.Sprintf("avatar_%d_%s%s", userID, uuid.New().String(), ext)

	avatarDir := filepath.Join(s.uploadDir, "avatars")
	if err := os.MkdirAll(avatarDir, 0o755); err != nil {
		logger.Error("Error creating upload directory", "error", err, "dir", avatarDir)
		return nil, model.ErrInternalServer
	}

	dst, err := os.Create(filepath.Join(avatarDir, stored))
	if err != nil {
		logger.Error("Error creating avatar file", "error", err)
		return nil, model.ErrInternalServer
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		logger.Error("Error writing avatar file", "error", err)
		return nil, model.ErrInternalServer
	}

	avatarPath := fmt.Sprintf("/uploads/avatars/%s", stored)

	var updated *model.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(ctx, tx, userID, map[string]interface{}{"avatar": avatarPath}); err != nil {
			return err
		}
		var err error
		updated, err = s.userRepo.FindByID(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewUserResponse(updated)
	return &resp, nil
}
