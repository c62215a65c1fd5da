package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type VocabFolderRepository interface {
	CreateFolder(ctx context.Context, tx *gorm.DB, folder *model.VocabularyFolder) error
	FindFolderByID(ctx context.Context, db *gorm.DB, folderID uint) (*model.VocabularyFolder, error)
	FindFoldersByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.VocabularyFolder, error)
	UpdateFolder(ctx context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) error
	DeleteFolder(ctx context.Context, tx *gorm.DB, folderID uint) error

	CreateWord(ctx context.Context, tx *gorm.DB, word *model.VocabularyWord) error
	FindWordByID(ctx context.Context, db *gorm.DB, wordID uint) (*model.VocabularyWord, error)
	UpdateWord(ctx context.Context, tx *gorm.DB, wordID uint, updates map[string]interface{}) error
	DeleteWord(ctx context.Context, tx *gorm.DB, wordID uint) error
}

type gormVocabFolderRepository struct{}

func NewGormVocabFolderRepository() VocabFolderRepository {
	return &gormVocabFolderRepository{}
}

func (r *gormVocabFolderRepository) CreateFolder(ctx context.Context, tx *gorm.DB, folder *model.VocabularyFolder) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(folder)
	if result.Error != nil {
		logger.Error("Error creating vocabulary folder in DB", "error", result.Error, "user_id", folder.UserID)
		return fmt.Errorf("gormVocabFolderRepository.CreateFolder: %w", result.Error)
	}
	return nil
}

func (r *gormVocabFolderRepository) FindFolderByID(ctx context.Context, db *gorm.DB, folderID uint) (*model.VocabularyFolder, error) {
	var folder model.VocabularyFolder
	result := db.WithContext(ctx).
		Preload("Words", func(db *gorm.DB) *gorm.DB {
			return db.Order("vocabulary_words.created_at ASC")
		}).
		First(&folder, folderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormVocabFolderRepository.FindFolderByID: %w", result.Error)
	}
	return &folder, nil
}

func (r *gormVocabFolderRepository) FindFoldersByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.VocabularyFolder, error) {
	var folders []*model.VocabularyFolder
	result := db.WithContext(ctx).
		Preload("Words", func(db *gorm.DB) *gorm.DB {
			return db.Order("vocabulary_words.created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&folders)
	if result.Error != nil {
		return nil, fmt.Errorf("gormVocabFolderRepository.FindFoldersByUser: %w", result.Error)
	}
	return folders, nil
}

func (r *gormVocabFolderRepository) UpdateFolder(ctx context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.VocabularyFolder{}).Where("id = ?", folderID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormVocabFolderRepository.UpdateFolder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormVocabFolderRepository) DeleteFolder(ctx context.Context, tx *gorm.DB, folderID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.VocabularyFolder{}, folderID)
	if result.Error != nil {
		logger.Error("Error deleting vocabulary folder in DB", "error", result.Error, "folder_id", folderID)
		return fmt.Errorf("gormVocabFolderRepository.DeleteFolder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormVocabFolderRepository) CreateWord(ctx context.Context, tx *gorm.DB, word *model.VocabularyWord) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		logger.Error("Error creating vocabulary word in DB", "error", result.Error, "folder_id", word.FolderID)
		return fmt.Errorf("gormVocabFolderRepository.CreateWord: %w", result.Error)
	}
	return nil
}

func (r *gormVocabFolderRepository) FindWordByID(ctx context.Context, db *gorm.DB, wordID uint) (*model.VocabularyWord, error) {
	var word model.VocabularyWord
	result := db.WithContext(ctx).First(&word, wordID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormVocabFolderRepository.FindWordByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormVocabFolderRepository) UpdateWord(ctx context.Context, tx *gorm.DB, wordID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.VocabularyWord{}).Where("id = ?", wordID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormVocabFolderRepository.UpdateWord: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormVocabFolderRepository) DeleteWord(ctx context.Context, tx *gorm.DB, wordID uint) error {
	result := tx.WithContext(ctx).Delete(&model.VocabularyWord{}, wordID)
	if result.Error != nil {
		return fmt.Errorf("gormVocabFolderRepository.DeleteWord: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
