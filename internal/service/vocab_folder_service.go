package service

import (
	"context"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type VocabFolderService interface {
	ListFolders(ctx context.Context, userID uint) ([]model.VocabularyFolderResponse, error)
	GetFolder(ctx context.Context, folderID, userID uint) (*model.VocabularyFolderResponse, error)
	CreateFolder(ctx context.Context, userID uint, req *model.VocabularyFolderRequest) (*model.VocabularyFolderResponse, error)
	UpdateFolder(ctx context.Context, folderID, userID uint, req *model.VocabularyFolderRequest) (*model.VocabularyFolderResponse, error)
	DeleteFolder(ctx context.Context, folderID, userID uint) error

	AddWord(ctx context.Context, folderID, userID uint, req *model.VocabularyWordRequest) (*model.VocabularyWordResponse, error)
	UpdateWord(ctx context.Context, wordID, userID uint, req *model.VocabularyWordRequest) (*model.VocabularyWordResponse, error)
	DeleteWord(ctx context.Context, wordID, userID uint) error
}

type vocabFolderService struct {
	db         *gorm.DB
	folderRepo repository.VocabFolderRepository
	userRepo   repository.UserRepository
}

func NewVocabFolderService(db *gorm.DB, folderRepo repository.VocabFolderRepository, userRepo repository.UserRepository) VocabFolderService {
	return &vocabFolderService{db: db, folderRepo: folderRepo, userRepo: userRepo}
}

func (s *vocabFolderService) ListFolders(ctx context.Context, userID uint) ([]model.VocabularyFolderResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.FindFoldersByUser(ctx, s.db, userID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing vocabulary folders", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	responses := make([]model.VocabularyFolderResponse, 0, len(folders))
	for _, folder := range folders {
		responses = append(responses, model.NewVocabularyFolderResponse(folder))
	}
	return responses, nil
}

func (s *vocabFolderService) GetFolder(ctx context.Context, folderID, userID uint) (*model.VocabularyFolderResponse, error) {
	folder, err := s.ownedFolder(ctx, s.db, folderID, userID)
	if err != nil {
		return nil, err
	}
	resp := model.NewVocabularyFolderResponse(folder)
	return &resp, nil
}

func (s *vocabFolderService) CreateFolder(ctx context.Context, userID uint, req *model.VocabularyFolderRequest) (*model.VocabularyFolderResponse, error) {
	icon := req.Icon
	if icon == "" {
		icon = model.DefaultFolderIcon
	}

	folder := &model.VocabularyFolder{
		UserID: userID,
		Name:   req.Name,
		Icon:   icon,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}
		return s.folderRepo.CreateFolder(ctx, tx, folder)
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewVocabularyFolderResponse(folder)
	return &resp, nil
}

func (s *vocabFolderService) UpdateFolder(ctx context.Context, folderID, userID uint, req *model.VocabularyFolderRequest) (*model.VocabularyFolderResponse, error) {
	var updated *model.VocabularyFolder

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedFolder(ctx, tx, folderID, userID); err != nil {
			return err
		}

		updates := map[string]interface{}{"name": req.Name}
		if req.Icon != "" {
			updates["icon"] = req.Icon
		}
		if err := s.folderRepo.UpdateFolder(ctx, tx, folderID, updates); err != nil {
			return err
		}

		var err error
		updated, err = s.folderRepo.FindFolderByID(ctx, tx, folderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewVocabularyFolderResponse(updated)
	return &resp, nil
}

func (s *vocabFolderService) DeleteFolder(ctx context.Context, folderID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedFolder(ctx, tx, folderID, userID); err != nil {
			return err
		}
		return s.folderRepo.DeleteFolder(ctx, tx, folderID)
	})
}

func (s *vocabFolderService) AddWord(ctx context.Context, folderID, userID uint, req *model.VocabularyWordRequest) (*model.VocabularyWordResponse, error) {
	word := &model.VocabularyWord{
		FolderID:      folderID,
		Korean:        req.Korean,
		Vietnamese:    req.Vietnamese,
		Pronunciation: req.Pronunciation,
		Example:       req.Example,
	}
	if req.IsLearned != nil {
		word.IsLearned = *req.IsLearned
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedFolder(ctx, tx, folderID, userID); err != nil {
			return err
		}
		return s.folderRepo.CreateWord(ctx, tx, word)
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewVocabularyWordResponse(word)
	return &resp, nil
}

func (s *vocabFolderService) UpdateWord(ctx context.Context, wordID, userID uint, req *model.VocabularyWordRequest) (*model.VocabularyWordResponse, error) {
	var updated *model.VocabularyWord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.folderRepo.FindWordByID(ctx, tx, wordID)
		if err != nil {
			return err
		}
		if _, err := s.ownedFolder(ctx, tx, word.FolderID, userID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"korean":        req.Korean,
			"vietnamese":    req.Vietnamese,
			"pronunciation": req.Pronunciation,
			"example":       req.Example,
		}
		if req.IsLearned != nil {
			updates["is_learned"] = *req.IsLearned
		}
		if err := s.folderRepo.UpdateWord(ctx, tx, wordID, updates); err != nil {
			return err
		}

		updated, err = s.folderRepo.FindWordByID(ctx, tx, wordID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := model.NewVocabularyWordResponse(updated)
	return &resp, nil
}

func (s *vocabFolderService) DeleteWord(ctx context.Context, wordID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.folderRepo.FindWordByID(ctx, tx, wordID)
		if err != nil {
			return err
		}
		if _, err := s.ownedFolder(ctx, tx, word.FolderID, userID); err != nil {
			return err
		}
		return s.folderRepo.DeleteWord(ctx, tx, wordID)
	})
}

// ownedFolder loads the folder and rejects access by anyone but its owner.
func (s *vocabFolderService) ownedFolder(ctx context.Context, db *gorm.DB, folderID, userID uint) (*model.VocabularyFolder, error) {
	folder, err := s.folderRepo.FindFolderByID(ctx, db, folderID)
	if err != nil {
		return nil, err
	}
	if folder.UserID != userID {
		return nil, model.NewAppError("FORBIDDEN", "You do not own this folder", "", model.ErrForbidden)
	}
	return folder, nil
}
