package model

import "time"

// DefaultFolderIcon is used when a folder is created without an icon.
const DefaultFolderIcon = "📁"

type VocabularyFolder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Icon      string    `gorm:"size:50" json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Words []VocabularyWord `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`
}

func (VocabularyFolder) TableName() string { return "vocabulary_folders" }

type VocabularyWord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FolderID      uint      `gorm:"not null;index" json:"folderId"`
	Korean        string    `gorm:"size:500;not null" json:"korean"`
	Vietnamese    string    `gorm:"size:500;not null" json:"vietnamese"`
	Pronunciation string    `gorm:"size:500" json:"pronunciation"`
	Example       string    `gorm:"type:text" json:"example"`
	IsLearned     bool      `gorm:"not null;default:false" json:"isLearned"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (VocabularyWord) TableName() string { return "vocabulary_words" }

type VocabularyFolderRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Icon string `json:"icon" validate:"max=50"`
}

type VocabularyWordRequest struct {
	Korean        string `json:"korean" validate:"required,max=500"`
	Vietnamese    string `json:"vietnamese" validate:"required,max=500"`
	Pronunciation string `json:"pronunciation" validate:"max=500"`
	Example       string `json:"example"`
	IsLearned     *bool  `json:"isLearned"`
}

type VocabularyWordResponse struct {
	ID            uint      `json:"id"`
	Korean        string    `json:"korean"`
	Vietnamese    string    `json:"vietnamese"`
	Pronunciation string    `json:"pronunciation"`
	Example       string    `json:"example"`
	IsLearned     bool      `json:"isLearned"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type VocabularyFolderResponse struct {
	ID        uint                     `json:"id"`
	Name      string                   `json:"name"`
	Icon      string                   `json:"icon"`
	WordCount int                      `json:"wordCount"`
	Words     []VocabularyWordResponse `json:"words"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func NewVocabularyWordResponse(w *VocabularyWord) VocabularyWordResponse {
	return VocabularyWordResponse{
		ID:            w.ID,
		Korean:        w.Korean,
		Vietnamese:    w.Vietnamese,
		Pronunciation: w.Pronunciation,
		Example:       w.Example,
		IsLearned:     w.IsLearned,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func NewVocabularyFolderResponse(f *VocabularyFolder) VocabularyFolderResponse {
	words := make([]VocabularyWordResponse, 0, len(f.Words))
	for i := range f.Words {
		words = append(words, NewVocabularyWordResponse(&f.Words[i]))
	}
	return VocabularyFolderResponse{
		ID:        f.ID,
		Name:      f.Name,
		Icon:      f.Icon,
		WordCount: len(words),
		Words:     words,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
