package model

import "time"

type Material struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Level       string    `gorm:"size:100;index" json:"level"`
	Skill       string    `gorm:"size:100;index" json:"skill"`
	Type        string    `gorm:"size:100;index" json:"type"`
	Thumbnail   string    `gorm:"size:500" json:"thumbnail"`
	Downloads   int       `gorm:"not null;default:0" json:"downloads"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	Size        string    `gorm:"size:50" json:"size"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"isFeatured"`
	Duration    string    `gorm:"size:50" json:"duration"`
	PdfURL      string    `gorm:"size:500" json:"pdfUrl"`
	VideoURL    string    `gorm:"size:500" json:"videoUrl"`
	AudioURL    string    `gorm:"size:500" json:"audioUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	MaterialDownloads []MaterialDownload `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Material) TableName() string { return "materials" }

// MaterialDownload records that a user paid the point cost once; repeat
// downloads are free and do not bump counters.
type MaterialDownload struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_material_dl_user_material" json:"userId"`
	MaterialID   uint      `gorm:"not null;uniqueIndex:idx_material_dl_user_material" json:"materialId"`
	DownloadedAt time.Time `gorm:"autoCreateTime" json:"downloadedAt"`
}

func (MaterialDownload) TableName() string { return "material_downloads" }

type MaterialRequest struct {
	Title       string  `json:"title" validate:"required,max=500"`
	Description string  `json:"description"`
	Level       string  `json:"level" validate:"max=100"`
	Skill       string  `json:"skill" validate:"max=100"`
	Type        string  `json:"type" validate:"max=100"`
	Thumbnail   string  `json:"thumbnail" validate:"max=500"`
	Size        string  `json:"size" validate:"max=50"`
	Points      int     `json:"points" validate:"gte=0"`
	IsFeatured  bool    `json:"isFeatured"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Duration    string  `json:"duration" validate:"max=50"`
	PdfURL      string  `json:"pdfUrl" validate:"max=500"`
	VideoURL    string  `json:"videoUrl" validate:"max=500"`
	AudioURL    string  `json:"audioUrl" validate:"max=500"`
}

type MaterialResponse struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Level        string  `json:"level"`
	Skill        string  `json:"skill"`
	Type         string  `json:"type"`
	Thumbnail    string  `json:"thumbnail"`
	Downloads    int     `json:"downloads"`
	Rating       float64 `json:"rating"`
	Size         string  `json:"size"`
	Points       int     `json:"points"`
	IsFeatured   bool    `json:"isFeatured"`
	Duration     string  `json:"duration"`
	PdfURL       string  `json:"pdfUrl"`
	VideoURL     string  `json:"videoUrl"`
	AudioURL     string  `json:"audioUrl"`
	IsDownloaded bool    `json:"isDownloaded"`
}

func NewMaterialResponse(m *Material, isDownloaded bool) MaterialResponse {
	return MaterialResponse{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Level:        m.Level,
		Skill:        m.Skill,
		Type:         m.Type,
		Thumbnail:    m.Thumbnail,
		Downloads:    m.Downloads,
		Rating:       m.Rating,
		Size:         m.Size,
		Points:       m.Points,
		IsFeatured:   m.IsFeatured,
		Duration:     m.Duration,
		PdfURL:       m.PdfURL,
		VideoURL:     m.VideoURL,
		AudioURL:     m.AudioURL,
		IsDownloaded: isDownloaded,
	}
}
