package model

import "time"

type Textbook struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookNumber   int       `gorm:"not null;uniqueIndex" json:"bookNumber"`
	Title        string    `gorm:"size:500;not null" json:"title"`
	Subtitle     string    `gorm:"size:500" json:"subtitle"`
	TotalLessons int       `gorm:"not null;default:0" json:"totalLessons"`
	Color        string    `gorm:"size:50" json:"color"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Progresses []TextbookProgress `gorm:"foreignKey:TextbookID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Textbook) TableName() string { return "textbooks" }

type TextbookProgress struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_textbook_progress_user_book" json:"userId"`
	TextbookID       uint      `gorm:"not null;uniqueIndex:idx_textbook_progress_user_book" json:"textbookId"`
	CompletedLessons int       `gorm:"not null;default:0" json:"completedLessons"`
	IsCompleted      bool      `gorm:"not null;default:false" json:"isCompleted"`
	IsLocked         bool      `gorm:"not null;default:false" json:"isLocked"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (TextbookProgress) TableName() string { return "textbook_progress" }

type TextbookRequest struct {
	BookNumber   int    `json:"bookNumber" validate:"required,gte=1"`
	Title        string `json:"title" validate:"required,max=500"`
	Subtitle     string `json:"subtitle" validate:"max=500"`
	TotalLessons int    `json:"totalLessons" validate:"gte=0"`
	Color        string `json:"color" validate:"max=50"`
}

type TextbookResponse struct {
	BookNumber       int    `json:"bookNumber"`
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons int    `json:"completedLessons"`
	IsCompleted      bool   `json:"isCompleted"`
	IsLocked         bool   `json:"isLocked"`
	Color            string `json:"color"`
}
