package model

import "time"

type Curriculum struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookNumber   int       `gorm:"not null;uniqueIndex" json:"bookNumber"`
	Title        string    `gorm:"size:500;not null" json:"title"`
	Subtitle     string    `gorm:"size:500" json:"subtitle"`
	TotalLessons int       `gorm:"not null;default:0" json:"totalLessons"`
	Color        string    `gorm:"size:50" json:"color"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Progresses []CurriculumProgress `gorm:"foreignKey:CurriculumID;constraint:OnDelete:CASCADE" json:"-"`
	Lessons    []CurriculumLesson   `gorm:"foreignKey:CurriculumID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Curriculum) TableName() string { return "curriculum" }

// CurriculumProgress tracks one user through one curriculum book; the
// (user, curriculum) pair is unique.
type CurriculumProgress struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_curr_progress_user_curr" json:"userId"`
	CurriculumID     uint      `gorm:"not null;uniqueIndex:idx_curr_progress_user_curr" json:"curriculumId"`
	CompletedLessons int       `gorm:"not null;default:0" json:"completedLessons"`
	IsCompleted      bool      `gorm:"not null;default:false" json:"isCompleted"`
	IsLocked         bool      `gorm:"not null;default:false" json:"isLocked"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (CurriculumProgress) TableName() string { return "curriculum_progress" }

type CurriculumRequest struct {
	BookNumber   int    `json:"bookNumber" validate:"required,gte=1"`
	Title        string `json:"title" validate:"required,max=500"`
	Subtitle     string `json:"subtitle" validate:"max=500"`
	TotalLessons int    `json:"totalLessons" validate:"gte=0"`
	Color        string `json:"color" validate:"max=50"`
}

type CurriculumResponse struct {
	ID               uint   `json:"id"`
	BookNumber       int    `json:"bookNumber"`
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons int    `json:"completedLessons"`
	IsCompleted      bool   `json:"isCompleted"`
	IsLocked         bool   `json:"isLocked"`
	Color            string `json:"color"`
}
