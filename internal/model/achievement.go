package model

import "time"

// Achievement is a catalog row; per-user progress lives in UserAchievement.
type Achievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	IconLabel   string    `gorm:"size:50" json:"iconLabel"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Subtitle    string    `gorm:"size:500" json:"subtitle"`
	Color       string    `gorm:"size:50" json:"color"`
	TargetCount int       `gorm:"not null;default:1" json:"targetCount"`
	CreatedAt   time.Time `json:"createdAt"`

	UserAchievements []UserAchievement `gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Achievement) TableName() string { return "achievements" }

type UserAchievement struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint       `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	CurrentCount  int        `gorm:"not null;default:0" json:"currentCount"`
	IsCompleted   bool       `gorm:"not null;default:false" json:"isCompleted"`
	Progress      float64    `gorm:"not null;default:0" json:"progress"`
	CompletedAt   *time.Time `json:"completedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"-"`
}

func (UserAchievement) TableName() string { return "user_achievements" }

type AchievementItemResponse struct {
	IconLabel   string  `json:"iconLabel"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Count       int     `json:"count"`
	Color       string  `json:"color"`
	IsCompleted bool    `json:"isCompleted"`
	Progress    float64 `json:"progress"`
}
