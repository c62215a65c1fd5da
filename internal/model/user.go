package model

import (
	"time"
)

// User is the root of every user-owned aggregate.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username   string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Avatar     string    `gorm:"size:500" json:"avatar"`
	Level      string    `gorm:"size:100" json:"level"`
	Points     int       `gorm:"not null;default:0" json:"points"`
	StreakDays int       `gorm:"not null;default:0" json:"streakDays"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// DefaultUserLevel is assigned at registration ("Beginner 1" in Vietnamese).
const DefaultUserLevel = "Sơ cấp 1"

type UserResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	Level      string `json:"level"`
	Points     int    `json:"points"`
	StreakDays int    `json:"streakDays"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Username:   u.Username,
		Avatar:     u.Avatar,
		Level:      u.Level,
		Points:     u.Points,
		StreakDays: u.StreakDays,
	}
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,max=500"`
	Level  *string `json:"level,omitempty" validate:"omitempty,max=100"`
}
