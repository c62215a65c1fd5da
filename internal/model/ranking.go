package model

import "time"

// Ranking mirrors the user's points and streak into a standalone leaderboard
// row; one row per user.
type Ranking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"userId"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	Days      int       `gorm:"not null;default:0" json:"days"`
	Color     string    `gorm:"size:50" json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Ranking) TableName() string { return "rankings" }

type RankingEntryResponse struct {
	Position      int    `json:"position"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	Days          int    `json:"days"`
	IsCurrentUser bool   `json:"isCurrentUser"`
	Color         string `json:"color"`
}
