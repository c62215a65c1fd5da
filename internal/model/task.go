package model

import "time"

// Task stores ProgressPercent on a 0..100 scale; the response converts it to
// a 0..1 fraction.
type Task struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	Title           string    `gorm:"size:500;not null" json:"title"`
	IconName        string    `gorm:"size:100" json:"iconName"`
	Color           string    `gorm:"size:50" json:"color"`
	ProgressColor   string    `gorm:"size:50" json:"progressColor"`
	ProgressPercent float64   `gorm:"not null;default:0" json:"progressPercent"`
	CreatedAt       time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Task) TableName() string { return "tasks" }

type TaskItemResponse struct {
	Title           string  `json:"title"`
	Icon            string  `json:"icon"`
	Color           string  `json:"color"`
	ProgressColor   string  `json:"progressColor"`
	ProgressPercent float64 `json:"progressPercent"`
}

// TaskTemplate seeds the randomly chosen daily tasks.
type TaskTemplate struct {
	Title         string
	IconName      string
	Color         string
	ProgressColor string
}

// DailyTaskTemplates is the pool daily tasks are drawn from; four are picked
// at random per user per day.
var DailyTaskTemplates = []TaskTemplate{
	{Title: "Học 20 từ vựng mới", IconName: "BookOpen", Color: "#FF6B6B", ProgressColor: "#FFB6B6"},
	{Title: "Luyện tập từ vựng", IconName: "FileText", Color: "#4ECDC4", ProgressColor: "#9EDDD8"},
	{Title: "Xem video bài giảng mới", IconName: "Play", Color: "#95E1D3", ProgressColor: "#C5F1E8"},
	{Title: "Làm bài tập ngữ pháp", IconName: "Edit", Color: "#F38181", ProgressColor: "#F9B1B1"},
	{Title: "Luyện nghe 15 phút", IconName: "Hearing", Color: "#AA96DA", ProgressColor: "#CABDEA"},
	{Title: "Luyện nói 10 câu", IconName: "Mic", Color: "#FCBAD3", ProgressColor: "#FDD5E7"},
	{Title: "Ôn tập từ vựng cũ", IconName: "Book", Color: "#FFD93D", ProgressColor: "#FFE66D"},
	{Title: "Hoàn thành bài kiểm tra", IconName: "CheckSquare", Color: "#6BCB77", ProgressColor: "#9DD9A3"},
}

// DailyTaskCount is how many templates become tasks each day.
const DailyTaskCount = 4
