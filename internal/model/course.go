package model

import "time"

type Course struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:500;not null" json:"title"`
	Instructor    string     `gorm:"size:255;not null" json:"instructor"`
	Level         string     `gorm:"size:100;not null;index" json:"level"`
	Rating        float64    `gorm:"not null;default:0" json:"rating"`
	Students      int        `gorm:"not null;default:0" json:"students"`
	Lessons       int        `gorm:"not null;default:0" json:"lessons"`
	DurationStart *time.Time `json:"durationStart"`
	DurationEnd   *time.Time `json:"durationEnd"`
	Price         string     `gorm:"size:100" json:"price"`
	Image         string     `gorm:"size:500" json:"image"`
	AccentColor   string     `gorm:"size:50" json:"accentColor"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Enrollments   []CourseEnrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CourseLessons []CourseLesson     `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string { return "courses" }

// CourseEnrollment links a user to a course; the (user, course) pair is unique.
type CourseEnrollment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_enroll_user_course" json:"userId"`
	CourseID         uint      `gorm:"not null;uniqueIndex:idx_enroll_user_course" json:"courseId"`
	Progress         float64   `gorm:"not null;default:0" json:"progress"`
	IsEnrolled       bool      `gorm:"not null;default:true" json:"isEnrolled"`
	CompletedLessons int       `gorm:"not null;default:0" json:"completedLessons"`
	EnrolledAt       time.Time `gorm:"autoCreateTime" json:"enrolledAt"`
}

func (CourseEnrollment) TableName() string { return "course_enrollments" }

// DashboardStats holds the per-user aggregate shown on the dashboard; one row
// per user.
type DashboardStats struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;uniqueIndex" json:"userId"`
	TotalCourses       int        `gorm:"not null;default:0" json:"totalCourses"`
	CompletedCourses   int        `gorm:"not null;default:0" json:"completedCourses"`
	TotalVideos        int        `gorm:"not null;default:0" json:"totalVideos"`
	WatchedVideos      int        `gorm:"not null;default:0" json:"watchedVideos"`
	TotalExams         int        `gorm:"not null;default:0" json:"totalExams"`
	CompletedExams     int        `gorm:"not null;default:0" json:"completedExams"`
	TotalWatchTime     string     `gorm:"size:50" json:"totalWatchTime"`
	CompletedWatchTime string     `gorm:"size:50" json:"completedWatchTime"`
	LastAccess         *time.Time `json:"lastAccess"`
	EndDate            *time.Time `json:"endDate"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (DashboardStats) TableName() string { return "dashboard_stats" }

type CourseRequest struct {
	Title         string     `json:"title" validate:"required,max=500"`
	Instructor    string     `json:"instructor" validate:"required,max=255"`
	Level         string     `json:"level" validate:"required,max=100"`
	Rating        float64    `json:"rating" validate:"gte=0,lte=5"`
	Students      int        `json:"students" validate:"gte=0"`
	Lessons       int        `json:"lessons" validate:"gte=0"`
	DurationStart *time.Time `json:"durationStart"`
	DurationEnd   *time.Time `json:"durationEnd"`
	Price         string     `json:"price" validate:"max=100"`
	Image         string     `json:"image" validate:"max=500"`
	AccentColor   string     `json:"accentColor" validate:"max=50"`
}

type CourseInfoResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Instructor  string  `json:"instructor"`
	Level       string  `json:"level"`
	Rating      float64 `json:"rating"`
	Students    int     `json:"students"`
	Lessons     int     `json:"lessons"`
	Duration    string  `json:"duration"`
	Price       string  `json:"price"`
	Image       string  `json:"image"`
	Progress    float64 `json:"progress"`
	IsEnrolled  bool    `json:"isEnrolled"`
	AccentColor string  `json:"accentColor"`
}

type DashboardStatsResponse struct {
	TotalCourses       int    `json:"totalCourses"`
	CompletedCourses   int    `json:"completedCourses"`
	TotalVideos        int    `json:"totalVideos"`
	WatchedVideos      int    `json:"watchedVideos"`
	TotalExams         int    `json:"totalExams"`
	CompletedExams     int    `json:"completedExams"`
	TotalWatchTime     string `json:"totalWatchTime"`
	CompletedWatchTime string `json:"completedWatchTime"`
	LastAccess         string `json:"lastAccess"`
	EndDate            string `json:"endDate"`
}
