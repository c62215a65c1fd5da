package service

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type CourseService interface {
	ListCourses(ctx context.Context, level string, req model.PageRequest) (*model.PageResponse[model.CourseInfoResponse], error)
	GetCourse(ctx context.Context, courseID uint) (*model.CourseInfoResponse, error)
	CreateCourse(ctx context.Context, req *model.CourseRequest) (*model.CourseInfoResponse, error)
	UpdateCourse(ctx context.Context, courseID uint, req *model.CourseRequest) (*model.CourseInfoResponse, error)
	DeleteCourse(ctx context.Context, courseID uint) error
	Enroll(ctx context.Context, courseID, userID uint) error
	GetDashboardStats(ctx context.Context, userID uint) (*model.DashboardStatsResponse, error)
}

type courseService struct {
	db         *gorm.DB
	courseRepo repository.CourseRepository
	enrollRepo repository.EnrollmentRepository
	statsRepo  repository.DashboardStatsRepository
	userRepo   repository.UserRepository
}

func NewCourseService(
	db *gorm.DB,
	courseRepo repository.CourseRepository,
	enrollRepo repository.EnrollmentRepository,
	statsRepo repository.DashboardStatsRepository,
	userRepo repository.UserRepository,
) CourseService {
	return &courseService{
		db:         db,
		courseRepo: courseRepo,
		enrollRepo: enrollRepo,
		statsRepo:  statsRepo,
		userRepo:   userRepo,
	}
}

func (s *courseService) ListCourses(ctx context.Context, level string, req model.PageRequest) (*model.PageResponse[model.CourseInfoResponse], error) {
	courses, total, err := s.courseRepo.FindPage(ctx, s.db, level, req)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing courses", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.CourseInfoResponse, 0, len(courses))
	for _, course := range courses {
		content = append(content, newCourseInfoResponse(course))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID uint) (*model.CourseInfoResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		return nil, err
	}
	resp := newCourseInfoResponse(course)
	return &resp, nil
}

func (s *courseService) CreateCourse(ctx context.Context, req *model.CourseRequest) (*model.CourseInfoResponse, error) {
	course := &model.Course{
		Title:         req.Title,
		Instructor:    req.Instructor,
		Level:         req.Level,
		Rating:        req.Rating,
		Students:      req.Students,
		Lessons:       req.Lessons,
		DurationStart: req.DurationStart,
		DurationEnd:   req.DurationEnd,
		Price:         req.Price,
		Image:         req.Image,
		AccentColor:   req.AccentColor,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.Create(ctx, tx, course)
	})
	if err != nil {
		return nil, model.ErrInternalServer
	}

	resp := newCourseInfoResponse(course)
	return &resp, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID uint, req *model.CourseRequest) (*model.CourseInfoResponse, error) {
	var updated *model.Course

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.courseRepo.FindByID(ctx, tx, courseID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":          req.Title,
			"instructor":     req.Instructor,
			"level":          req.Level,
			"rating":         req.Rating,
			"students":       req.Students,
			"lessons":        req.Lessons,
			"duration_start": req.DurationStart,
			"duration_end":   req.DurationEnd,
			"price":          req.Price,
			"image":          req.Image,
			"accent_color":   req.AccentColor,
		}
		if err := s.courseRepo.Update(ctx, tx, courseID, updates); err != nil {
			return err
		}

		var err error
		updated, err = s.courseRepo.FindByID(ctx, tx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newCourseInfoResponse(updated)
	return &resp, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.Delete(ctx, tx, courseID)
	})
}

// Enroll is idempotent: re-enrolling an already enrolled user just re-marks
// the existing row.
func (s *courseService) Enroll(ctx context.Context, courseID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.courseRepo.FindByID(ctx, tx, courseID); err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		enrollment, err := s.enrollRepo.Find(ctx, tx, userID, courseID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			return s.enrollRepo.Create(ctx, tx, &model.CourseEnrollment{
				UserID:     userID,
				CourseID:   courseID,
				IsEnrolled: true,
			})
		}
		return s.enrollRepo.Update(ctx, tx, enrollment.ID, map[string]interface{}{"is_enrolled": true})
	})
}

// GetDashboardStats creates an empty stats row on first access.
func (s *courseService) GetDashboardStats(ctx context.Context, userID uint) (*model.DashboardStatsResponse, error) {
	var stats *model.DashboardStats

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		var err error
		stats, err = s.statsRepo.FindByUser(ctx, tx, userID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		stats = &model.DashboardStats{UserID: userID}
		return s.statsRepo.Create(ctx, tx, stats)
	})
	if err != nil {
		return nil, err
	}

	resp := &model.DashboardStatsResponse{
		TotalCourses:       stats.TotalCourses,
		CompletedCourses:   stats.CompletedCourses,
		TotalVideos:        stats.TotalVideos,
		WatchedVideos:      stats.WatchedVideos,
		TotalExams:         stats.TotalExams,
		CompletedExams:     stats.CompletedExams,
		TotalWatchTime:     stats.TotalWatchTime,
		CompletedWatchTime: stats.CompletedWatchTime,
	}
	if stats.LastAccess != nil {
		resp.LastAccess = stats.LastAccess.Format("2006-01-02T15:04:05")
	}
	if stats.EndDate != nil {
		resp.EndDate = stats.EndDate.Format("2006-01-02")
	}
	return resp, nil
}

func newCourseInfoResponse(course *model.Course) model.CourseInfoResponse {
	duration := ""
	if course.DurationStart != nil && course.DurationEnd != nil {
		duration = fmt.Sprintf("%s ~ %s",
			course.DurationStart.Format("2006-01-02"),
			course.DurationEnd.Format("2006-01-02"))
	}
	return model.CourseInfoResponse{
		ID:          course.ID,
		Title:       course.Title,
		Instructor:  course.Instructor,
		Level:       course.Level,
		Rating:      course.Rating,
		Students:    course.Students,
		Lessons:     course.Lessons,
		Duration:    duration,
		Price:       course.Price,
		Image:       course.Image,
		AccentColor: course.AccentColor,
	}
}
