package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error)
	FindPage(ctx context.Context, db *gorm.DB, level string, req model.PageRequest) ([]*model.Course, int64, error)
	Update(ctx context.Context, tx *gorm.DB, courseID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, courseID uint) error
	AddStudents(ctx context.Context, tx *gorm.DB, courseID uint, delta int) error
}

type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *model.CourseEnrollment) error
	Find(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.CourseEnrollment, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.CourseEnrollment, error)
	Update(ctx context.Context, tx *gorm.DB, enrollmentID uint, updates map[string]interface{}) error
}

type DashboardStatsRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uint) (*model.DashboardStats, error)
	Create(ctx context.Context, tx *gorm.DB, stats *model.DashboardStats) error
	Update(ctx context.Context, tx *gorm.DB, statsID uint, updates map[string]interface{}) error
}

var courseSortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"level":     "level",
	"rating":    "rating",
	"students":  "students",
	"createdAt": "created_at",
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

func (r *gormCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(course)
	if result.Error != nil {
		logger.Error("Error creating course in DB", "error", result.Error, "title", course.Title)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error) {
	var course model.Course
	result := db.WithContext(ctx).First(&course, courseID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindPage(ctx context.Context, db *gorm.DB, level string, req model.PageRequest) ([]*model.Course, int64, error) {
	query := db.WithContext(ctx).Model(&model.Course{})
	if level != "" {
		query = query.Where("level = ?", level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormCourseRepository.FindPage count: %w", err)
	}

	var courses []*model.Course
	err := query.
		Order(req.OrderClause(courseSortColumns, "id ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormCourseRepository.FindPage: %w", err)
	}
	return courses, total, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, tx *gorm.DB, courseID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Course{}).Where("id = ?", courseID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating course in DB", "error", result.Error, "course_id", courseID)
		return fmt.Errorf("gormCourseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) Delete(ctx context.Context, tx *gorm.DB, courseID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Course{}, courseID)
	if result.Error != nil {
		logger.Error("Error deleting course in DB", "error", result.Error, "course_id", courseID)
		return fmt.Errorf("gormCourseRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) AddStudents(ctx context.Context, tx *gorm.DB, courseID uint, delta int) error {
	result := tx.WithContext(ctx).Model(&model.Course{}).Where("id = ?", courseID).
		Update("students", gorm.Expr("students + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("gormCourseRepository.AddStudents: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type gormEnrollmentRepository struct{}

func NewGormEnrollmentRepository() EnrollmentRepository {
	return &gormEnrollmentRepository{}
}

func (r *gormEnrollmentRepository) Create(ctx context.Context, tx *gorm.DB, enrollment *model.CourseEnrollment) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		logger.Error("Error creating enrollment in DB", "error", result.Error,
			"user_id", enrollment.UserID, "course_id", enrollment.CourseID)
		return fmt.Errorf("gormEnrollmentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) Find(ctx context.Context, db *gorm.DB, userID, courseID uint) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	result := db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormEnrollmentRepository.Find: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *gormEnrollmentRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.CourseEnrollment, error) {
	var enrollments []*model.CourseEnrollment
	result := db.WithContext(ctx).Where("user_id = ?", userID).Find(&enrollments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByUser: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormEnrollmentRepository) Update(ctx context.Context, tx *gorm.DB, enrollmentID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.CourseEnrollment{}).Where("id = ?", enrollmentID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormEnrollmentRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type gormDashboardStatsRepository struct{}

func NewGormDashboardStatsRepository() DashboardStatsRepository {
	return &gormDashboardStatsRepository{}
}

func (r *gormDashboardStatsRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uint) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormDashboardStatsRepository.FindByUser: %w", result.Error)
	}
	return &stats, nil
}

func (r *gormDashboardStatsRepository) Create(ctx context.Context, tx *gorm.DB, stats *model.DashboardStats) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(stats)
	if result.Error != nil {
		logger.Error("Error creating dashboard stats in DB", "error", result.Error, "user_id", stats.UserID)
		return fmt.Errorf("gormDashboardStatsRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormDashboardStatsRepository) Update(ctx context.Context, tx *gorm.DB, statsID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.DashboardStats{}).Where("id = ?", statsID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormDashboardStatsRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
