package service

import (
	"context"
	"testing"
	"time"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (CourseService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCourseService(
		db,
		repository.NewGormCourseRepository(),
		repository.NewGormEnrollmentRepository(),
		repository.NewGormDashboardStatsRepository(),
		repository.NewGormUserRepository(),
	)
	return svc, db
}

func TestCourseService_Enroll(t *testing.T) {
	ctx := context.Background()
	svc, db := newCourseService(t)
	user := createTestUser(t, db, "enroll@example.com", 0)
	course := &model.Course{Title: "Tiếng Hàn sơ cấp", Instructor: "Kim", Level: "beginner", Students: 40}
	require.NoError(t, db.Create(course).Error)

	require.NoError(t, svc.Enroll(ctx, course.ID, user.ID))

	var enrollment model.CourseEnrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.True(t, enrollment.IsEnrolled)

	// Enrolling again reuses the row and the student counter never moves.
	require.NoError(t, svc.Enroll(ctx, course.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&model.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var reloaded model.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.Equal(t, 40, reloaded.Students)
}

func TestCourseService_Enroll_UnknownCourse(t *testing.T) {
	ctx := context.Background()
	svc, db := newCourseService(t)
	user := createTestUser(t, db, "nocourse@example.com", 0)

	err := svc.Enroll(ctx, 9999, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCourseService_DurationFormatting(t *testing.T) {
	ctx := context.Background()
	svc, db := newCourseService(t)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	withDates := &model.Course{Title: "with dates", Instructor: "Kim", Level: "beginner", DurationStart: &start, DurationEnd: &end}
	withoutDates := &model.Course{Title: "without dates", Instructor: "Lee", Level: "beginner"}
	require.NoError(t, db.Create(withDates).Error)
	require.NoError(t, db.Create(withoutDates).Error)

	got, err := svc.GetCourse(ctx, withDates.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01 ~ 2026-06-30", got.Duration)

	got, err = svc.GetCourse(ctx, withoutDates.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Duration)
}

func TestCourseService_ListCourses(t *testing.T) {
	ctx := context.Background()
	svc, db := newCourseService(t)

	require.NoError(t, db.Create(&model.Course{Title: "a", Instructor: "Kim", Level: "beginner"}).Error)
	require.NoError(t, db.Create(&model.Course{Title: "b", Instructor: "Lee", Level: "advanced"}).Error)

	page, err := svc.ListCourses(ctx, "", model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	for _, c := range page.Content {
		assert.False(t, c.IsEnrolled)
		assert.Equal(t, 0.0, c.Progress)
	}

	page, err = svc.ListCourses(ctx, "beginner", model.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "a", page.Content[0].Title)
}

func TestCourseService_GetDashboardStats_SeedsOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	svc, db := newCourseService(t)
	user := createTestUser(t, db, "dash@example.com", 0)

	stats, err := svc.GetDashboardStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCourses)

	var count int64
	require.NoError(t, db.Model(&model.DashboardStats{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Stored stats come back formatted.
	last := time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	require.NoError(t, db.Model(&model.DashboardStats{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
		"total_courses": 3,
		"last_access":   last,
		"end_date":      end,
	}).Error)

	stats, err = svc.GetDashboardStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCourses)
	assert.Equal(t, "2026-01-02T15:04:05", stats.LastAccess)
	assert.Equal(t, "2026-12-31", stats.EndDate)
}
