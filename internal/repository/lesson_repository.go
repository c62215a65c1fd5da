package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

// Lesson repositories load the full content tree (vocabulary, grammar with
// examples, exercises with options) in one shot via nested preloads.

type CourseLessonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *model.CourseLesson) error
	FindByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.CourseLesson, error)
	FindByCourse(ctx context.Context, db *gorm.DB, courseID uint) ([]*model.CourseLesson, error)
	FindPage(ctx context.Context, db *gorm.DB, courseID uint, req model.PageRequest) ([]*model.CourseLesson, int64, error)
	Update(ctx context.Context, tx *gorm.DB, lessonID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error
}

type CurriculumLessonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *model.CurriculumLesson) error
	FindByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.CurriculumLesson, error)
	FindByCurriculum(ctx context.Context, db *gorm.DB, curriculumID uint) ([]*model.CurriculumLesson, error)
	FindPage(ctx context.Context, db *gorm.DB, curriculumID uint, req model.PageRequest) ([]*model.CurriculumLesson, int64, error)
	Update(ctx context.Context, tx *gorm.DB, lessonID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error
}

var lessonSortColumns = map[string]string{
	"id":           "id",
	"lessonNumber": "lesson_number",
	"title":        "title",
	"createdAt":    "created_at",
}

type gormCourseLessonRepository struct{}

func NewGormCourseLessonRepository() CourseLessonRepository {
	return &gormCourseLessonRepository{}
}

func (r *gormCourseLessonRepository) Create(ctx context.Context, tx *gorm.DB, lesson *model.CourseLesson) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(lesson)
	if result.Error != nil {
		logger.Error("Error creating course lesson in DB", "error", result.Error, "course_id", lesson.CourseID)
		return fmt.Errorf("gormCourseLessonRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseLessonRepository) FindByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.CourseLesson, error) {
	var lesson model.CourseLesson
	result := db.WithContext(ctx).
		Preload("Vocabularies").
		Preload("Grammars.Examples").
		Preload("Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.option_order ASC")
		}).
		First(&lesson, lessonID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCourseLessonRepository.FindByID: %w", result.Error)
	}
	return &lesson, nil
}

func (r *gormCourseLessonRepository) FindByCourse(ctx context.Context, db *gorm.DB, courseID uint) ([]*model.CourseLesson, error) {
	var lessons []*model.CourseLesson
	result := db.WithContext(ctx).
		Preload("Vocabularies").
		Preload("Grammars.Examples").
		Preload("Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.option_order ASC")
		}).
		Where("course_id = ?", courseID).
		Order("lesson_number ASC").
		Find(&lessons)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCourseLessonRepository.FindByCourse: %w", result.Error)
	}
	return lessons, nil
}

// FindPage pages course lessons, optionally scoped to one course. A zero
// courseID means all courses.
func (r *gormCourseLessonRepository) FindPage(ctx context.Context, db *gorm.DB, courseID uint, req model.PageRequest) ([]*model.CourseLesson, int64, error) {
	query := db.WithContext(ctx).Model(&model.CourseLesson{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormCourseLessonRepository.FindPage count: %w", err)
	}

	var lessons []*model.CourseLesson
	err := query.
		Preload("Vocabularies").
		Preload("Grammars.Examples").
		Preload("Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.option_order ASC")
		}).
		Order(req.OrderClause(lessonSortColumns, "lesson_number ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&lessons).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormCourseLessonRepository.FindPage: %w", err)
	}
	return lessons, total, nil
}

func (r *gormCourseLessonRepository) Update(ctx context.Context, tx *gorm.DB, lessonID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.CourseLesson{}).Where("id = ?", lessonID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormCourseLessonRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseLessonRepository) Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error {
	result := tx.WithContext(ctx).Delete(&model.CourseLesson{}, lessonID)
	if result.Error != nil {
		return fmt.Errorf("gormCourseLessonRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

type gormCurriculumLessonRepository struct{}

func NewGormCurriculumLessonRepository() CurriculumLessonRepository {
	return &gormCurriculumLessonRepository{}
}

func (r *gormCurriculumLessonRepository) Create(ctx context.Context, tx *gorm.DB, lesson *model.CurriculumLesson) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(lesson)
	if result.Error != nil {
		logger.Error("Error creating curriculum lesson in DB", "error", result.Error, "curriculum_id", lesson.CurriculumID)
		return fmt.Errorf("gormCurriculumLessonRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCurriculumLessonRepository) FindByID(ctx context.Context, db *gorm.DB, lessonID uint) (*model.CurriculumLesson, error) {
	var lesson model.CurriculumLesson
	result := db.WithContext(ctx).
		Preload("Vocabularies").
		Preload("Grammars.Examples").
		Preload("Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.option_order ASC")
		}).
		First(&lesson, lessonID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCurriculumLessonRepository.FindByID: %w", result.Error)
	}
	return &lesson, nil
}

func (r *gormCurriculumLessonRepository) FindByCurriculum(ctx context.Context, db *gorm.DB, curriculumID uint) ([]*model.CurriculumLesson, error) {
	var lessons []*model.CurriculumLesson
	result := db.WithContext(ctx).
		Preload("Vocabularies").
		Preload("Grammars.Examples").
		Preload("Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.option_order ASC")
		}).
		Where("curriculum_id = ?", curriculumID).
		Order("lesson_number ASC").
		Find(&lessons)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCurriculumLessonRepository.FindByCurriculum: %w", result.Error)
	}
	return lessons, nil
}

func (r *gormCurriculumLessonRepository) FindPage(ctx context.Context, db *gorm.DB, curriculumID uint, req model.PageRequest) ([]*model.CurriculumLesson, int64, error) {
	query := db.WithContext(ctx).Model(&model.CurriculumLesson{})
	if curriculumID != 0 {
		query = query.Where("curriculum_id = ?", curriculumID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormCurriculumLessonRepository.FindPage count: %w", err)
	}

	var lessons []*model.CurriculumLesson
	err := query.
		Preload("Vocabularies").
		Preload("Grammars.Examples").
		Preload("Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.option_order ASC")
		}).
		Order(req.OrderClause(lessonSortColumns, "lesson_number ASC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&lessons).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormCurriculumLessonRepository.FindPage: %w", err)
	}
	return lessons, total, nil
}

func (r *gormCurriculumLessonRepository) Update(ctx context.Context, tx *gorm.DB, lessonID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.CurriculumLesson{}).Where("id = ?", lessonID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormCurriculumLessonRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCurriculumLessonRepository) Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error {
	result := tx.WithContext(ctx).Delete(&model.CurriculumLesson{}, lessonID)
	if result.Error != nil {
		return fmt.Errorf("gormCurriculumLessonRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
