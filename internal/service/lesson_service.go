package service

import (
	"context"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

// Lesson content is seeded out of band, so both lesson services are read-only.

type CourseLessonService interface {
	ListLessons(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error)
	GetLesson(ctx context.Context, lessonID uint) (*model.LessonResponse, error)
	ListLessonsByCourse(ctx context.Context, courseID uint, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error)
}

type CurriculumLessonService interface {
	ListLessons(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error)
	GetLesson(ctx context.Context, lessonID uint) (*model.LessonResponse, error)
	ListLessonsByCurriculum(ctx context.Context, curriculumID uint, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error)
}

type courseLessonService struct {
	db         *gorm.DB
	lessonRepo repository.CourseLessonRepository
}

func NewCourseLessonService(db *gorm.DB, lessonRepo repository.CourseLessonRepository) CourseLessonService {
	return &courseLessonService{db: db, lessonRepo: lessonRepo}
}

func (s *courseLessonService) ListLessons(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error) {
	return s.page(ctx, 0, req)
}

func (s *courseLessonService) ListLessonsByCourse(ctx context.Context, courseID uint, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error) {
	return s.page(ctx, courseID, req)
}

func (s *courseLessonService) page(ctx context.Context, courseID uint, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error) {
	lessons, total, err := s.lessonRepo.FindPage(ctx, s.db, courseID, req)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing course lessons", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		content = append(content, newCourseLessonResponse(lesson))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *courseLessonService) GetLesson(ctx context.Context, lessonID uint) (*model.LessonResponse, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, s.db, lessonID)
	if err != nil {
		return nil, err
	}
	resp := newCourseLessonResponse(lesson)
	return &resp, nil
}

type curriculumLessonService struct {
	db         *gorm.DB
	lessonRepo repository.CurriculumLessonRepository
}

func NewCurriculumLessonService(db *gorm.DB, lessonRepo repository.CurriculumLessonRepository) CurriculumLessonService {
	return &curriculumLessonService{db: db, lessonRepo: lessonRepo}
}

func (s *curriculumLessonService) ListLessons(ctx context.Context, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error) {
	return s.page(ctx, 0, req)
}

func (s *curriculumLessonService) ListLessonsByCurriculum(ctx context.Context, curriculumID uint, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error) {
	return s.page(ctx, curriculumID, req)
}

func (s *curriculumLessonService) page(ctx context.Context, curriculumID uint, req model.PageRequest) (*model.PageResponse[model.LessonResponse], error) {
	lessons, total, err := s.lessonRepo.FindPage(ctx, s.db, curriculumID, req)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing curriculum lessons", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		content = append(content, newCurriculumLessonResponse(lesson))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *curriculumLessonService) GetLesson(ctx context.Context, lessonID uint) (*model.LessonResponse, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, s.db, lessonID)
	if err != nil {
		return nil, err
	}
	resp := newCurriculumLessonResponse(lesson)
	return &resp, nil
}

func newCourseLessonResponse(lesson *model.CourseLesson) model.LessonResponse {
	vocab := make([]model.VocabularyItemResponse, 0, len(lesson.Vocabularies))
	for _, v := range lesson.Vocabularies {
		vocab = append(vocab, model.VocabularyItemResponse{
			Korean:        v.Korean,
			Vietnamese:    v.Vietnamese,
			Pronunciation: v.Pronunciation,
			Example:       v.Example,
		})
	}
	return model.LessonResponse{
		ID:           lesson.ID,
		Title:        lesson.Title,
		Level:        lesson.Level,
		Duration:     lesson.Duration,
		Progress:     lesson.Progress,
		LessonNumber: lesson.LessonNumber,
		VideoURL:     lesson.VideoURL,
		Vocabulary:   vocab,
		Grammar:      newGrammarItems(lesson.Grammars),
		Exercises:    newExerciseItems(lesson.Exercises),
	}
}

func newCurriculumLessonResponse(lesson *model.CurriculumLesson) model.LessonResponse {
	vocab := make([]model.VocabularyItemResponse, 0, len(lesson.Vocabularies))
	for _, v := range lesson.Vocabularies {
		vocab = append(vocab, model.VocabularyItemResponse{
			Korean:        v.Korean,
			Vietnamese:    v.Vietnamese,
			Pronunciation: v.Pronunciation,
			Example:       v.Example,
		})
	}
	return model.LessonResponse{
		ID:           lesson.ID,
		Title:        lesson.Title,
		Level:        lesson.Level,
		Duration:     lesson.Duration,
		Progress:     lesson.Progress,
		LessonNumber: lesson.LessonNumber,
		VideoURL:     lesson.VideoURL,
		Vocabulary:   vocab,
		Grammar:      newGrammarItems(lesson.Grammars),
		Exercises:    newExerciseItems(lesson.Exercises),
	}
}

func newGrammarItems(grammars []model.Grammar) []model.GrammarItemResponse {
	items := make([]model.GrammarItemResponse, 0, len(grammars))
	for _, g := range grammars {
		examples := make([]string, 0, len(g.Examples))
		for _, e := range g.Examples {
			examples = append(examples, e.ExampleText)
		}
		items = append(items, model.GrammarItemResponse{
			Title:       g.Title,
			Explanation: g.Explanation,
			Examples:    examples,
		})
	}
	return items
}

func newExerciseItems(exercises []model.Exercise) []model.ExerciseItemResponse {
	items := make([]model.ExerciseItemResponse, 0, len(exercises))
	for _, e := range exercises {
		options := make([]string, 0, len(e.Options))
		for _, o := range e.Options {
			options = append(options, o.OptionText)
		}
		items = append(items, model.ExerciseItemResponse{
			ID:           e.ID,
			Type:         e.Type,
			Question:     e.Question,
			Options:      options,
			CorrectIndex: e.CorrectIndex,
			Answer:       e.Answer,
		})
	}
	return items
}
