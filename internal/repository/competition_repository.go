package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type CompetitionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, competition *model.Competition) error
	FindByID(ctx context.Context, db *gorm.DB, competitionID uint) (*model.Competition, error)
	FindPage(ctx context.Context, db *gorm.DB, status, categoryID string, req model.PageRequest) ([]*model.Competition, int64, error)
	Update(ctx context.Context, tx *gorm.DB, competitionID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, competitionID uint) error
	AddParticipants(ctx context.Context, tx *gorm.DB, competitionID uint, delta int) error

	FindCategories(ctx context.Context, db *gorm.DB) ([]*model.CompetitionCategory, error)
	FindCategoryByCategoryID(ctx context.Context, db *gorm.DB, categoryID string) (*model.CompetitionCategory, error)
	CreateCategory(ctx context.Context, tx *gorm.DB, category *model.CompetitionCategory) error

	CreateQuestion(ctx context.Context, tx *gorm.DB, question *model.CompetitionQuestion) error
	FindQuestions(ctx context.Context, db *gorm.DB, competitionID uint) ([]*model.CompetitionQuestion, error)

	FindParticipant(ctx context.Context, db *gorm.DB, userID, competitionID uint) (*model.CompetitionParticipant, error)
	FindParticipantsByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.CompetitionParticipant, error)
	CreateParticipant(ctx context.Context, tx *gorm.DB, participant *model.CompetitionParticipant) error
	SaveParticipant(ctx context.Context, tx *gorm.DB, participant *model.CompetitionParticipant) error
	FindParticipantsRanked(ctx context.Context, db *gorm.DB, competitionID uint) ([]*model.CompetitionParticipant, error)

	DeleteSubmissions(ctx context.Context, tx *gorm.DB, userID, competitionID uint) error
	CreateSubmission(ctx context.Context, tx *gorm.DB, submission *model.CompetitionSubmission) error
	FindSubmissions(ctx context.Context, db *gorm.DB, userID, competitionID uint) ([]*model.CompetitionSubmission, error)
}

var competitionSortColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"startDate":    "start_date",
	"endDate":      "end_date",
	"participants": "participants",
	"createdAt":    "created_at",
}

type gormCompetitionRepository struct{}

func NewGormCompetitionRepository() CompetitionRepository {
	return &gormCompetitionRepository{}
}

func (r *gormCompetitionRepository) Create(ctx context.Context, tx *gorm.DB, competition *model.Competition) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(competition)
	if result.Error != nil {
		logger.Error("Error creating competition in DB", "error", result.Error, "title", competition.Title)
		return fmt.Errorf("gormCompetitionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCompetitionRepository) FindByID(ctx context.Context, db *gorm.DB, competitionID uint) (*model.Competition, error) {
	var competition model.Competition
	result := db.WithContext(ctx).First(&competition, competitionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCompetitionRepository.FindByID: %w", result.Error)
	}
	return &competition, nil
}

func (r *gormCompetitionRepository) FindPage(ctx context.Context, db *gorm.DB, status, categoryID string, req model.PageRequest) ([]*model.Competition, int64, error) {
	query := db.WithContext(ctx).Model(&model.Competition{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormCompetitionRepository.FindPage count: %w", err)
	}

	var competitions []*model.Competition
	err := query.
		Order(req.OrderClause(competitionSortColumns, "created_at DESC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&competitions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormCompetitionRepository.FindPage: %w", err)
	}
	return competitions, total, nil
}

func (r *gormCompetitionRepository) Update(ctx context.Context, tx *gorm.DB, competitionID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Competition{}).Where("id = ?", competitionID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormCompetitionRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCompetitionRepository) Delete(ctx context.Context, tx *gorm.DB, competitionID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Competition{}, competitionID)
	if result.Error != nil {
		logger.Error("Error deleting competition in DB", "error", result.Error, "competition_id", competitionID)
		return fmt.Errorf("gormCompetitionRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCompetitionRepository) AddParticipants(ctx context.Context, tx *gorm.DB, competitionID uint, delta int) error {
	result := tx.WithContext(ctx).Model(&model.Competition{}).Where("id = ?", competitionID).
		Update("participants", gorm.Expr("participants + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("gormCompetitionRepository.AddParticipants: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCompetitionRepository) FindCategories(ctx context.Context, db *gorm.DB) ([]*model.CompetitionCategory, error) {
	var categories []*model.CompetitionCategory
	result := db.WithContext(ctx).Order("id ASC").Find(&categories)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCompetitionRepository.FindCategories: %w", result.Error)
	}
	return categories, nil
}

func (r *gormCompetitionRepository) FindCategoryByCategoryID(ctx context.Context, db *gorm.DB, categoryID string) (*model.CompetitionCategory, error) {
	var category model.CompetitionCategory
	result := db.WithContext(ctx).Where("category_id = ?", categoryID).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCompetitionRepository.FindCategoryByCategoryID: %w", result.Error)
	}
	return &category, nil
}

func (r *gormCompetitionRepository) CreateCategory(ctx context.Context, tx *gorm.DB, category *model.CompetitionCategory) error {
	result := tx.WithContext(ctx).Create(category)
	if result.Error != nil {
		return fmt.Errorf("gormCompetitionRepository.CreateCategory: %w", result.Error)
	}
	return nil
}

func (r *gormCompetitionRepository) CreateQuestion(ctx context.Context, tx *gorm.DB, question *model.CompetitionQuestion) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(question)
	if result.Error != nil {
		logger.Error("Error creating competition question in DB", "error", result.Error,
			"competition_id", question.CompetitionID)
		return fmt.Errorf("gormCompetitionRepository.CreateQuestion: %w", result.Error)
	}
	return nil
}

func (r *gormCompetitionRepository) FindQuestions(ctx context.Context, db *gorm.DB, competitionID uint) ([]*model.CompetitionQuestion, error) {
	var questions []*model.CompetitionQuestion
	result := db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("competition_question_options.option_order ASC")
		}).
		Where("competition_id = ?", competitionID).
		Order("question_order ASC").
		Find(&questions)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCompetitionRepository.FindQuestions: %w", result.Error)
	}
	return questions, nil
}

func (r *gormCompetitionRepository) FindParticipant(ctx context.Context, db *gorm.DB, userID, competitionID uint) (*model.CompetitionParticipant, error) {
	var participant model.CompetitionParticipant
	result := db.WithContext(ctx).Where("user_id = ? AND competition_id = ?", userID, competitionID).First(&participant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCompetitionRepository.FindParticipant: %w", result.Error)
	}
	return &participant, nil
}

func (r *gormCompetitionRepository) FindParticipantsByUser(ctx context.Context, db *gorm.DB, userID uint) ([]*model.CompetitionParticipant, error) {
	var participants []*model.CompetitionParticipant
	result := db.WithContext(ctx).Where("user_id = ?", userID).Find(&participants)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCompetitionRepository.FindParticipantsByUser: %w", result.Error)
	}
	return participants, nil
}

func (r *gormCompetitionRepository) CreateParticipant(ctx context.Context, tx *gorm.DB, participant *model.CompetitionParticipant) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(participant)
	if result.Error != nil {
		logger.Error("Error creating competition participant in DB", "error", result.Error,
			"user_id", participant.UserID, "competition_id", participant.CompetitionID)
		return fmt.Errorf("gormCompetitionRepository.CreateParticipant: %w", result.Error)
	}
	return nil
}

func (r *gormCompetitionRepository) SaveParticipant(ctx context.Context, tx *gorm.DB, participant *model.CompetitionParticipant) error {
	result := tx.WithContext(ctx).Save(participant)
	if result.Error != nil {
		return fmt.Errorf("gormCompetitionRepository.SaveParticipant: %w", result.Error)
	}
	return nil
}

// FindParticipantsRanked orders by score descending, earliest submission
// first on ties. The caller rewrites the rank column from this ordering.
func (r *gormCompetitionRepository) FindParticipantsRanked(ctx context.Context, db *gorm.DB, competitionID uint) ([]*model.CompetitionParticipant, error) {
	var participants []*model.CompetitionParticipant
	result := db.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("score DESC").
		Order("submitted_at ASC").
		Find(&participants)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCompetitionRepository.FindParticipantsRanked: %w", result.Error)
	}
	return participants, nil
}

func (r *gormCompetitionRepository) DeleteSubmissions(ctx context.Context, tx *gorm.DB, userID, competitionID uint) error {
	result := tx.WithContext(ctx).
		Where("user_id = ? AND competition_id = ?", userID, competitionID).
		Delete(&model.CompetitionSubmission{})
	if result.Error != nil {
		return fmt.Errorf("gormCompetitionRepository.DeleteSubmissions: %w", result.Error)
	}
	return nil
}

func (r *gormCompetitionRepository) CreateSubmission(ctx context.Context, tx *gorm.DB, submission *model.CompetitionSubmission) error {
	result := tx.WithContext(ctx).Create(submission)
	if result.Error != nil {
		return fmt.Errorf("gormCompetitionRepository.CreateSubmission: %w", result.Error)
	}
	return nil
}

func (r *gormCompetitionRepository) FindSubmissions(ctx context.Context, db *gorm.DB, userID, competitionID uint) ([]*model.CompetitionSubmission, error) {
	var submissions []*model.CompetitionSubmission
	result := db.WithContext(ctx).
		Where("user_id = ? AND competition_id = ?", userID, competitionID).
		Find(&submissions)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCompetitionRepository.FindSubmissions: %w", result.Error)
	}
	return submissions, nil
}
