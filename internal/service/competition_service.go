package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type CompetitionService interface {
	ListCompetitions(ctx context.Context, userID uint, status, categoryID string, req model.PageRequest) (*model.PageResponse[model.CompetitionResponse], error)
	GetCompetition(ctx context.Context, competitionID, userID uint) (*model.CompetitionResponse, error)
	GetQuestions(ctx context.Context, competitionID uint) ([]model.CompetitionQuestionResponse, error)
	Join(ctx context.Context, competitionID, userID uint) error
	Submit(ctx context.Context, userID uint, req *model.CompetitionSubmissionRequest) (*model.CompetitionResultResponse, error)
	GetResult(ctx context.Context, competitionID, userID uint) (*model.CompetitionResultResponse, error)
}

type competitionService struct {
	db       *gorm.DB
	compRepo repository.CompetitionRepository
	userRepo repository.UserRepository
}

func NewCompetitionService(db *gorm.DB, compRepo repository.CompetitionRepository, userRepo repository.UserRepository) CompetitionService {
	return &competitionService{db: db, compRepo: compRepo, userRepo: userRepo}
}

func (s *competitionService) ListCompetitions(ctx context.Context, userID uint, status, categoryID string, req model.PageRequest) (*model.PageResponse[model.CompetitionResponse], error) {
	logger := middleware.GetLogger(ctx)

	competitions, total, err := s.compRepo.FindPage(ctx, s.db, status, categoryID, req)
	if err != nil {
		logger.Error("Error listing competitions", "error", err)
		return nil, model.ErrInternalServer
	}

	categories, err := s.categoryNames(ctx)
	if err != nil {
		logger.Error("Error loading competition categories", "error", err)
		return nil, model.ErrInternalServer
	}

	participants := make(map[uint]*model.CompetitionParticipant)
	if userID != 0 {
		mine, err := s.compRepo.FindParticipantsByUser(ctx, s.db, userID)
		if err != nil {
			logger.Error("Error loading user participations", "error", err, "user_id", userID)
			return nil, model.ErrInternalServer
		}
		for _, p := range mine {
			participants[p.CompetitionID] = p
		}
	}

	content := make([]model.CompetitionResponse, 0, len(competitions))
	for _, competition := range competitions {
		content = append(content, newCompetitionResponse(competition, categories[competition.CategoryID], participants[competition.ID]))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

func (s *competitionService) GetCompetition(ctx context.Context, competitionID, userID uint) (*model.CompetitionResponse, error) {
	competition, err := s.compRepo.FindByID(ctx, s.db, competitionID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryNames(ctx)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	var participant *model.CompetitionParticipant
	if userID != 0 {
		participant, err = s.compRepo.FindParticipant(ctx, s.db, userID, competitionID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInternalServer
		}
	}

	resp := newCompetitionResponse(competition, categories[competition.CategoryID], participant)
	return &resp, nil
}

func (s *competitionService) GetQuestions(ctx context.Context, competitionID uint) ([]model.CompetitionQuestionResponse, error) {
	if _, err := s.compRepo.FindByID(ctx, s.db, competitionID); err != nil {
		return nil, err
	}

	questions, err := s.compRepo.FindQuestions(ctx, s.db, competitionID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error loading competition questions", "error", err, "competition_id", competitionID)
		return nil, model.ErrInternalServer
	}

	responses := make([]model.CompetitionQuestionResponse, 0, len(questions))
	for _, q := range questions {
		options := make([]model.CompetitionQuestionOptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, model.CompetitionQuestionOptionResponse{
				ID:          o.ID,
				OptionText:  o.OptionText,
				OptionOrder: o.OptionOrder,
				IsCorrect:   o.IsCorrect,
			})
		}
		responses = append(responses, model.CompetitionQuestionResponse{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			QuestionOrder: q.QuestionOrder,
			Options:       options,
		})
	}
	return responses, nil
}

// Join registers the user once; joining again is a no-op.
func (s *competitionService) Join(ctx context.Context, competitionID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.compRepo.FindByID(ctx, tx, competitionID); err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		if _, err := s.compRepo.FindParticipant(ctx, tx, userID, competitionID); err == nil {
			return nil
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		participant := &model.CompetitionParticipant{
			UserID:        userID,
			CompetitionID: competitionID,
			Status:        model.ParticipantStatusRegistered,
		}
		if err := s.compRepo.CreateParticipant(ctx, tx, participant); err != nil {
			return err
		}
		return s.compRepo.AddParticipants(ctx, tx, competitionID, 1)
	})
}

// Submit replaces any previous attempt, grades every answered question, and
// rewrites the ranks of the whole competition.
func (s *competitionService) Submit(ctx context.Context, userID uint, req *model.CompetitionSubmissionRequest) (*model.CompetitionResultResponse, error) {
	var result *model.CompetitionResultResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.compRepo.FindByID(ctx, tx, req.CompetitionID); err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		if err := s.compRepo.DeleteSubmissions(ctx, tx, userID, req.CompetitionID); err != nil {
			return err
		}

		questions, err := s.compRepo.FindQuestions(ctx, tx, req.CompetitionID)
		if err != nil {
			return err
		}
		questionByID := make(map[uint]*model.CompetitionQuestion, len(questions))
		for _, q := range questions {
			questionByID[q.ID] = q
		}

		correct := 0
		questionResults := make([]model.QuestionResultResponse, 0, len(req.Answers))
		for questionID, answer := range req.Answers {
			question, ok := questionByID[questionID]
			if !ok {
				return model.NewAppError("QUESTION_NOT_FOUND", "Question not found", "answers", model.ErrNotFound)
			}

			isCorrect := checkAnswer(question, answer)
			if isCorrect {
				correct++
			}
			if err := s.compRepo.CreateSubmission(ctx, tx, &model.CompetitionSubmission{
				UserID:        userID,
				CompetitionID: req.CompetitionID,
				QuestionID:    questionID,
				Answer:        answer,
				IsCorrect:     isCorrect,
			}); err != nil {
				return err
			}
			questionResults = append(questionResults, model.QuestionResultResponse{
				QuestionID:    questionID,
				UserAnswer:    answer,
				CorrectAnswer: question.CorrectAnswer,
				IsCorrect:     isCorrect,
			})
		}

		score := correct * model.PointsPerCorrectAnswer
		now := time.Now()

		participant, err := s.compRepo.FindParticipant(ctx, tx, userID, req.CompetitionID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			participant = &model.CompetitionParticipant{
				UserID:        userID,
				CompetitionID: req.CompetitionID,
			}
			if err := s.compRepo.CreateParticipant(ctx, tx, participant); err != nil {
				return err
			}
			if err := s.compRepo.AddParticipants(ctx, tx, req.CompetitionID, 1); err != nil {
				return err
			}
		}
		participant.Score = score
		participant.SubmittedAt = &now
		participant.Status = model.ParticipantStatusCompleted
		if err := s.compRepo.SaveParticipant(ctx, tx, participant); err != nil {
			return err
		}

		if err := s.rewriteRanks(ctx, tx, req.CompetitionID); err != nil {
			return err
		}

		participant, err = s.compRepo.FindParticipant(ctx, tx, userID, req.CompetitionID)
		if err != nil {
			return err
		}

		answered := len(req.Answers)
		accuracy := 0.0
		if answered > 0 {
			accuracy = float64(correct) / float64(answered)
		}
		result = &model.CompetitionResultResponse{
			CompetitionID:   req.CompetitionID,
			TotalQuestions:  answered,
			CorrectAnswers:  correct,
			WrongAnswers:    answered - correct,
			SkippedAnswers:  0,
			Score:           score,
			Rank:            participant.Rank,
			Accuracy:        accuracy,
			QuestionResults: questionResults,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetResult grades against the full question set, so questions the user never
// answered count as skipped. A user who never joined gets a zero-score result
// with a nil rank rather than an error.
func (s *competitionService) GetResult(ctx context.Context, competitionID, userID uint) (*model.CompetitionResultResponse, error) {
	if _, err := s.compRepo.FindByID(ctx, s.db, competitionID); err != nil {
		return nil, err
	}

	participant, err := s.compRepo.FindParticipant(ctx, s.db, userID, competitionID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		participant = &model.CompetitionParticipant{}
	}

	questions, err := s.compRepo.FindQuestions(ctx, s.db, competitionID)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	submissions, err := s.compRepo.FindSubmissions(ctx, s.db, userID, competitionID)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	questionByID := make(map[uint]*model.CompetitionQuestion, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	correct := 0
	questionResults := make([]model.QuestionResultResponse, 0, len(submissions))
	for _, sub := range submissions {
		if sub.IsCorrect {
			correct++
		}
		correctAnswer := ""
		if q, ok := questionByID[sub.QuestionID]; ok {
			correctAnswer = q.CorrectAnswer
		}
		questionResults = append(questionResults, model.QuestionResultResponse{
			QuestionID:    sub.QuestionID,
			UserAnswer:    sub.Answer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     sub.IsCorrect,
		})
	}

	total := len(questions)
	submitted := len(submissions)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	return &model.CompetitionResultResponse{
		CompetitionID:   competitionID,
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		WrongAnswers:    submitted - correct,
		SkippedAnswers:  total - submitted,
		Score:           participant.Score,
		Rank:            participant.Rank,
		Accuracy:        accuracy,
		QuestionResults: questionResults,
	}, nil
}

// rewriteRanks reassigns 1-based ranks by score, earliest submission first on
// ties.
func (s *competitionService) rewriteRanks(ctx context.Context, tx *gorm.DB, competitionID uint) error {
	participants, err := s.compRepo.FindParticipantsRanked(ctx, tx, competitionID)
	if err != nil {
		return err
	}
	for i, participant := range participants {
		rank := i + 1
		participant.Rank = &rank
		if err := s.compRepo.SaveParticipant(ctx, tx, participant); err != nil {
			return err
		}
	}
	return nil
}

func (s *competitionService) categoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := s.compRepo.FindCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}
	return names, nil
}

// checkAnswer compares case-insensitively against the canonical answer, or
// against any option marked correct when no canonical answer is set.
func checkAnswer(question *model.CompetitionQuestion, answer string) bool {
	if question.CorrectAnswer != "" {
		return strings.EqualFold(question.CorrectAnswer, answer)
	}
	for _, option := range question.Options {
		if option.IsCorrect && strings.EqualFold(option.OptionText, answer) {
			return true
		}
	}
	return false
}

func newCompetitionResponse(c *model.Competition, categoryName string, participant *model.CompetitionParticipant) model.CompetitionResponse {
	resp := model.CompetitionResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		CategoryID:   c.CategoryID,
		CategoryName: categoryName,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Status:       c.Status,
		Prize:        c.Prize,
		Participants: c.Participants,
		Image:        c.Image,
		CreatedAt:    c.CreatedAt,
	}
	if participant != nil {
		resp.IsParticipated = true
		score := participant.Score
		resp.UserScore = &score
		resp.UserRank = participant.Rank
	}
	return resp
}
