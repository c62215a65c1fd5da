package service

import (
	"context"
	"testing"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCompetitionService(t *testing.T) (CompetitionService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCompetitionService(db, repository.NewGormCompetitionRepository(), repository.NewGormUserRepository())
	return svc, db
}

func seedCompetition(t *testing.T, db *gorm.DB) *model.Competition {
	t.Helper()

	comp := &model.Competition{Title: "Vua tiếng Hàn", Status: "ongoing"}
	require.NoError(t, db.Create(comp).Error)

	// Q1 and Q2 grade against CorrectAnswer, Q3 against its correct option.
	q1 := &model.CompetitionQuestion{CompetitionID: comp.ID, QuestionText: "hello?", CorrectAnswer: "안녕하세요", QuestionOrder: 1}
	q2 := &model.CompetitionQuestion{CompetitionID: comp.ID, QuestionText: "thanks?", CorrectAnswer: "감사합니다", QuestionOrder: 2}
	q3 := &model.CompetitionQuestion{CompetitionID: comp.ID, QuestionText: "pick one", QuestionOrder: 3}
	require.NoError(t, db.Create(q1).Error)
	require.NoError(t, db.Create(q2).Error)
	require.NoError(t, db.Create(q3).Error)
	require.NoError(t, db.Create(&model.CompetitionQuestionOption{QuestionID: q3.ID, OptionText: "네", OptionOrder: 1, IsCorrect: true}).Error)
	require.NoError(t, db.Create(&model.CompetitionQuestionOption{QuestionID: q3.ID, OptionText: "아니요", OptionOrder: 2}).Error)

	return comp
}

func questionIDs(t *testing.T, db *gorm.DB, compID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&model.CompetitionQuestion{}).
		Where("competition_id = ?", compID).Order("question_order ASC").Pluck("id", &ids).Error)
	require.Len(t, ids, 3)
	return ids
}

func TestCompetitionService_Join(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	user := createTestUser(t, db, "join@example.com", 0)

	require.NoError(t, svc.Join(ctx, comp.ID, user.ID))

	var participant model.CompetitionParticipant
	require.NoError(t, db.Where("user_id = ? AND competition_id = ?", user.ID, comp.ID).First(&participant).Error)
	assert.Equal(t, model.ParticipantStatusRegistered, participant.Status)

	var reloaded model.Competition
	require.NoError(t, db.First(&reloaded, comp.ID).Error)
	assert.Equal(t, 1, reloaded.Participants)

	// Joining twice is a no-op.
	require.NoError(t, svc.Join(ctx, comp.ID, user.ID))
	require.NoError(t, db.First(&reloaded, comp.ID).Error)
	assert.Equal(t, 1, reloaded.Participants)
}

func TestCompetitionService_Submit(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	user := createTestUser(t, db, "submit@example.com", 0)
	ids := questionIDs(t, db, comp.ID)

	result, err := svc.Submit(ctx, user.ID, &model.CompetitionSubmissionRequest{
		CompetitionID: comp.ID,
		Answers: map[uint]string{
			ids[0]: "안녕하세요", // correct
			ids[1]: "wrong",  // wrong
			ids[2]: "네",      // correct via option
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 1, result.WrongAnswers)
	assert.Equal(t, 0, result.SkippedAnswers)
	assert.Equal(t, 2*model.PointsPerCorrectAnswer, result.Score)
	assert.InDelta(t, 2.0/3.0, result.Accuracy, 1e-9)
	require.NotNil(t, result.Rank)
	assert.Equal(t, 1, *result.Rank)

	var participant model.CompetitionParticipant
	require.NoError(t, db.Where("user_id = ? AND competition_id = ?", user.ID, comp.ID).First(&participant).Error)
	assert.Equal(t, model.ParticipantStatusCompleted, participant.Status)
	assert.Equal(t, 20, participant.Score)
	assert.NotNil(t, participant.SubmittedAt)
}

func TestCompetitionService_Submit_ReplacesPreviousSubmission(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	user := createTestUser(t, db, "resubmit@example.com", 0)
	ids := questionIDs(t, db, comp.ID)

	_, err := svc.Submit(ctx, user.ID, &model.CompetitionSubmissionRequest{
		CompetitionID: comp.ID,
		Answers:       map[uint]string{ids[0]: "wrong"},
	})
	require.NoError(t, err)

	result, err := svc.Submit(ctx, user.ID, &model.CompetitionSubmissionRequest{
		CompetitionID: comp.ID,
		Answers:       map[uint]string{ids[0]: "안녕하세요", ids[1]: "감사합니다"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 20, result.Score)

	var count int64
	require.NoError(t, db.Model(&model.CompetitionSubmission{}).
		Where("user_id = ? AND competition_id = ?", user.ID, comp.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count, "old submissions must be replaced, not appended")
}

func TestCompetitionService_Submit_RanksByScoreThenTime(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	ids := questionIDs(t, db, comp.ID)

	alice := createTestUser(t, db, "alice@example.com", 0)
	bob := createTestUser(t, db, "bob@example.com", 0)

	_, err := svc.Submit(ctx, alice.ID, &model.CompetitionSubmissionRequest{
		CompetitionID: comp.ID,
		Answers:       map[uint]string{ids[0]: "안녕하세요"},
	})
	require.NoError(t, err)

	bobResult, err := svc.Submit(ctx, bob.ID, &model.CompetitionSubmissionRequest{
		CompetitionID: comp.ID,
		Answers:       map[uint]string{ids[0]: "안녕하세요", ids[1]: "감사합니다"},
	})
	require.NoError(t, err)
	require.NotNil(t, bobResult.Rank)
	assert.Equal(t, 1, *bobResult.Rank)

	var aliceRow model.CompetitionParticipant
	require.NoError(t, db.Where("user_id = ? AND competition_id = ?", alice.ID, comp.ID).First(&aliceRow).Error)
	require.NotNil(t, aliceRow.Rank)
	assert.Equal(t, 2, *aliceRow.Rank)
}

func TestCompetitionService_GetResult_CountsSkipped(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	user := createTestUser(t, db, "result@example.com", 0)
	ids := questionIDs(t, db, comp.ID)

	_, err := svc.Submit(ctx, user.ID, &model.CompetitionSubmissionRequest{
		CompetitionID: comp.ID,
		Answers:       map[uint]string{ids[0]: "안녕하세요"},
	})
	require.NoError(t, err)

	result, err := svc.GetResult(ctx, comp.ID, user.ID)
	require.NoError(t, err)

	// Unlike the submit response, the result endpoint counts unanswered
	// questions as skipped and divides accuracy by the full question count.
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.SkippedAnswers)
	assert.InDelta(t, 1.0/3.0, result.Accuracy, 1e-9)
	assert.Equal(t, model.PointsPerCorrectAnswer, result.Score)
}

func TestCompetitionService_GetResult_NeverJoined(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	user := createTestUser(t, db, "spectator@example.com", 0)

	// A user without a participant row gets a zero-score result, not an error.
	result, err := svc.GetResult(ctx, comp.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 3, result.SkippedAnswers)
	assert.Equal(t, 0, result.Score)
	assert.Nil(t, result.Rank)
	assert.Equal(t, 0.0, result.Accuracy)
	assert.Empty(t, result.QuestionResults)
}

func TestCompetitionService_GetResult_UnknownCompetition(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	user := createTestUser(t, db, "nocomp@example.com", 0)

	_, err := svc.GetResult(ctx, 9999, user.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCompetitionService_GetCompetition_Overlay(t *testing.T) {
	ctx := context.Background()
	svc, db := newCompetitionService(t)
	comp := seedCompetition(t, db)
	user := createTestUser(t, db, "overlay@example.com", 0)

	resp, err := svc.GetCompetition(ctx, comp.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsParticipated)
	assert.Nil(t, resp.UserScore)

	require.NoError(t, svc.Join(ctx, comp.ID, user.ID))

	resp, err = svc.GetCompetition(ctx, comp.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsParticipated)
}
