package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"hangulhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitionEndpoints(t *testing.T) {
	app := newTestApp(t)

	player := registerUser(t, app, "player@example.com", "player")
	token := player["accessToken"].(string)

	competition := &model.Competition{Title: "Cuộc thi tháng 9", Status: "ongoing", CategoryID: "vocabulary"}
	require.NoError(t, app.db.Create(competition).Error)
	questions := []model.CompetitionQuestion{
		{CompetitionID: competition.ID, QuestionText: "Xin chào?", CorrectAnswer: "안녕하세요", QuestionOrder: 1},
		{CompetitionID: competition.ID, QuestionText: "Cảm ơn?", CorrectAnswer: "감사합니다", QuestionOrder: 2},
	}
	require.NoError(t, app.db.Create(&questions).Error)

	base := fmt.Sprintf("/api/competitions/%d", competition.ID)

	t.Run("listing is public", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/competitions", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page map[string]interface{}
		decodeBody(t, rec, &page)
		assert.EqualValues(t, 1, page["totalElements"])
	})

	t.Run("join requires a token", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, base+"/join", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("join registers the participant", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, base+"/join", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		rec = app.do(t, http.MethodGet, base+"?userId="+fmt.Sprint(uint(player["user"].(map[string]interface{})["id"].(float64))), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var comp map[string]interface{}
		decodeBody(t, rec, &comp)
		assert.Equal(t, true, comp["isParticipated"])
		assert.EqualValues(t, 1, comp["participants"])
	})

	t.Run("submit scores the answers for the token's user", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/competitions/submit", token, map[string]interface{}{
			"competitionId": competition.ID,
			"answers": map[string]string{
				fmt.Sprint(questions[0].ID): "안녕하세요",
				fmt.Sprint(questions[1].ID): "틀린 답",
			},
		})
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var result map[string]interface{}
		decodeBody(t, rec, &result)
		assert.EqualValues(t, 10, result["score"])
		assert.EqualValues(t, 1, result["correctAnswers"])
		assert.EqualValues(t, 1, result["wrongAnswers"])
		assert.EqualValues(t, 1, result["rank"])
	})

	t.Run("result is recomputed against every question", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, base+"/result", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var result map[string]interface{}
		decodeBody(t, rec, &result)
		assert.EqualValues(t, 2, result["totalQuestions"])
		assert.EqualValues(t, 0, result["skippedAnswers"])
		assert.EqualValues(t, 10, result["score"])
	})

	t.Run("result without a submission is a zero score", func(t *testing.T) {
		other := registerUser(t, app, "spectator@example.com", "spectator")
		rec := app.do(t, http.MethodGet, base+"/result", other["accessToken"].(string), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var result map[string]interface{}
		decodeBody(t, rec, &result)
		assert.EqualValues(t, 0, result["score"])
		assert.EqualValues(t, 2, result["skippedAnswers"])
		assert.Nil(t, result["rank"])
	})
}
