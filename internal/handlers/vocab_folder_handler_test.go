package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabFolderEndpoints(t *testing.T) {
	app := newTestApp(t)

	owner := registerUser(t, app, "owner@example.com", "owner")
	ownerToken := owner["accessToken"].(string)
	intruder := registerUser(t, app, "intruder@example.com", "intruder")
	intruderToken := intruder["accessToken"].(string)

	t.Run("requests without a token are rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/vocabulary-folders", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]map[string]interface{}
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp["error"]["code"])
	})

	var folderID float64
	t.Run("create folder applies the default icon", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/vocabulary-folders", ownerToken, map[string]string{
			"name": "Chủ đề gia đình",
		})
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

		var folder map[string]interface{}
		decodeBody(t, rec, &folder)
		assert.Equal(t, "Chủ đề gia đình", folder["name"])
		assert.Equal(t, "📁", folder["icon"])
		folderID = folder["id"].(float64)
	})

	t.Run("create folder validates the payload", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/vocabulary-folders", ownerToken, map[string]string{
			"icon": "🔥",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list returns only the caller's folders", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/vocabulary-folders", intruderToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var folders []map[string]interface{}
		decodeBody(t, rec, &folders)
		assert.Empty(t, folders)

		rec = app.do(t, http.MethodGet, "/api/vocabulary-folders", ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeBody(t, rec, &folders)
		assert.Len(t, folders, 1)
	})

	t.Run("another user cannot read the folder", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, fmt.Sprintf("/api/vocabulary-folders/%.0f", folderID), intruderToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		var resp map[string]map[string]interface{}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "FORBIDDEN", resp["error"]["code"])
	})

	var wordID float64
	t.Run("add word to the folder", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, fmt.Sprintf("/api/vocabulary-folders/%.0f/words", folderID), ownerToken, map[string]string{
			"korean":        "가족",
			"vietnamese":    "gia đình",
			"pronunciation": "ga-jok",
		})
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

		var word map[string]interface{}
		decodeBody(t, rec, &word)
		assert.Equal(t, "가족", word["korean"])
		assert.Equal(t, false, word["isLearned"])
		wordID = word["id"].(float64)
	})

	t.Run("folder detail includes the word count", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, fmt.Sprintf("/api/vocabulary-folders/%.0f", folderID), ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var folder map[string]interface{}
		decodeBody(t, rec, &folder)
		assert.EqualValues(t, 1, folder["wordCount"])
	})

	t.Run("update word marks it learned", func(t *testing.T) {
		rec := app.do(t, http.MethodPut, fmt.Sprintf("/api/vocabulary-folders/words/%.0f", wordID), ownerToken, map[string]interface{}{
			"korean":     "가족",
			"vietnamese": "gia đình",
			"isLearned":  true,
		})
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var word map[string]interface{}
		decodeBody(t, rec, &word)
		assert.Equal(t, true, word["isLearned"])
	})

	t.Run("another user cannot delete the word", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, fmt.Sprintf("/api/vocabulary-folders/words/%.0f", wordID), intruderToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete folder responds no content", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, fmt.Sprintf("/api/vocabulary-folders/%.0f", folderID), ownerToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/vocabulary-folders/%.0f", folderID), ownerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
