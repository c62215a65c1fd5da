package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hangulhub/internal/config"
	"hangulhub/internal/handlers"
	"hangulhub/internal/repository"
	"hangulhub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	router chi.Router
	db     *gorm.DB
	cfg    *config.Config
}

// newTestApp wires the whole API against an isolated in-memory database.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTTLMin = 60
	cfg.JWT.RefreshTTLHours = 24
	cfg.App.UploadDir = t.TempDir()

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewGormUserRepository()
	courseRepo := repository.NewGormCourseRepository()
	enrollRepo := repository.NewGormEnrollmentRepository()
	statsRepo := repository.NewGormDashboardStatsRepository()
	currRepo := repository.NewGormCurriculumRepository()
	currProgressRepo := repository.NewGormCurriculumProgressRepository()
	textbookRepo := repository.NewGormTextbookRepository()
	textbookProgressRepo := repository.NewGormTextbookProgressRepository()

	h := handlers.Handlers{
		Auth:             handlers.NewAuthHandler(service.NewAuthService(db, cfg, userRepo), testLogger),
		User:             handlers.NewUserHandler(service.NewUserService(db, userRepo, cfg.App.UploadDir), testLogger),
		Course:           handlers.NewCourseHandler(service.NewCourseService(db, courseRepo, enrollRepo, statsRepo, userRepo), testLogger),
		CourseLesson:     handlers.NewCourseLessonHandler(service.NewCourseLessonService(db, repository.NewGormCourseLessonRepository()), testLogger),
		Curriculum:       handlers.NewCurriculumHandler(service.NewCurriculumService(db, currRepo, currProgressRepo, userRepo), testLogger),
		CurriculumLesson: handlers.NewCurriculumLessonHandler(service.NewCurriculumLessonService(db, repository.NewGormCurriculumLessonRepository()), testLogger),
		Textbook:         handlers.NewTextbookHandler(service.NewTextbookService(db, textbookRepo, textbookProgressRepo, userRepo), testLogger),
		Blog:             handlers.NewBlogHandler(service.NewBlogService(db, repository.NewGormBlogRepository(), userRepo), testLogger),
		Competition:      handlers.NewCompetitionHandler(service.NewCompetitionService(db, repository.NewGormCompetitionRepository(), userRepo), testLogger),
		Material:         handlers.NewMaterialHandler(service.NewMaterialService(db, repository.NewGormMaterialRepository(), userRepo), testLogger),
		Ranking:          handlers.NewRankingHandler(service.NewRankingService(db, repository.NewGormRankingRepository()), testLogger),
		Achievement:      handlers.NewAchievementHandler(service.NewAchievementService(db, repository.NewGormAchievementRepository(), userRepo), testLogger),
		Task:             handlers.NewTaskHandler(service.NewTaskService(db, repository.NewGormTaskRepository(), userRepo), testLogger),
		Skill:            handlers.NewSkillHandler(service.NewSkillService(db, currRepo, currProgressRepo, userRepo), testLogger),
		VocabFolder:      handlers.NewVocabFolderHandler(service.NewVocabFolderService(db, repository.NewGormVocabFolderRepository(), userRepo), testLogger),
	}

	return &testApp{
		router: handlers.NewRouter(cfg, testLogger, db, h),
		db:     db,
		cfg:    cfg,
	}
}

// do sends a JSON request through the full middleware stack.
func (app *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}

// registerUser runs the real register endpoint and returns the auth payload.
func registerUser(t *testing.T, app *testApp, email, username string) map[string]interface{} {
	t.Helper()

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Test User",
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	return resp
}
