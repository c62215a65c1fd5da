package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"hangulhub/internal/config"
	"hangulhub/internal/handlers"
	"hangulhub/internal/repository"
	"hangulhub/internal/service"
)

func main() {
	// Temporary logger until the config tells us how to log.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error running migrations", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewGormUserRepository()
	courseRepo := repository.NewGormCourseRepository()
	enrollRepo := repository.NewGormEnrollmentRepository()
	statsRepo := repository.NewGormDashboardStatsRepository()
	courseLessonRepo := repository.NewGormCourseLessonRepository()
	currRepo := repository.NewGormCurriculumRepository()
	currProgressRepo := repository.NewGormCurriculumProgressRepository()
	currLessonRepo := repository.NewGormCurriculumLessonRepository()
	textbookRepo := repository.NewGormTextbookRepository()
	textbookProgressRepo := repository.NewGormTextbookProgressRepository()
	blogRepo := repository.NewGormBlogRepository()
	compRepo := repository.NewGormCompetitionRepository()
	materialRepo := repository.NewGormMaterialRepository()
	rankingRepo := repository.NewGormRankingRepository()
	achievementRepo := repository.NewGormAchievementRepository()
	taskRepo := repository.NewGormTaskRepository()
	folderRepo := repository.NewGormVocabFolderRepository()

	authService := service.NewAuthService(db, cfg, userRepo)
	userService := service.NewUserService(db, userRepo, cfg.App.UploadDir)
	courseService := service.NewCourseService(db, courseRepo, enrollRepo, statsRepo, userRepo)
	courseLessonService := service.NewCourseLessonService(db, courseLessonRepo)
	curriculumService := service.NewCurriculumService(db, currRepo, currProgressRepo, userRepo)
	curriculumLessonService := service.NewCurriculumLessonService(db, currLessonRepo)
	textbookService := service.NewTextbookService(db, textbookRepo, textbookProgressRepo, userRepo)
	blogService := service.NewBlogService(db, blogRepo, userRepo)
	competitionService := service.NewCompetitionService(db, compRepo, userRepo)
	materialService := service.NewMaterialService(db, materialRepo, userRepo)
	rankingService := service.NewRankingService(db, rankingRepo)
	achievementService := service.NewAchievementService(db, achievementRepo, userRepo)
	taskService := service.NewTaskService(db, taskRepo, userRepo)
	skillService := service.NewSkillService(db, currRepo, currProgressRepo, userRepo)
	vocabFolderService := service.NewVocabFolderService(db, folderRepo, userRepo)

	router := handlers.NewRouter(cfg, logger, db, handlers.Handlers{
		Auth:             handlers.NewAuthHandler(authService, logger),
		User:             handlers.NewUserHandler(userService, logger),
		Course:           handlers.NewCourseHandler(courseService, logger),
		CourseLesson:     handlers.NewCourseLessonHandler(courseLessonService, logger),
		Curriculum:       handlers.NewCurriculumHandler(curriculumService, logger),
		CurriculumLesson: handlers.NewCurriculumLessonHandler(curriculumLessonService, logger),
		Textbook:         handlers.NewTextbookHandler(textbookService, logger),
		Blog:             handlers.NewBlogHandler(blogService, logger),
		Competition:      handlers.NewCompetitionHandler(competitionService, logger),
		Material:         handlers.NewMaterialHandler(materialService, logger),
		Ranking:          handlers.NewRankingHandler(rankingService, logger),
		Achievement:      handlers.NewAchievementHandler(achievementService, logger),
		Task:             handlers.NewTaskHandler(taskService, logger),
		Skill:            handlers.NewSkillHandler(skillService, logger),
		VocabFolder:      handlers.NewVocabFolderHandler(vocabFolderService, logger),
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("Server exiting")
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" || strings.ToLower(cfg.Log.Format) == "text" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}
