package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"hangulhub/internal/config"
	"hangulhub/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth             *AuthHandler
	User             *UserHandler
	Course           *CourseHandler
	CourseLesson     *CourseLessonHandler
	Curriculum       *CurriculumHandler
	CurriculumLesson *CurriculumLessonHandler
	Textbook         *TextbookHandler
	Blog             *BlogHandler
	Competition      *CompetitionHandler
	Material         *MaterialHandler
	Ranking          *RankingHandler
	Achievement      *AchievementHandler
	Task             *TaskHandler
	Skill            *SkillHandler
	VocabFolder      *VocabFolderHandler
}

// NewRouter wires middleware and the full API route map.
func NewRouter(cfg *config.Config, logger *slog.Logger, db *gorm.DB, h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	requireAuth := middleware.JWTAuthMiddleware(cfg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.With(middleware.OptionalJWTAuthMiddleware(cfg)).Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", h.Auth.Me)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{id}", h.User.GetUser)
			r.Put("/{id}", h.User.UpdateUser)
			r.Post("/{id}/avatar", h.User.UploadAvatar)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.Course.ListCourses)
			r.Get("/level/{level}", h.Course.ListCoursesByLevel)
			r.Get("/{id}", h.Course.GetCourse)
			r.Post("/", h.Course.CreateCourse)
			r.Put("/{id}", h.Course.UpdateCourse)
			r.Delete("/{id}", h.Course.DeleteCourse)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{courseId}/enroll/{userId}", h.Course.Enroll)
				r.Get("/dashboard/{userId}", h.Course.GetDashboardStats)
			})
		})

		r.Route("/course-lessons", func(r chi.Router) {
			r.Get("/", h.CourseLesson.ListLessons)
			r.Get("/{id}", h.CourseLesson.GetLesson)
			r.Get("/course/{courseId}", h.CourseLesson.ListLessonsByCourse)
		})

		r.Route("/curriculums", func(r chi.Router) {
			r.Get("/", h.Curriculum.ListCurricula)
			r.Get("/book/{bookNumber}", h.Curriculum.GetCurriculumByBookNumber)
			r.Get("/{id}", h.Curriculum.GetCurriculum)
			r.Post("/", h.Curriculum.CreateCurriculum)
			r.Put("/{id}", h.Curriculum.UpdateCurriculum)
			r.Delete("/{id}", h.Curriculum.DeleteCurriculum)
			r.Get("/{curriculumId}/progress/{userId}", h.Curriculum.GetCurriculumProgress)
		})

		r.Route("/curriculum-lessons", func(r chi.Router) {
			r.Get("/", h.CurriculumLesson.ListLessons)
			r.Get("/{id}", h.CurriculumLesson.GetLesson)
			r.Get("/curriculum/{curriculumId}", h.CurriculumLesson.ListLessonsByCurriculum)
		})

		r.Route("/textbooks", func(r chi.Router) {
			r.Get("/", h.Textbook.ListTextbooks)
			r.Get("/book/{bookNumber}", h.Textbook.GetTextbookByBookNumber)
			r.Get("/{id}", h.Textbook.GetTextbook)
			r.Post("/", h.Textbook.CreateTextbook)
			r.Put("/{id}", h.Textbook.UpdateTextbook)
			r.Delete("/{id}", h.Textbook.DeleteTextbook)
			r.Get("/{textbookId}/progress/{userId}", h.Textbook.GetTextbookProgress)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Blog.ListPosts)
				r.Get("/author/{authorId}", h.Blog.ListPostsByAuthor)
				r.Get("/{id}", h.Blog.GetPost)
				r.Post("/", h.Blog.CreatePost)
				r.Put("/{id}", h.Blog.UpdatePost)
				r.Delete("/{id}", h.Blog.DeletePost)
				r.Post("/{postId}/like/{userId}", h.Blog.ToggleLike)
				r.Get("/{postId}/comments", h.Blog.ListComments)
				r.Post("/{postId}/comments", h.Blog.CreateComment)
			})
			r.Route("/comments", func(r chi.Router) {
				r.Delete("/{commentId}", h.Blog.DeleteComment)
				r.Post("/{commentId}/like/{userId}", h.Blog.ToggleCommentLike)
			})
		})

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.Competition.ListCompetitions)
			r.Get("/status/{status}", h.Competition.ListCompetitionsByStatus)
			r.Get("/{id}", h.Competition.GetCompetition)
			r.Get("/{id}/questions", h.Competition.GetQuestions)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{id}/join", h.Competition.Join)
				r.Post("/submit", h.Competition.Submit)
				r.Get("/{id}/result", h.Competition.GetResult)
			})
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", h.Material.ListMaterials)
			r.Get("/filter", h.Material.FilterMaterials)
			r.Get("/featured", h.Material.ListFeatured)
			r.Get("/count", h.Material.TotalCount)
			r.Get("/downloads/count", h.Material.TotalDownloads)
			r.Get("/{id}", h.Material.GetMaterial)
			r.Post("/", h.Material.CreateMaterial)
			r.Put("/{id}", h.Material.UpdateMaterial)
			r.Delete("/{id}", h.Material.DeleteMaterial)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{id}/download", h.Material.Download)
			})
		})

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/", h.Ranking.ListRankings)
			r.Get("/all", h.Ranking.ListAllRankings)
			r.Get("/user/{userId}", h.Ranking.GetUserRanking)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", h.Achievement.ListAchievements)
			r.Get("/user/{userId}", h.Achievement.GetUserAchievements)
			r.Get("/user/{userId}/achievement/{achievementId}", h.Achievement.GetUserAchievement)
		})

		r.Get("/tasks/user/{userId}", h.Task.GetUserTasks)
		r.Get("/skills/user/{userId}", h.Skill.GetUserSkillProgress)

		r.Route("/vocabulary-folders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.VocabFolder.ListFolders)
			r.Post("/", h.VocabFolder.CreateFolder)
			r.Get("/{id}", h.VocabFolder.GetFolder)
			r.Put("/{id}", h.VocabFolder.UpdateFolder)
			r.Delete("/{id}", h.VocabFolder.DeleteFolder)
			r.Post("/{folderId}/words", h.VocabFolder.AddWord)
			r.Put("/words/{wordId}", h.VocabFolder.UpdateWord)
			r.Delete("/words/{wordId}", h.VocabFolder.DeleteWord)
		})
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.App.UploadDir)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
