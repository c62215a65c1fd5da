package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	service service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(s service.CourseService, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{service: s, logger: logger}
}

func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCourses"))

	req := webutil.ParsePageRequest(r, "id")
	page, err := h.service.ListCourses(r.Context(), r.URL.Query().Get("level"), req)
	if err != nil {
		logger.Error("Error listing courses", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CourseHandler) ListCoursesByLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCoursesByLevel"))

	req := webutil.ParsePageRequest(r, "id")
	page, err := h.service.ListCourses(r.Context(), chi.URLParam(r, "level"), req)
	if err != nil {
		logger.Error("Error listing courses by level", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourse"))

	courseID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		logger.Error("Error getting course", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCourse"))

	var req model.CourseRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid course request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating course", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Course created", slog.Uint64("course_id", uint64(course.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateCourse"))

	courseID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.CourseRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid course request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), courseID, &req)
	if err != nil {
		logger.Error("Error updating course", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCourse"))

	courseID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		logger.Error("Error deleting course", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}

func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Enroll"))

	courseID, err := webutil.URLParamUint(r, "courseId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.Enroll(r.Context(), courseID, userID); err != nil {
		logger.Error("Error enrolling user", slog.Any("error", err),
			slog.Uint64("course_id", uint64(courseID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("User enrolled", slog.Uint64("course_id", uint64(courseID)), slog.Uint64("user_id", uint64(userID)))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Enrolled successfully"})
}

func (h *CourseHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDashboardStats"))

	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	stats, err := h.service.GetDashboardStats(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting dashboard stats", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}
