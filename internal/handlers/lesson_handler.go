package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type CourseLessonHandler struct {
	service service.CourseLessonService
	logger  *slog.Logger
}

func NewCourseLessonHandler(s service.CourseLessonService, logger *slog.Logger) *CourseLessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseLessonHandler{service: s, logger: logger}
}

func (h *CourseLessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCourseLessons"))

	req := webutil.ParsePageRequest(r, "lessonNumber")
	page, err := h.service.ListLessons(r.Context(), req)
	if err != nil {
		logger.Error("Error listing course lessons", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CourseLessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourseLesson"))

	lessonID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID)
	if err != nil {
		logger.Error("Error getting course lesson", slog.Any("error", err), slog.Uint64("lesson_id", uint64(lessonID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson)
}

func (h *CourseLessonHandler) ListLessonsByCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListLessonsByCourse"))

	courseID, err := webutil.URLParamUint(r, "courseId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	req := webutil.ParsePageRequest(r, "lessonNumber")
	page, err := h.service.ListLessonsByCourse(r.Context(), courseID, req)
	if err != nil {
		logger.Error("Error listing lessons by course", slog.Any("error", err), slog.Uint64("course_id", uint64(courseID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

type CurriculumLessonHandler struct {
	service service.CurriculumLessonService
	logger  *slog.Logger
}

func NewCurriculumLessonHandler(s service.CurriculumLessonService, logger *slog.Logger) *CurriculumLessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurriculumLessonHandler{service: s, logger: logger}
}

func (h *CurriculumLessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCurriculumLessons"))

	req := webutil.ParsePageRequest(r, "lessonNumber")
	page, err := h.service.ListLessons(r.Context(), req)
	if err != nil {
		logger.Error("Error listing curriculum lessons", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CurriculumLessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurriculumLesson"))

	lessonID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID)
	if err != nil {
		logger.Error("Error getting curriculum lesson", slog.Any("error", err), slog.Uint64("lesson_id", uint64(lessonID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson)
}

func (h *CurriculumLessonHandler) ListLessonsByCurriculum(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListLessonsByCurriculum"))

	curriculumID, err := webutil.URLParamUint(r, "curriculumId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	req := webutil.ParsePageRequest(r, "lessonNumber")
	page, err := h.service.ListLessonsByCurriculum(r.Context(), curriculumID, req)
	if err != nil {
		logger.Error("Error listing lessons by curriculum", slog.Any("error", err), slog.Uint64("curriculum_id", uint64(curriculumID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}
