package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CurriculumHandler struct {
	service service.CurriculumService
	logger  *slog.Logger
}

func NewCurriculumHandler(s service.CurriculumService, logger *slog.Logger) *CurriculumHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurriculumHandler{service: s, logger: logger}
}

func (h *CurriculumHandler) ListCurricula(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCurricula"))

	userID, _ := webutil.QueryUint(r, "userId")
	req := webutil.ParsePageRequest(r, "bookNumber")

	page, err := h.service.ListCurricula(r.Context(), userID, req)
	if err != nil {
		logger.Error("Error listing curricula", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CurriculumHandler) GetCurriculum(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurriculum"))

	curriculumID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	curriculum, err := h.service.GetCurriculum(r.Context(), curriculumID)
	if err != nil {
		logger.Error("Error getting curriculum", slog.Any("error", err), slog.Uint64("curriculum_id", uint64(curriculumID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, curriculum)
}

func (h *CurriculumHandler) GetCurriculumByBookNumber(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurriculumByBookNumber"))

	raw := chi.URLParam(r, "bookNumber")
	bookNumber, err := strconv.Atoi(raw)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST", "Path parameter 'bookNumber' must be an integer.", "bookNumber", model.ErrInvalidInput))
		return
	}

	curriculum, err := h.service.GetCurriculumByBookNumber(r.Context(), bookNumber)
	if err != nil {
		logger.Error("Error getting curriculum by book number", slog.Any("error", err), slog.Int("book_number", bookNumber))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, curriculum)
}

func (h *CurriculumHandler) CreateCurriculum(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCurriculum"))

	var req model.CurriculumRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid curriculum request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	curriculum, err := h.service.CreateCurriculum(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating curriculum", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Curriculum created", slog.Int("book_number", curriculum.BookNumber))
	webutil.RespondWithJSON(w, http.StatusCreated, curriculum)
}

func (h *CurriculumHandler) UpdateCurriculum(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateCurriculum"))

	curriculumID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.CurriculumRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid curriculum request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	curriculum, err := h.service.UpdateCurriculum(r.Context(), curriculumID, &req)
	if err != nil {
		logger.Error("Error updating curriculum", slog.Any("error", err), slog.Uint64("curriculum_id", uint64(curriculumID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, curriculum)
}

func (h *CurriculumHandler) DeleteCurriculum(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCurriculum"))

	curriculumID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteCurriculum(r.Context(), curriculumID); err != nil {
		logger.Error("Error deleting curriculum", slog.Any("error", err), slog.Uint64("curriculum_id", uint64(curriculumID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}

func (h *CurriculumHandler) GetCurriculumProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurriculumProgress"))

	curriculumID, err := webutil.URLParamUint(r, "curriculumId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	progress, err := h.service.GetCurriculumProgress(r.Context(), curriculumID, userID)
	if err != nil {
		logger.Error("Error getting curriculum progress", slog.Any("error", err),
			slog.Uint64("curriculum_id", uint64(curriculumID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress)
}
