package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CompetitionHandler struct {
	service service.CompetitionService
	logger  *slog.Logger
}

func NewCompetitionHandler(s service.CompetitionService, logger *slog.Logger) *CompetitionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompetitionHandler{service: s, logger: logger}
}

func (h *CompetitionHandler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCompetitions"))

	userID, _ := webutil.QueryUint(r, "userId")
	status := r.URL.Query().Get("status")
	categoryID := r.URL.Query().Get("category")
	req := webutil.ParsePageRequest(r, "createdAt")
	if r.URL.Query().Get("direction") == "" {
		req.Direction = "DESC"
	}

	page, err := h.service.ListCompetitions(r.Context(), userID, status, categoryID, req)
	if err != nil {
		logger.Error("Error listing competitions", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CompetitionHandler) ListCompetitionsByStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCompetitionsByStatus"))

	userID, _ := webutil.QueryUint(r, "userId")
	status := chi.URLParam(r, "status")
	req := webutil.ParsePageRequest(r, "createdAt")
	if r.URL.Query().Get("direction") == "" {
		req.Direction = "DESC"
	}

	page, err := h.service.ListCompetitions(r.Context(), userID, status, "", req)
	if err != nil {
		logger.Error("Error listing competitions by status", slog.Any("error", err), slog.String("status", status))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *CompetitionHandler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCompetition"))

	competitionID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, _ := webutil.QueryUint(r, "userId")

	competition, err := h.service.GetCompetition(r.Context(), competitionID, userID)
	if err != nil {
		logger.Error("Error getting competition", slog.Any("error", err), slog.Uint64("competition_id", uint64(competitionID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, competition)
}

func (h *CompetitionHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuestions"))

	competitionID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	questions, err := h.service.GetQuestions(r.Context(), competitionID)
	if err != nil {
		logger.Error("Error getting competition questions", slog.Any("error", err), slog.Uint64("competition_id", uint64(competitionID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *CompetitionHandler) Join(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Join"))

	competitionID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	if err := h.service.Join(r.Context(), competitionID, userID); err != nil {
		logger.Error("Error joining competition", slog.Any("error", err),
			slog.Uint64("competition_id", uint64(competitionID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("User joined competition", slog.Uint64("competition_id", uint64(competitionID)), slog.Uint64("user_id", uint64(userID)))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Joined successfully"})
}

func (h *CompetitionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Submit"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	var req model.CompetitionSubmissionRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid submission request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	result, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error submitting answers", slog.Any("error", err),
			slog.Uint64("competition_id", uint64(req.CompetitionID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Submission graded", slog.Uint64("competition_id", uint64(req.CompetitionID)),
		slog.Uint64("user_id", uint64(userID)), slog.Int("score", result.Score))
	webutil.RespondWithJSON(w, http.StatusOK, result)
}

func (h *CompetitionHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetResult"))

	competitionID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	result, err := h.service.GetResult(r.Context(), competitionID, userID)
	if err != nil {
		logger.Error("Error getting competition result", slog.Any("error", err),
			slog.Uint64("competition_id", uint64(competitionID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}
