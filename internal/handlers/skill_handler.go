package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type SkillHandler struct {
	service service.SkillService
	logger  *slog.Logger
}

func NewSkillHandler(s service.SkillService, logger *slog.Logger) *SkillHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkillHandler{service: s, logger: logger}
}

func (h *SkillHandler) GetUserSkillProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserSkillProgress"))

	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	skills, err := h.service.GetUserSkillProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting skill progress", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, skills)
}
