package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type AchievementHandler struct {
	service service.AchievementService
	logger  *slog.Logger
}

func NewAchievementHandler(s service.AchievementService, logger *slog.Logger) *AchievementHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementHandler{service: s, logger: logger}
}

func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListAchievements"))

	req := webutil.ParsePageRequest(r, "id")
	page, err := h.service.ListAchievements(r.Context(), req)
	if err != nil {
		logger.Error("Error listing achievements", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *AchievementHandler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserAchievements"))

	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	items, err := h.service.GetUserAchievements(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing user achievements", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, items)
}

func (h *AchievementHandler) GetUserAchievement(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserAchievement"))

	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	achievementID, err := webutil.URLParamUint(r, "achievementId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	item, err := h.service.GetUserAchievement(r.Context(), userID, achievementID)
	if err != nil {
		logger.Error("Error getting user achievement", slog.Any("error", err),
			slog.Uint64("user_id", uint64(userID)), slog.Uint64("achievement_id", uint64(achievementID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, item)
}
