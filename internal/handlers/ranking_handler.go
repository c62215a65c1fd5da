package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type RankingHandler struct {
	service service.RankingService
	logger  *slog.Logger
}

func NewRankingHandler(s service.RankingService, logger *slog.Logger) *RankingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingHandler{service: s, logger: logger}
}

func (h *RankingHandler) ListRankings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListRankings"))

	req := webutil.ParsePageRequest(r, "points")
	page, err := h.service.ListRankings(r.Context(), req)
	if err != nil {
		logger.Error("Error listing rankings", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *RankingHandler) ListAllRankings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListAllRankings"))

	entries, err := h.service.ListAllRankings(r.Context())
	if err != nil {
		logger.Error("Error listing all rankings", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *RankingHandler) GetUserRanking(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserRanking"))

	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	entry, err := h.service.GetUserRanking(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting user ranking", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, entry)
}
