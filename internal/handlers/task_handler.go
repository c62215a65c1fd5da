package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type TaskHandler struct {
	service service.TaskService
	logger  *slog.Logger
}

func NewTaskHandler(s service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{service: s, logger: logger}
}

func (h *TaskHandler) GetUserTasks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUserTasks"))

	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	tasks, err := h.service.GetUserTasks(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting user tasks", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, tasks)
}
