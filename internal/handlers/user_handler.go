package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{service: s, logger: logger}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUser"))

	userID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting user", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateUser"))

	userID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.UpdateUserRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update user request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error updating user", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UploadAvatar"))

	userID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		logger.Warn("Invalid multipart form", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST", "Request must be multipart form data.", "", model.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST", "Form field 'avatar' is required.", "avatar", model.ErrInvalidInput))
		return
	}
	defer file.Close()

	user, err := h.service.UploadAvatar(r.Context(), userID, header.Filename, file)
	if err != nil {
		logger.Error("Error uploading avatar", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Avatar uploaded", slog.Uint64("user_id", uint64(userID)))
	webutil.RespondWithJSON(w, http.StatusOK, user)
}
