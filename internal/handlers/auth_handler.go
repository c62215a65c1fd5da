package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: s, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Register"))

	var req model.RegisterRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid register request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		logger.Warn("Register failed", slog.Any("error", err), slog.String("email", req.Email))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("User registered", slog.Uint64("user_id", uint64(resp.User.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid login request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		logger.Warn("Login failed", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Refresh"))

	var req model.RefreshTokenRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid refresh request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	resp, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		logger.Warn("Token refresh failed", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Me"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		logger.Error("Error loading current user", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user)
}

// Logout never fails: the caller's token is parsed best-effort for the log
// line, and an anonymous or expired-token request still gets 204.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		if err := h.service.Logout(r.Context(), userID); err != nil {
			h.logger.Warn("Error during logout", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		}
	}
	webutil.RespondNoContent(w)
}
