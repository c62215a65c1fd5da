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

type TextbookHandler struct {
	service service.TextbookService
	logger  *slog.Logger
}

func NewTextbookHandler(s service.TextbookService, logger *slog.Logger) *TextbookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextbookHandler{service: s, logger: logger}
}

func (h *TextbookHandler) ListTextbooks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListTextbooks"))

	req := webutil.ParsePageRequest(r, "bookNumber")
	page, err := h.service.ListTextbooks(r.Context(), req)
	if err != nil {
		logger.Error("Error listing textbooks", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *TextbookHandler) GetTextbook(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTextbook"))

	textbookID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	textbook, err := h.service.GetTextbook(r.Context(), textbookID)
	if err != nil {
		logger.Error("Error getting textbook", slog.Any("error", err), slog.Uint64("textbook_id", uint64(textbookID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, textbook)
}

func (h *TextbookHandler) GetTextbookByBookNumber(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTextbookByBookNumber"))

	raw := chi.URLParam(r, "bookNumber")
	bookNumber, err := strconv.Atoi(raw)
	if err != nil {
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST", "Path parameter 'bookNumber' must be an integer.", "bookNumber", model.ErrInvalidInput))
		return
	}

	textbook, err := h.service.GetTextbookByBookNumber(r.Context(), bookNumber)
	if err != nil {
		logger.Error("Error getting textbook by book number", slog.Any("error", err), slog.Int("book_number", bookNumber))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, textbook)
}

func (h *TextbookHandler) CreateTextbook(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateTextbook"))

	var req model.TextbookRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid textbook request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	textbook, err := h.service.CreateTextbook(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating textbook", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Textbook created", slog.Int("book_number", textbook.BookNumber))
	webutil.RespondWithJSON(w, http.StatusCreated, textbook)
}

func (h *TextbookHandler) UpdateTextbook(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateTextbook"))

	textbookID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.TextbookRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid textbook request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	textbook, err := h.service.UpdateTextbook(r.Context(), textbookID, &req)
	if err != nil {
		logger.Error("Error updating textbook", slog.Any("error", err), slog.Uint64("textbook_id", uint64(textbookID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, textbook)
}

func (h *TextbookHandler) DeleteTextbook(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTextbook"))

	textbookID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteTextbook(r.Context(), textbookID); err != nil {
		logger.Error("Error deleting textbook", slog.Any("error", err), slog.Uint64("textbook_id", uint64(textbookID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}

func (h *TextbookHandler) GetTextbookProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTextbookProgress"))

	textbookID, err := webutil.URLParamUint(r, "textbookId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	progress, err := h.service.GetTextbookProgress(r.Context(), textbookID, userID)
	if err != nil {
		logger.Error("Error getting textbook progress", slog.Any("error", err),
			slog.Uint64("textbook_id", uint64(textbookID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress)
}
