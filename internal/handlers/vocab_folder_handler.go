package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type VocabFolderHandler struct {
	service service.VocabFolderService
	logger  *slog.Logger
}

func NewVocabFolderHandler(s service.VocabFolderService, logger *slog.Logger) *VocabFolderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VocabFolderHandler{service: s, logger: logger}
}

func (h *VocabFolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListFolders"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	folders, err := h.service.ListFolders(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing folders", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, folders)
}

func (h *VocabFolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFolder"))

	folderID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	folder, err := h.service.GetFolder(r.Context(), folderID, userID)
	if err != nil {
		logger.Error("Error getting folder", slog.Any("error", err), slog.Uint64("folder_id", uint64(folderID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, folder)
}

func (h *VocabFolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateFolder"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	var req model.VocabularyFolderRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid folder request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	folder, err := h.service.CreateFolder(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating folder", slog.Any("error", err), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Folder created", slog.Uint64("folder_id", uint64(folder.ID)), slog.Uint64("user_id", uint64(userID)))
	webutil.RespondWithJSON(w, http.StatusCreated, folder)
}

func (h *VocabFolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateFolder"))

	folderID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	var req model.VocabularyFolderRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid folder request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	folder, err := h.service.UpdateFolder(r.Context(), folderID, userID, &req)
	if err != nil {
		logger.Error("Error updating folder", slog.Any("error", err), slog.Uint64("folder_id", uint64(folderID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, folder)
}

func (h *VocabFolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteFolder"))

	folderID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	if err := h.service.DeleteFolder(r.Context(), folderID, userID); err != nil {
		logger.Error("Error deleting folder", slog.Any("error", err), slog.Uint64("folder_id", uint64(folderID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}

func (h *VocabFolderHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AddWord"))

	folderID, err := webutil.URLParamUint(r, "folderId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	var req model.VocabularyWordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid word request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	word, err := h.service.AddWord(r.Context(), folderID, userID, &req)
	if err != nil {
		logger.Error("Error adding word", slog.Any("error", err), slog.Uint64("folder_id", uint64(folderID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, word)
}

func (h *VocabFolderHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateWord"))

	wordID, err := webutil.URLParamUint(r, "wordId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	var req model.VocabularyWordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid word request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	word, err := h.service.UpdateWord(r.Context(), wordID, userID, &req)
	if err != nil {
		logger.Error("Error updating word", slog.Any("error", err), slog.Uint64("word_id", uint64(wordID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word)
}

func (h *VocabFolderHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	wordID, err := webutil.URLParamUint(r, "wordId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	if err := h.service.DeleteWord(r.Context(), wordID, userID); err != nil {
		logger.Error("Error deleting word", slog.Any("error", err), slog.Uint64("word_id", uint64(wordID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}
