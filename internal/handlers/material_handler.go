package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type MaterialHandler struct {
	service service.MaterialService
	logger  *slog.Logger
}

func NewMaterialHandler(s service.MaterialService, logger *slog.Logger) *MaterialHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MaterialHandler{service: s, logger: logger}
}

func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListMaterials"))

	userID, _ := webutil.QueryUint(r, "userId")
	req := webutil.ParsePageRequest(r, "id")

	page, err := h.service.ListMaterials(r.Context(), userID, repository.MaterialFilter{}, req)
	if err != nil {
		logger.Error("Error listing materials", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *MaterialHandler) FilterMaterials(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "FilterMaterials"))

	q := r.URL.Query()
	userID, _ := webutil.QueryUint(r, "userId")
	filter := repository.MaterialFilter{
		Level:  q.Get("level"),
		Skill:  q.Get("skill"),
		Type:   q.Get("type"),
		Search: q.Get("search"),
	}
	req := webutil.ParsePageRequest(r, "id")

	page, err := h.service.ListMaterials(r.Context(), userID, filter, req)
	if err != nil {
		logger.Error("Error filtering materials", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMaterial"))

	materialID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, _ := webutil.QueryUint(r, "userId")

	material, err := h.service.GetMaterial(r.Context(), materialID, userID)
	if err != nil {
		logger.Error("Error getting material", slog.Any("error", err), slog.Uint64("material_id", uint64(materialID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListFeatured"))

	userID, _ := webutil.QueryUint(r, "userId")
	req := webutil.ParsePageRequest(r, "id")

	page, err := h.service.ListFeatured(r.Context(), userID, req)
	if err != nil {
		logger.Error("Error listing featured materials", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *MaterialHandler) Download(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Download"))

	materialID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
		return
	}

	material, err := h.service.Download(r.Context(), materialID, userID)
	if err != nil {
		logger.Error("Error downloading material", slog.Any("error", err),
			slog.Uint64("material_id", uint64(materialID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Material downloaded", slog.Uint64("material_id", uint64(materialID)), slog.Uint64("user_id", uint64(userID)))
	webutil.RespondWithJSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) TotalCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalCount(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]int64{"count": total})
}

func (h *MaterialHandler) TotalDownloads(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalDownloads(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]int64{"count": total})
}

func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateMaterial"))

	var req model.MaterialRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid material request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	material, err := h.service.CreateMaterial(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating material", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Material created", slog.Uint64("material_id", uint64(material.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, material)
}

func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateMaterial"))

	materialID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.MaterialRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid material request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	material, err := h.service.UpdateMaterial(r.Context(), materialID, &req)
	if err != nil {
		logger.Error("Error updating material", slog.Any("error", err), slog.Uint64("material_id", uint64(materialID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteMaterial"))

	materialID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteMaterial(r.Context(), materialID); err != nil {
		logger.Error("Error deleting material", slog.Any("error", err), slog.Uint64("material_id", uint64(materialID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}
