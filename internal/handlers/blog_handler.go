package handlers

import (
	"log/slog"
	"net/http"

	"hangulhub/internal/model"
	"hangulhub/internal/service"
	"hangulhub/internal/webutil"
)

type BlogHandler struct {
	service service.BlogService
	logger  *slog.Logger
}

func NewBlogHandler(s service.BlogService, logger *slog.Logger) *BlogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogHandler{service: s, logger: logger}
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListPosts"))

	viewerID, _ := webutil.QueryUint(r, "userId")
	skill := r.URL.Query().Get("skill")
	search := r.URL.Query().Get("search")
	req := webutil.ParsePageRequest(r, "createdAt")
	if r.URL.Query().Get("direction") == "" {
		req.Direction = "DESC"
	}

	page, err := h.service.ListPosts(r.Context(), viewerID, skill, search, req)
	if err != nil {
		logger.Error("Error listing blog posts", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPost"))

	postID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	viewerID, _ := webutil.QueryUint(r, "userId")

	post, err := h.service.GetPost(r.Context(), postID, viewerID)
	if err != nil {
		logger.Error("Error getting blog post", slog.Any("error", err), slog.Uint64("post_id", uint64(postID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) ListPostsByAuthor(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListPostsByAuthor"))

	authorID, err := webutil.URLParamUint(r, "authorId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	viewerID, _ := webutil.QueryUint(r, "userId")

	posts, err := h.service.ListPostsByAuthor(r.Context(), authorID, viewerID)
	if err != nil {
		logger.Error("Error listing posts by author", slog.Any("error", err), slog.Uint64("author_id", uint64(authorID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreatePost"))

	var req model.BlogPostRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid blog post request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating blog post", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Blog post created", slog.Uint64("post_id", uint64(post.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, post)
}

func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdatePost"))

	postID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.BlogPostRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid blog post request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), postID, &req)
	if err != nil {
		logger.Error("Error updating blog post", slog.Any("error", err), slog.Uint64("post_id", uint64(postID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeletePost"))

	postID, err := webutil.URLParamUint(r, "id")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeletePost(r.Context(), postID); err != nil {
		logger.Error("Error deleting blog post", slog.Any("error", err), slog.Uint64("post_id", uint64(postID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}

func (h *BlogHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleLike"))

	postID, err := webutil.URLParamUint(r, "postId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	post, err := h.service.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		logger.Error("Error toggling like", slog.Any("error", err),
			slog.Uint64("post_id", uint64(postID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListComments"))

	postID, err := webutil.URLParamUint(r, "postId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	viewerID, _ := webutil.QueryUint(r, "userId")

	comments, err := h.service.ListComments(r.Context(), postID, viewerID)
	if err != nil {
		logger.Error("Error listing comments", slog.Any("error", err), slog.Uint64("post_id", uint64(postID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *BlogHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateComment"))

	postID, err := webutil.URLParamUint(r, "postId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.BlogCommentRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid comment request", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), postID, &req)
	if err != nil {
		logger.Error("Error creating comment", slog.Any("error", err), slog.Uint64("post_id", uint64(postID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, comment)
}

func (h *BlogHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteComment"))

	commentID, err := webutil.URLParamUint(r, "commentId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID); err != nil {
		logger.Error("Error deleting comment", slog.Any("error", err), slog.Uint64("comment_id", uint64(commentID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondNoContent(w)
}

func (h *BlogHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleCommentLike"))

	commentID, err := webutil.URLParamUint(r, "commentId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	userID, err := webutil.URLParamUint(r, "userId")
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	comment, err := h.service.ToggleCommentLike(r.Context(), commentID, userID)
	if err != nil {
		logger.Error("Error toggling comment like", slog.Any("error", err),
			slog.Uint64("comment_id", uint64(commentID)), slog.Uint64("user_id", uint64(userID)))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, comment)
}
