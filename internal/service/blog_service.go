package service

import (
	"context"
	"errors"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type BlogService interface {
	ListPosts(ctx context.Context, viewerID uint, skill, search string, req model.PageRequest) (*model.PageResponse[model.BlogPostResponse], error)
	GetPost(ctx context.Context, postID, viewerID uint) (*model.BlogPostResponse, error)
	ListPostsByAuthor(ctx context.Context, authorID, viewerID uint) ([]model.BlogPostResponse, error)
	CreatePost(ctx context.Context, req *model.BlogPostRequest) (*model.BlogPostResponse, error)
	UpdatePost(ctx context.Context, postID uint, req *model.BlogPostRequest) (*model.BlogPostResponse, error)
	DeletePost(ctx context.Context, postID uint) error
	ToggleLike(ctx context.Context, postID, userID uint) (*model.BlogPostResponse, error)

	ListComments(ctx context.Context, postID, viewerID uint) ([]model.BlogCommentResponse, error)
	CreateComment(ctx context.Context, postID uint, req *model.BlogCommentRequest) (*model.BlogCommentResponse, error)
	DeleteComment(ctx context.Context, commentID uint) error
	ToggleCommentLike(ctx context.Context, commentID, userID uint) (*model.BlogCommentResponse, error)
}

type blogService struct {
	db       *gorm.DB
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

func NewBlogService(db *gorm.DB, blogRepo repository.BlogRepository, userRepo repository.UserRepository) BlogService {
	return &blogService{db: db, blogRepo: blogRepo, userRepo: userRepo}
}

func (s *blogService) ListPosts(ctx context.Context, viewerID uint, skill, search string, req model.PageRequest) (*model.PageResponse[model.BlogPostResponse], error) {
	logger := middleware.GetLogger(ctx)

	posts, total, err := s.blogRepo.FindPostPage(ctx, s.db, skill, search, req)
	if err != nil {
		logger.Error("Error listing blog posts", "error", err)
		return nil, model.ErrInternalServer
	}

	liked, err := s.likedPosts(ctx, viewerID, posts)
	if err != nil {
		logger.Error("Error loading blog likes", "error", err)
		return nil, model.ErrInternalServer
	}

	content := make([]model.BlogPostResponse, 0, len(posts))
	for _, post := range posts {
		content = append(content, newBlogPostResponse(post, liked[post.ID], viewerID))
	}
	page := model.NewPageResponse(content, req, total)
	return &page, nil
}

// GetPost counts the read as a view before returning the post.
func (s *blogService) GetPost(ctx context.Context, postID, viewerID uint) (*model.BlogPostResponse, error) {
	var post *model.BlogPost

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.blogRepo.AddViews(ctx, tx, postID, 1); err != nil {
			return err
		}
		var err error
		post, err = s.blogRepo.FindPostByID(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	liked, err := s.likedPosts(ctx, viewerID, []*model.BlogPost{post})
	if err != nil {
		return nil, model.ErrInternalServer
	}
	resp := newBlogPostResponse(post, liked[post.ID], viewerID)
	return &resp, nil
}

func (s *blogService) ListPostsByAuthor(ctx context.Context, authorID, viewerID uint) ([]model.BlogPostResponse, error) {
	logger := middleware.GetLogger(ctx)

	posts, err := s.blogRepo.FindPostsByAuthor(ctx, s.db, authorID)
	if err != nil {
		logger.Error("Error listing posts by author", "error", err, "author_id", authorID)
		return nil, model.ErrInternalServer
	}

	liked, err := s.likedPosts(ctx, viewerID, posts)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	responses := make([]model.BlogPostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newBlogPostResponse(post, liked[post.ID], viewerID))
	}
	return responses, nil
}

func (s *blogService) CreatePost(ctx context.Context, req *model.BlogPostRequest) (*model.BlogPostResponse, error) {
	var created *model.BlogPost

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(ctx, tx, req.AuthorID); err != nil {
			return err
		}

		post := &model.BlogPost{
			Title:         req.Title,
			Content:       req.Content,
			AuthorID:      req.AuthorID,
			Skill:         req.Skill,
			FeaturedImage: req.FeaturedImage,
		}
		if err := s.blogRepo.CreatePost(ctx, tx, post); err != nil {
			return err
		}
		if err := s.blogRepo.ReplaceTags(ctx, tx, post.ID, req.Tags); err != nil {
			return err
		}

		var err error
		created, err = s.blogRepo.FindPostByID(ctx, tx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newBlogPostResponse(created, false, req.AuthorID)
	return &resp, nil
}

func (s *blogService) UpdatePost(ctx context.Context, postID uint, req *model.BlogPostRequest) (*model.BlogPostResponse, error) {
	var updated *model.BlogPost

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.blogRepo.FindPostByID(ctx, tx, postID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":          req.Title,
			"content":        req.Content,
			"skill":          req.Skill,
			"featured_image": req.FeaturedImage,
		}
		if err := s.blogRepo.UpdatePost(ctx, tx, postID, updates); err != nil {
			return err
		}
		if err := s.blogRepo.ReplaceTags(ctx, tx, postID, req.Tags); err != nil {
			return err
		}

		var err error
		updated, err = s.blogRepo.FindPostByID(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newBlogPostResponse(updated, false, 0)
	return &resp, nil
}

func (s *blogService) DeletePost(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.blogRepo.DeletePost(ctx, tx, postID)
	})
}

// ToggleLike flips the user's like and keeps the denormalized counter in sync.
func (s *blogService) ToggleLike(ctx context.Context, postID, userID uint) (*model.BlogPostResponse, error) {
	var (
		post    *model.BlogPost
		isLiked bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.blogRepo.FindPostByID(ctx, tx, postID)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		likes := current.Likes
		_, err = s.blogRepo.FindLike(ctx, tx, postID, userID)
		switch {
		case err == nil:
			if err := s.blogRepo.DeleteLike(ctx, tx, postID, userID); err != nil {
				return err
			}
			if likes > 0 {
				likes--
			}
			isLiked = false
		case errors.Is(err, model.ErrNotFound):
			if err := s.blogRepo.CreateLike(ctx, tx, &model.BlogLike{PostID: postID, UserID: userID}); err != nil {
				return err
			}
			likes++
			isLiked = true
		default:
			return err
		}

		if err := s.blogRepo.SetPostCounter(ctx, tx, postID, "likes", likes); err != nil {
			return err
		}
		post, err = s.blogRepo.FindPostByID(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newBlogPostResponse(post, isLiked, userID)
	return &resp, nil
}

func (s *blogService) ListComments(ctx context.Context, postID, viewerID uint) ([]model.BlogCommentResponse, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.blogRepo.FindPostByID(ctx, s.db, postID); err != nil {
		return nil, err
	}

	comments, err := s.blogRepo.FindCommentsByPost(ctx, s.db, postID)
	if err != nil {
		logger.Error("Error listing comments", "error", err, "post_id", postID)
		return nil, model.ErrInternalServer
	}

	liked := make(map[uint]bool)
	if viewerID != 0 && len(comments) > 0 {
		ids := make([]uint, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		liked, err = s.blogRepo.LikedCommentIDs(ctx, s.db, viewerID, ids)
		if err != nil {
			logger.Error("Error loading comment likes", "error", err)
			return nil, model.ErrInternalServer
		}
	}

	responses := make([]model.BlogCommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newBlogCommentResponse(comment, liked[comment.ID]))
	}
	return responses, nil
}

func (s *blogService) CreateComment(ctx context.Context, postID uint, req *model.BlogCommentRequest) (*model.BlogCommentResponse, error) {
	var created *model.BlogComment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.blogRepo.FindPostByID(ctx, tx, postID)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, req.UserID); err != nil {
			return err
		}

		comment := &model.BlogComment{
			PostID:  postID,
			UserID:  req.UserID,
			Content: req.Content,
		}
		if err := s.blogRepo.CreateComment(ctx, tx, comment); err != nil {
			return err
		}
		if err := s.blogRepo.SetPostCounter(ctx, tx, postID, "comments", post.Comments+1); err != nil {
			return err
		}

		created, err = s.blogRepo.FindCommentByID(ctx, tx, comment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newBlogCommentResponse(created, false)
	return &resp, nil
}

func (s *blogService) DeleteComment(ctx context.Context, commentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := s.blogRepo.FindCommentByID(ctx, tx, commentID)
		if err != nil {
			return err
		}
		post, err := s.blogRepo.FindPostByID(ctx, tx, comment.PostID)
		if err != nil {
			return err
		}

		if err := s.blogRepo.DeleteComment(ctx, tx, commentID); err != nil {
			return err
		}
		comments := post.Comments - 1
		if comments < 0 {
			comments = 0
		}
		return s.blogRepo.SetPostCounter(ctx, tx, post.ID, "comments", comments)
	})
}

func (s *blogService) ToggleCommentLike(ctx context.Context, commentID, userID uint) (*model.BlogCommentResponse, error) {
	var (
		comment *model.BlogComment
		isLiked bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.blogRepo.FindCommentByID(ctx, tx, commentID)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.FindByID(ctx, tx, userID); err != nil {
			return err
		}

		likes := current.Likes
		_, err = s.blogRepo.FindCommentLike(ctx, tx, commentID, userID)
		switch {
		case err == nil:
			if err := s.blogRepo.DeleteCommentLike(ctx, tx, commentID, userID); err != nil {
				return err
			}
			if likes > 0 {
				likes--
			}
			isLiked = false
		case errors.Is(err, model.ErrNotFound):
			if err := s.blogRepo.CreateCommentLike(ctx, tx, &model.BlogCommentLike{CommentID: commentID, UserID: userID}); err != nil {
				return err
			}
			likes++
			isLiked = true
		default:
			return err
		}

		if err := s.blogRepo.SetCommentLikes(ctx, tx, commentID, likes); err != nil {
			return err
		}
		comment, err = s.blogRepo.FindCommentByID(ctx, tx, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := newBlogCommentResponse(comment, isLiked)
	return &resp, nil
}

func (s *blogService) likedPosts(ctx context.Context, viewerID uint, posts []*model.BlogPost) (map[uint]bool, error) {
	if viewerID == 0 || len(posts) == 0 {
		return map[uint]bool{}, nil
	}
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return s.blogRepo.LikedPostIDs(ctx, s.db, viewerID, ids)
}

func newBlogPostResponse(post *model.BlogPost, isLiked bool, viewerID uint) model.BlogPostResponse {
	var author model.BlogAuthorResponse
	if post.Author != nil {
		author = model.BlogAuthorResponse{
			Name:   post.Author.Name,
			Avatar: post.Author.Avatar,
			Level:  post.Author.Level,
		}
	}
	tags := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tags = append(tags, t.Tag)
	}
	return model.BlogPostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Author:        author,
		Skill:         post.Skill,
		Likes:         post.Likes,
		Comments:      post.Comments,
		Views:         post.Views,
		Date:          post.CreatedAt,
		Tags:          tags,
		IsLiked:       isLiked,
		IsMyPost:      viewerID != 0 && post.AuthorID == viewerID,
		FeaturedImage: post.FeaturedImage,
	}
}

func newBlogCommentResponse(comment *model.BlogComment, isLiked bool) model.BlogCommentResponse {
	var author model.BlogAuthorResponse
	if comment.User != nil {
		author = model.BlogAuthorResponse{
			Name:   comment.User.Name,
			Avatar: comment.User.Avatar,
			Level:  comment.User.Level,
		}
	}
	return model.BlogCommentResponse{
		ID:      comment.ID,
		Author:  author,
		Content: comment.Content,
		Likes:   comment.Likes,
		Date:    comment.CreatedAt,
		IsLiked: isLiked,
	}
}
