package repository

import (
	"context"
	"errors"
	"fmt"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"

	"gorm.io/gorm"
)

type BlogRepository interface {
	CreatePost(ctx context.Context, tx *gorm.DB, post *model.BlogPost) error
	FindPostByID(ctx context.Context, db *gorm.DB, postID uint) (*model.BlogPost, error)
	FindPostPage(ctx context.Context, db *gorm.DB, skill, search string, req model.PageRequest) ([]*model.BlogPost, int64, error)
	FindPostsByAuthor(ctx context.Context, db *gorm.DB, authorID uint) ([]*model.BlogPost, error)
	UpdatePost(ctx context.Context, tx *gorm.DB, postID uint, updates map[string]interface{}) error
	DeletePost(ctx context.Context, tx *gorm.DB, postID uint) error
	AddViews(ctx context.Context, tx *gorm.DB, postID uint, delta int) error

	ReplaceTags(ctx context.Context, tx *gorm.DB, postID uint, tags []string) error

	FindLike(ctx context.Context, db *gorm.DB, postID, userID uint) (*model.BlogLike, error)
	CreateLike(ctx context.Context, tx *gorm.DB, like *model.BlogLike) error
	DeleteLike(ctx context.Context, tx *gorm.DB, postID, userID uint) error
	LikedPostIDs(ctx context.Context, db *gorm.DB, userID uint, postIDs []uint) (map[uint]bool, error)

	CreateComment(ctx context.Context, tx *gorm.DB, comment *model.BlogComment) error
	FindCommentByID(ctx context.Context, db *gorm.DB, commentID uint) (*model.BlogComment, error)
	FindCommentsByPost(ctx context.Context, db *gorm.DB, postID uint) ([]*model.BlogComment, error)
	DeleteComment(ctx context.Context, tx *gorm.DB, commentID uint) error

	FindCommentLike(ctx context.Context, db *gorm.DB, commentID, userID uint) (*model.BlogCommentLike, error)
	CreateCommentLike(ctx context.Context, tx *gorm.DB, like *model.BlogCommentLike) error
	DeleteCommentLike(ctx context.Context, tx *gorm.DB, commentID, userID uint) error
	LikedCommentIDs(ctx context.Context, db *gorm.DB, userID uint, commentIDs []uint) (map[uint]bool, error)

	SetPostCounter(ctx context.Context, tx *gorm.DB, postID uint, column string, value int) error
	SetCommentLikes(ctx context.Context, tx *gorm.DB, commentID uint, value int) error
}

var blogSortColumns = map[string]string{
	"id":        "id",
	"date":      "created_at",
	"createdAt": "created_at",
	"likes":     "likes",
	"views":     "views",
	"comments":  "comments",
}

type gormBlogRepository struct{}

func NewGormBlogRepository() BlogRepository {
	return &gormBlogRepository{}
}

func (r *gormBlogRepository) CreatePost(ctx context.Context, tx *gorm.DB, post *model.BlogPost) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(post)
	if result.Error != nil {
		logger.Error("Error creating blog post in DB", "error", result.Error, "author_id", post.AuthorID)
		return fmt.Errorf("gormBlogRepository.CreatePost: %w", result.Error)
	}
	return nil
}

func (r *gormBlogRepository) FindPostByID(ctx context.Context, db *gorm.DB, postID uint) (*model.BlogPost, error) {
	var post model.BlogPost
	result := db.WithContext(ctx).Preload("Author").Preload("Tags").First(&post, postID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBlogRepository.FindPostByID: %w", result.Error)
	}
	return &post, nil
}

func (r *gormBlogRepository) FindPostPage(ctx context.Context, db *gorm.DB, skill, search string, req model.PageRequest) ([]*model.BlogPost, int64, error) {
	query := db.WithContext(ctx).Model(&model.BlogPost{})
	if skill != "" {
		query = query.Where("skill = ?", skill)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormBlogRepository.FindPostPage count: %w", err)
	}

	var posts []*model.BlogPost
	err := query.
		Preload("Author").
		Preload("Tags").
		Order(req.OrderClause(blogSortColumns, "created_at DESC")).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormBlogRepository.FindPostPage: %w", err)
	}
	return posts, total, nil
}

func (r *gormBlogRepository) FindPostsByAuthor(ctx context.Context, db *gorm.DB, authorID uint) ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	result := db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts)
	if result.Error != nil {
		return nil, fmt.Errorf("gormBlogRepository.FindPostsByAuthor: %w", result.Error)
	}
	return posts, nil
}

func (r *gormBlogRepository) UpdatePost(ctx context.Context, tx *gorm.DB, postID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.BlogPost{}).Where("id = ?", postID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.UpdatePost: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormBlogRepository) DeletePost(ctx context.Context, tx *gorm.DB, postID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.BlogPost{}, postID)
	if result.Error != nil {
		logger.Error("Error deleting blog post in DB", "error", result.Error, "post_id", postID)
		return fmt.Errorf("gormBlogRepository.DeletePost: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormBlogRepository) AddViews(ctx context.Context, tx *gorm.DB, postID uint, delta int) error {
	result := tx.WithContext(ctx).Model(&model.BlogPost{}).Where("id = ?", postID).
		Update("views", gorm.Expr("views + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.AddViews: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormBlogRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, postID uint, tags []string) error {
	if err := tx.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.BlogTag{}).Error; err != nil {
		return fmt.Errorf("gormBlogRepository.ReplaceTags delete: %w", err)
	}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if err := tx.WithContext(ctx).Create(&model.BlogTag{PostID: postID, Tag: tag}).Error; err != nil {
			return fmt.Errorf("gormBlogRepository.ReplaceTags create: %w", err)
		}
	}
	return nil
}

func (r *gormBlogRepository) FindLike(ctx context.Context, db *gorm.DB, postID, userID uint) (*model.BlogLike, error) {
	var like model.BlogLike
	result := db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBlogRepository.FindLike: %w", result.Error)
	}
	return &like, nil
}

func (r *gormBlogRepository) CreateLike(ctx context.Context, tx *gorm.DB, like *model.BlogLike) error {
	result := tx.WithContext(ctx).Create(like)
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.CreateLike: %w", result.Error)
	}
	return nil
}

func (r *gormBlogRepository) DeleteLike(ctx context.Context, tx *gorm.DB, postID, userID uint) error {
	result := tx.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.BlogLike{})
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.DeleteLike: %w", result.Error)
	}
	return nil
}

func (r *gormBlogRepository) LikedPostIDs(ctx context.Context, db *gorm.DB, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(postIDs) == 0 {
		return liked, nil
	}
	var likes []model.BlogLike
	result := db.WithContext(ctx).Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&likes)
	if result.Error != nil {
		return nil, fmt.Errorf("gormBlogRepository.LikedPostIDs: %w", result.Error)
	}
	for _, l := range likes {
		liked[l.PostID] = true
	}
	return liked, nil
}

func (r *gormBlogRepository) CreateComment(ctx context.Context, tx *gorm.DB, comment *model.BlogComment) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(comment)
	if result.Error != nil {
		logger.Error("Error creating blog comment in DB", "error", result.Error, "post_id", comment.PostID)
		return fmt.Errorf("gormBlogRepository.CreateComment: %w", result.Error)
	}
	return nil
}

func (r *gormBlogRepository) FindCommentByID(ctx context.Context, db *gorm.DB, commentID uint) (*model.BlogComment, error) {
	var comment model.BlogComment
	result := db.WithContext(ctx).Preload("User").First(&comment, commentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBlogRepository.FindCommentByID: %w", result.Error)
	}
	return &comment, nil
}

func (r *gormBlogRepository) FindCommentsByPost(ctx context.Context, db *gorm.DB, postID uint) ([]*model.BlogComment, error) {
	var comments []*model.BlogComment
	result := db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormBlogRepository.FindCommentsByPost: %w", result.Error)
	}
	return comments, nil
}

func (r *gormBlogRepository) DeleteComment(ctx context.Context, tx *gorm.DB, commentID uint) error {
	result := tx.WithContext(ctx).Delete(&model.BlogComment{}, commentID)
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.DeleteComment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormBlogRepository) FindCommentLike(ctx context.Context, db *gorm.DB, commentID, userID uint) (*model.BlogCommentLike, error) {
	var like model.BlogCommentLike
	result := db.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBlogRepository.FindCommentLike: %w", result.Error)
	}
	return &like, nil
}

func (r *gormBlogRepository) CreateCommentLike(ctx context.Context, tx *gorm.DB, like *model.BlogCommentLike) error {
	result := tx.WithContext(ctx).Create(like)
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.CreateCommentLike: %w", result.Error)
	}
	return nil
}

func (r *gormBlogRepository) DeleteCommentLike(ctx context.Context, tx *gorm.DB, commentID, userID uint) error {
	result := tx.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&model.BlogCommentLike{})
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.DeleteCommentLike: %w", result.Error)
	}
	return nil
}

func (r *gormBlogRepository) LikedCommentIDs(ctx context.Context, db *gorm.DB, userID uint, commentIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(commentIDs) == 0 {
		return liked, nil
	}
	var likes []model.BlogCommentLike
	result := db.WithContext(ctx).Where("user_id = ? AND comment_id IN ?", userID, commentIDs).Find(&likes)
	if result.Error != nil {
		return nil, fmt.Errorf("gormBlogRepository.LikedCommentIDs: %w", result.Error)
	}
	for _, l := range likes {
		liked[l.CommentID] = true
	}
	return liked, nil
}

func (r *gormBlogRepository) SetPostCounter(ctx context.Context, tx *gorm.DB, postID uint, column string, value int) error {
	result := tx.WithContext(ctx).Model(&model.BlogPost{}).Where("id = ?", postID).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.SetPostCounter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormBlogRepository) SetCommentLikes(ctx context.Context, tx *gorm.DB, commentID uint, value int) error {
	result := tx.WithContext(ctx).Model(&model.BlogComment{}).Where("id = ?", commentID).Update("likes", value)
	if result.Error != nil {
		return fmt.Errorf("gormBlogRepository.SetCommentLikes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
