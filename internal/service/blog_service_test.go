package service

import (
	"context"
	"testing"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBlogService(t *testing.T) (BlogService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewBlogService(db, repository.NewGormBlogRepository(), repository.NewGormUserRepository())
	return svc, db
}

func TestBlogService_CreatePost(t *testing.T) {
	ctx := context.Background()
	svc, db := newBlogService(t)
	author := createTestUser(t, db, "author@example.com", 0)

	post, err := svc.CreatePost(ctx, &model.BlogPostRequest{
		Title:    "Mẹo học tiếng Hàn",
		Content:  "Nội dung bài viết",
		AuthorID: author.ID,
		Skill:    "Đọc",
		Tags:     []string{"tips", "beginner"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mẹo học tiếng Hàn", post.Title)
	assert.ElementsMatch(t, []string{"tips", "beginner"}, post.Tags)
	assert.Equal(t, author.Name, post.Author.Name)

	_, err = svc.CreatePost(ctx, &model.BlogPostRequest{
		Title: "x", Content: "y", AuthorID: 9999,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBlogService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	svc, db := newBlogService(t)
	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)

	created, err := svc.CreatePost(ctx, &model.BlogPostRequest{
		Title: "Bài viết", Content: "...", AuthorID: author.ID,
	})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, created.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 1, liked.Likes)

	unliked, err := svc.ToggleLike(ctx, created.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, 0, unliked.Likes)

	var count int64
	require.NoError(t, db.Model(&model.BlogLike{}).Where("post_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestBlogService_GetPost_IncrementsViews(t *testing.T) {
	ctx := context.Background()
	svc, db := newBlogService(t)
	author := createTestUser(t, db, "author@example.com", 0)

	created, err := svc.CreatePost(ctx, &model.BlogPostRequest{
		Title: "Bài viết", Content: "...", AuthorID: author.ID,
	})
	require.NoError(t, err)

	first, err := svc.GetPost(ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Views)

	second, err := svc.GetPost(ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Views)
}

func TestBlogService_Comments(t *testing.T) {
	ctx := context.Background()
	svc, db := newBlogService(t)
	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)

	created, err := svc.CreatePost(ctx, &model.BlogPostRequest{
		Title: "Bài viết", Content: "...", AuthorID: author.ID,
	})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, created.ID, &model.BlogCommentRequest{
		UserID: reader.ID, Content: "Hay quá!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hay quá!", comment.Content)

	post, err := svc.GetPost(ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Comments)

	likedComment, err := svc.ToggleCommentLike(ctx, comment.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, likedComment.IsLiked)
	assert.Equal(t, 1, likedComment.Likes)

	comments, err := svc.ListComments(ctx, created.ID, reader.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsLiked)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID))
	post, err = svc.GetPost(ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Comments)
}

func TestBlogService_ListPosts_Overlay(t *testing.T) {
	ctx := context.Background()
	svc, db := newBlogService(t)
	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)

	first, err := svc.CreatePost(ctx, &model.BlogPostRequest{Title: "one", Content: "...", AuthorID: author.ID})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &model.BlogPostRequest{Title: "two", Content: "...", AuthorID: author.ID})
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, first.ID, reader.ID)
	require.NoError(t, err)

	page, err := svc.ListPosts(ctx, reader.ID, "", "", model.PageRequest{Page: 0, Size: 10, Direction: "DESC"})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)

	likedByID := map[uint]bool{}
	for _, p := range page.Content {
		likedByID[p.ID] = p.IsLiked
		assert.False(t, p.IsMyPost)
	}
	assert.True(t, likedByID[first.ID])
}
