package model

import "time"

// BlogPost carries denormalized likes/comments/views counters maintained by
// the blog service alongside the join tables below.
type BlogPost struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:500;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	AuthorID      uint      `gorm:"not null;index" json:"authorId"`
	Skill         string    `gorm:"size:100" json:"skill"`
	Likes         int       `gorm:"not null;default:0" json:"likes"`
	Comments      int       `gorm:"not null;default:0" json:"comments"`
	Views         int       `gorm:"not null;default:0" json:"views"`
	FeaturedImage string    `gorm:"size:500" json:"featuredImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Author       *User         `gorm:"foreignKey:AuthorID" json:"-"`
	Tags         []BlogTag     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	BlogLikes    []BlogLike    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	BlogComments []BlogComment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlogPost) TableName() string { return "blog_posts" }

type BlogTag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"not null;index" json:"postId"`
	Tag    string `gorm:"size:100;not null" json:"tag"`
}

func (BlogTag) TableName() string { return "blog_tags" }

type BlogLike struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_blog_like_post_user" json:"postId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_blog_like_post_user" json:"userId"`
}

func (BlogLike) TableName() string { return "blog_likes" }

type BlogComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"createdAt"`

	User         *User             `gorm:"foreignKey:UserID" json:"-"`
	CommentLikes []BlogCommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlogComment) TableName() string { return "blog_comments" }

type BlogCommentLike struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_comment_like_comment_user" json:"commentId"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_comment_like_comment_user" json:"userId"`
}

func (BlogCommentLike) TableName() string { return "blog_comment_likes" }

type BlogPostRequest struct {
	Title         string   `json:"title" validate:"required,max=500"`
	Content       string   `json:"content" validate:"required"`
	AuthorID      uint     `json:"authorId" validate:"required"`
	Skill         string   `json:"skill" validate:"max=100"`
	FeaturedImage string   `json:"featuredImage" validate:"max=500"`
	Tags          []string `json:"tags" validate:"dive,max=100"`
}

type BlogCommentRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type BlogAuthorResponse struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Level  string `json:"level"`
}

type BlogPostResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Author        BlogAuthorResponse `json:"author"`
	Skill         string             `json:"skill"`
	Likes         int                `json:"likes"`
	Comments      int                `json:"comments"`
	Views         int                `json:"views"`
	Date          time.Time          `json:"date"`
	Tags          []string           `json:"tags"`
	IsLiked       bool               `json:"isLiked"`
	IsMyPost      bool               `json:"isMyPost"`
	FeaturedImage string             `json:"featuredImage"`
}

type BlogCommentResponse struct {
	ID      uint               `json:"id"`
	Author  BlogAuthorResponse `json:"author"`
	Content string             `json:"content"`
	Likes   int                `json:"likes"`
	Date    time.Time          `json:"date"`
	IsLiked bool               `json:"isLiked"`
}
