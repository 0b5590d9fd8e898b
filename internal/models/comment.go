package models

import "gorm.io/gorm"

// Comment represents a comment on a post
type Comment struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index"` // ID of the post the comment belongs to (MongoDB ObjectID as string)
	UserID uint   `json:"user_id" gorm:"index"` // ID of the user who made the comment
	Text   string `json:"text" validate:"required,min=1,max=1000"`
}

// CommentWithCount is a comment annotated with its upvote count for list responses
type CommentWithCount struct {
	Comment
	UpvoteCount int64       `json:"upvote_count"`
	Author      UserCompact `json:"author" gorm:"-"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
