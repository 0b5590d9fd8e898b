package models

import "time"

// CommentUpvote represents a single user's upvote on a comment.
// The composite unique index makes duplicate upvotes impossible at the store level.
type CommentUpvote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_upvote"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_upvote"`
	CreatedAt time.Time `json:"created_at"`
}
