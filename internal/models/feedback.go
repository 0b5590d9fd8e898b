package models

import "time"

// Feedback is the post owner's verdict on a comment, one per comment.
// Only the owner of the comment's post may author it.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Helpful   bool      `json:"helpful"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFeedbackRequest defines the request body for leaving feedback on a comment
type CreateFeedbackRequest struct {
	Helpful bool   `json:"helpful"`
	Text    string `json:"text,omitempty" validate:"omitempty,max=1000"`
}
