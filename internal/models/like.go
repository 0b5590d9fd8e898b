package models

import "time"

// Like represents a like on a post. PostOwnerID is captured at write time so
// feed queries over likes never have to reach into the post store.
type Like struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"` // MongoDB ObjectID as string
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	PostOwnerID uint      `json:"post_owner_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}
