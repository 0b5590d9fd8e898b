package models

import (
	"errors"
	"fmt"
	"time"
)

// ActivityKind enumerates the social events the activity log records
type ActivityKind string

const (
	ActivityComment ActivityKind = "comment"
	ActivityLike    ActivityKind = "like"
	ActivityUpvote  ActivityKind = "upvote"
	ActivityFollow  ActivityKind = "follow"
)

// ErrInvalidActivity is returned when an activity is missing the references
// its kind requires. The write that produced it must be rolled back.
var ErrInvalidActivity = errors.New("invalid activity")

// Activity is an append-only log entry for one social event. Rows are never
// edited after creation except for the Active flag, and never deleted.
type Activity struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	UserID         uint         `json:"user_id" gorm:"index"` // acting user
	Kind           ActivityKind `json:"kind" gorm:"size:20;index"`
	PostID         *string      `json:"post_id,omitempty" gorm:"index"` // MongoDB ObjectID as string
	PostOwnerID    *uint        `json:"post_owner_id,omitempty" gorm:"index"`
	CommentID      *uint        `json:"comment_id,omitempty" gorm:"index"`
	FollowedUserID *uint        `json:"followed_user_id,omitempty" gorm:"index"`
	Active         bool         `json:"active" gorm:"default:true;index"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"index"`
}

// NewCommentActivity records that actor commented on a post
func NewCommentActivity(actorID uint, postID string, postOwnerID, commentID uint) *Activity {
	return &Activity{
		UserID:      actorID,
		Kind:        ActivityComment,
		PostID:      &postID,
		PostOwnerID: &postOwnerID,
		CommentID:   &commentID,
		Active:      true,
	}
}

// NewLikeActivity records that actor liked a post
func NewLikeActivity(actorID uint, postID string, postOwnerID uint) *Activity {
	return &Activity{
		UserID:      actorID,
		Kind:        ActivityLike,
		PostID:      &postID,
		PostOwnerID: &postOwnerID,
		Active:      true,
	}
}

// NewUpvoteActivity records that actor upvoted a comment
func NewUpvoteActivity(actorID, commentID uint, postID string, postOwnerID uint) *Activity {
	return &Activity{
		UserID:      actorID,
		Kind:        ActivityUpvote,
		PostID:      &postID,
		PostOwnerID: &postOwnerID,
		CommentID:   &commentID,
		Active:      true,
	}
}

// NewFollowActivity records that actor followed another user
func NewFollowActivity(actorID, followedUserID uint) *Activity {
	return &Activity{
		UserID:         actorID,
		Kind:           ActivityFollow,
		FollowedUserID: &followedUserID,
		Active:         true,
	}
}

// Validate enforces the per-kind required references:
// comment needs post and comment, like needs post, upvote needs comment,
// follow needs the followed user.
func (a *Activity) Validate() error {
	if a.UserID == 0 {
		return fmt.Errorf("%w: missing acting user", ErrInvalidActivity)
	}

	switch a.Kind {
	case ActivityComment:
		if a.PostID == nil || *a.PostID == "" || a.CommentID == nil {
			return fmt.Errorf("%w: %s requires post and comment references", ErrInvalidActivity, a.Kind)
		}
	case ActivityLike:
		if a.PostID == nil || *a.PostID == "" {
			return fmt.Errorf("%w: %s requires a post reference", ErrInvalidActivity, a.Kind)
		}
	case ActivityUpvote:
		if a.CommentID == nil {
			return fmt.Errorf("%w: %s requires a comment reference", ErrInvalidActivity, a.Kind)
		}
	case ActivityFollow:
		if a.FollowedUserID == nil {
			return fmt.Errorf("%w: %s requires a followed-user reference", ErrInvalidActivity, a.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidActivity, a.Kind)
	}

	return nil
}

// Feed beacons identify which aggregation source produced a feed item
const (
	BeaconLike        = "like"
	BeaconUpvote      = "upvote"
	BeaconComment     = "comment"
	BeaconLikeComment = "like_comment"
)

// FeedItem is an activity decorated for the feed response. The beacon is a
// read-time label only and is never persisted.
type FeedItem struct {
	Activity
	Beacon string      `json:"beacon" gorm:"-"`
	Actor  UserCompact `json:"actor" gorm:"-"`
}
