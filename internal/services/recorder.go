package services

import (
	"fmt"

	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"gorm.io/gorm"
)

// Recorder appends exactly one activity record per qualifying social event.
// Callers run it inside the transaction of the primary write: if the record
// is malformed the whole write rolls back, since the activity log is the only
// record of the event for feed purposes.
type Recorder struct {
	activities repositories.ActivityRepository
}

// NewRecorder creates a new Recorder
func NewRecorder(activities repositories.ActivityRepository) *Recorder {
	return &Recorder{activities: activities}
}

// WithTx returns a Recorder bound to the given transaction
func (r *Recorder) WithTx(tx *gorm.DB) *Recorder {
	return &Recorder{activities: r.activities.WithTx(tx)}
}

// Record validates and persists an activity
func (r *Recorder) Record(activity *models.Activity) error {
	if err := activity.Validate(); err != nil {
		return err
	}
	if err := r.activities.CreateActivity(activity); err != nil {
		return fmt.Errorf("failed to record %s activity: %w", activity.Kind, err)
	}
	return nil
}

// RecordComment records that actor commented on a post
func (r *Recorder) RecordComment(actorID uint, postID string, postOwnerID, commentID uint) error {
	return r.Record(models.NewCommentActivity(actorID, postID, postOwnerID, commentID))
}

// RecordLike records that actor liked a post
func (r *Recorder) RecordLike(actorID uint, postID string, postOwnerID uint) error {
	return r.Record(models.NewLikeActivity(actorID, postID, postOwnerID))
}

// RecordUpvote records that actor upvoted a comment
func (r *Recorder) RecordUpvote(actorID, commentID uint, postID string, postOwnerID uint) error {
	return r.Record(models.NewUpvoteActivity(actorID, commentID, postID, postOwnerID))
}

// RecordFollow records that actor followed another user
func (r *Recorder) RecordFollow(actorID, followedUserID uint) error {
	return r.Record(models.NewFollowActivity(actorID, followedUserID))
}
