package repositories

import (
	"github.com/petcircle/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository is the append-only store of social events and the query
// surface the feed aggregator reads from. Rows are soft-deactivated, never
// deleted; every read filters on the active flag.
type ActivityRepository interface {
	WithTx(tx *gorm.DB) ActivityRepository
	CreateActivity(activity *models.Activity) error

	// Received-activity queries, ordered by update time descending.
	GetReceivedLikes(userID uint) ([]models.Activity, error)
	GetReceivedUpvotes(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error)
	GetReceivedComments(userID uint) ([]models.Activity, error)

	// GetCommentActivitiesOnPosts returns comment activities on the given
	// posts, excluding those authored by or owned by excludeUserID.
	GetCommentActivitiesOnPosts(postIDs []string, excludeUserID uint) ([]models.Activity, error)

	// Performed-activity sub-views, optionally restricted to posts owned by
	// vet-group users.
	GetLikesPerformed(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error)
	GetCommentsPerformed(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error)

	// Soft-deactivation for removed set memberships.
	DeactivateLikeActivity(userID uint, postID string) error
	DeactivateUpvoteActivity(userID, commentID uint) error
	DeactivateFollowActivity(userID, followedUserID uint) error
}

type postgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new Postgres-backed ActivityRepository
func NewPostgresActivityRepository(db *gorm.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) WithTx(tx *gorm.DB) ActivityRepository {
	return &postgresActivityRepository{db: tx}
}

func (r *postgresActivityRepository) CreateActivity(activity *models.Activity) error {
	if err := activity.Validate(); err != nil {
		return err
	}
	return r.db.Create(activity).Error
}

// GetReceivedLikes returns like activities on posts the user owns. The write
// path never produces a like activity whose actor is the post owner receiving
// it, but the actor exclusion is applied here anyway.
func (r *postgresActivityRepository) GetReceivedLikes(userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Where("kind = ? AND post_owner_id = ? AND user_id <> ? AND active = ?",
			models.ActivityLike, userID, userID, true).
		Order("updated_at DESC").
		Find(&activities).Error
	return activities, err
}

// GetReceivedUpvotes returns upvote activities on comments the user authored.
// With vetPostOwnersOnly set, only upvotes on posts owned by vet-group users
// are returned.
func (r *postgresActivityRepository) GetReceivedUpvotes(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error) {
	q := r.db.Model(&models.Activity{}).
		Joins("JOIN comments ON comments.id = activities.comment_id").
		Where("activities.kind = ? AND comments.user_id = ? AND activities.user_id <> ? AND activities.active = ?",
			models.ActivityUpvote, userID, userID, true)
	if vetPostOwnersOnly {
		q = q.Joins("JOIN users ON users.id = activities.post_owner_id").
			Where("users.role IN ?", models.VetGroupRoles())
	}

	var activities []models.Activity
	err := q.Order("activities.updated_at DESC").Find(&activities).Error
	return activities, err
}

// GetReceivedComments returns comment activities on posts the user owns
func (r *postgresActivityRepository) GetReceivedComments(userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Where("kind = ? AND post_owner_id = ? AND user_id <> ? AND active = ?",
			models.ActivityComment, userID, userID, true).
		Order("updated_at DESC").
		Find(&activities).Error
	return activities, err
}

func (r *postgresActivityRepository) GetCommentActivitiesOnPosts(postIDs []string, excludeUserID uint) ([]models.Activity, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var activities []models.Activity
	err := r.db.
		Where("kind = ? AND post_id IN ? AND post_owner_id <> ? AND user_id <> ? AND active = ?",
			models.ActivityComment, postIDs, excludeUserID, excludeUserID, true).
		Order("updated_at DESC").
		Find(&activities).Error
	return activities, err
}

// GetLikesPerformed returns the like activities the user performed,
// optionally restricted to posts owned by vet-group users
func (r *postgresActivityRepository) GetLikesPerformed(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error) {
	q := r.db.Model(&models.Activity{}).
		Where("activities.kind = ? AND activities.user_id = ? AND activities.active = ?",
			models.ActivityLike, userID, true)
	if vetPostOwnersOnly {
		q = q.Joins("JOIN users ON users.id = activities.post_owner_id").
			Where("users.role IN ?", models.VetGroupRoles())
	}

	var activities []models.Activity
	err := q.Order("activities.updated_at DESC").Find(&activities).Error
	return activities, err
}

// GetCommentsPerformed returns the comment activities the user performed,
// optionally restricted to posts owned by vet-group users
func (r *postgresActivityRepository) GetCommentsPerformed(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error) {
	q := r.db.Model(&models.Activity{}).
		Where("activities.kind = ? AND activities.user_id = ? AND activities.active = ?",
			models.ActivityComment, userID, true)
	if vetPostOwnersOnly {
		q = q.Joins("JOIN users ON users.id = activities.post_owner_id").
			Where("users.role IN ?", models.VetGroupRoles())
	}

	var activities []models.Activity
	err := q.Order("activities.updated_at DESC").Find(&activities).Error
	return activities, err
}

func (r *postgresActivityRepository) DeactivateLikeActivity(userID uint, postID string) error {
	return r.db.Model(&models.Activity{}).
		Where("kind = ? AND user_id = ? AND post_id = ? AND active = ?", models.ActivityLike, userID, postID, true).
		Update("active", false).Error
}

func (r *postgresActivityRepository) DeactivateUpvoteActivity(userID, commentID uint) error {
	return r.db.Model(&models.Activity{}).
		Where("kind = ? AND user_id = ? AND comment_id = ? AND active = ?", models.ActivityUpvote, userID, commentID, true).
		Update("active", false).Error
}

func (r *postgresActivityRepository) DeactivateFollowActivity(userID, followedUserID uint) error {
	return r.db.Model(&models.Activity{}).
		Where("kind = ? AND user_id = ? AND followed_user_id = ? AND active = ?", models.ActivityFollow, userID, followedUserID, true).
		Update("active", false).Error
}
