package repositories

import (
	"github.com/petcircle/backend/internal/models"
	"gorm.io/gorm"
)

// UpvoteRepository defines the interface for comment upvote operations
type UpvoteRepository interface {
	WithTx(tx *gorm.DB) UpvoteRepository
	CreateUpvote(upvote *models.CommentUpvote) error
	DeleteUpvote(commentID, userID uint) (bool, error)
	HasUserUpvoted(commentID, userID uint) (bool, error)
	GetUpvoteCount(commentID uint) (int64, error)
}

type postgresUpvoteRepository struct {
	db *gorm.DB
}

// NewPostgresUpvoteRepository creates a new Postgres-backed UpvoteRepository
func NewPostgresUpvoteRepository(db *gorm.DB) UpvoteRepository {
	return &postgresUpvoteRepository{db: db}
}

func (r *postgresUpvoteRepository) WithTx(tx *gorm.DB) UpvoteRepository {
	return &postgresUpvoteRepository{db: tx}
}

func (r *postgresUpvoteRepository) CreateUpvote(upvote *models.CommentUpvote) error {
	return r.db.Create(upvote).Error
}

// DeleteUpvote removes the user's upvote if present. Removing an absent
// upvote is a no-op; the bool reports whether a row was actually deleted.
func (r *postgresUpvoteRepository) DeleteUpvote(commentID, userID uint) (bool, error) {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentUpvote{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresUpvoteRepository) HasUserUpvoted(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentUpvote{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}

func (r *postgresUpvoteRepository) GetUpvoteCount(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentUpvote{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
