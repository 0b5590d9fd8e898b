package repositories

import (
	"github.com/petcircle/backend/internal/models"
	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for comment feedback operations
type FeedbackRepository interface {
	WithTx(tx *gorm.DB) FeedbackRepository
	CreateFeedback(feedback *models.Feedback) error
	GetFeedbackByCommentID(commentID uint) (*models.Feedback, error)
	HasFeedback(commentID uint) (bool, error)
}

type postgresFeedbackRepository struct {
	db *gorm.DB
}

// NewPostgresFeedbackRepository creates a new Postgres-backed FeedbackRepository
func NewPostgresFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &postgresFeedbackRepository{db: db}
}

func (r *postgresFeedbackRepository) WithTx(tx *gorm.DB) FeedbackRepository {
	return &postgresFeedbackRepository{db: tx}
}

func (r *postgresFeedbackRepository) CreateFeedback(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *postgresFeedbackRepository) GetFeedbackByCommentID(commentID uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.Where("comment_id = ?", commentID).First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *postgresFeedbackRepository) HasFeedback(commentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Feedback{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count > 0, err
}
