package repositories

import (
	"github.com/petcircle/backend/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post (bookmark) operations
type SavedPostRepository interface {
	SavePost(savedPost *models.SavedPost) error
	UnsavePost(userID uint, postID string) (bool, error)
	HasUserSavedPost(userID uint, postID string) (bool, error)
	GetSavedPosts(userID uint) ([]models.SavedPost, error)
	GetSavedPostIDs(userID uint, postIDs []string) (map[string]bool, error)
}

type postgresSavedPostRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPostRepository creates a new Postgres-backed SavedPostRepository
func NewPostgresSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &postgresSavedPostRepository{db: db}
}

func (r *postgresSavedPostRepository) SavePost(savedPost *models.SavedPost) error {
	return r.db.Create(savedPost).Error
}

// UnsavePost removes a bookmark. Removing an absent bookmark is a no-op;
// the bool reports whether a row was actually deleted.
func (r *postgresSavedPostRepository) UnsavePost(userID uint, postID string) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresSavedPostRepository) HasUserSavedPost(userID uint, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *postgresSavedPostRepository) GetSavedPosts(userID uint) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	return saved, err
}

// GetSavedPostIDs returns which of the given post IDs the user has saved
func (r *postgresSavedPostRepository) GetSavedPostIDs(userID uint, postIDs []string) (map[string]bool, error) {
	saved := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return saved, nil
	}

	var rows []models.SavedPost
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		saved[row.PostID] = true
	}
	return saved, nil
}
