package repositories

import (
	"sort"

	"github.com/petcircle/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	GetCommentsByPostIDAndRoles(postID string, roles []models.Role) ([]models.CommentWithCount, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *PostgresCommentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &PostgresCommentRepository{db: tx}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a specific post
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByPostIDAndRoles retrieves the comments on a post whose authors
// hold one of the given roles, annotated with a grouped upvote count and
// ordered by upvote count descending, then recency descending.
func (r *PostgresCommentRepository) GetCommentsByPostIDAndRoles(postID string, roles []models.Role) ([]models.CommentWithCount, error) {
	var comments []models.Comment
	err := r.db.
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ? AND users.role IN ?", postID, roles).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		return []models.CommentWithCount{}, nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	// One grouped count for the whole page instead of a count per comment.
	type countRow struct {
		CommentID uint
		Count     int64
	}
	var rows []countRow
	err = r.db.Model(&models.CommentUpvote{}).
		Select("comment_id, COUNT(*) AS count").
		Where("comment_id IN ?", ids).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CommentID] = row.Count
	}

	result := make([]models.CommentWithCount, len(comments))
	for i, c := range comments {
		result[i] = models.CommentWithCount{Comment: c, UpvoteCount: counts[c.ID]}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].UpvoteCount != result[j].UpvoteCount {
			return result[i].UpvoteCount > result[j].UpvoteCount
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment deletes a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
