package services

import (
	"context"
	"fmt"

	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
)

// VisibilityForAuthor decides the audience flags of a new post from the
// author's role and verification state. Verified vets (students count as
// verified) publish to the vet audience; owners and breeders publish to the
// owner audience. The other flag stays false until the post is paid for.
func VisibilityForAuthor(author *models.User) (visibleByVet, visibleByOwner bool) {
	if author.IsVerifiedVet() {
		return true, false
	}
	if author.Role.IsOwnerGroup() {
		return false, true
	}
	// Unverified vet-group authors publish to neither audience until paid.
	return false, false
}

// PostService owns post creation and the payment transition
type PostService struct {
	posts repositories.PostRepository
	pets  repositories.PetRepository
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, pets repositories.PetRepository) *PostService {
	return &PostService{posts: posts, pets: pets}
}

// CreatePost creates a post with visibility flags derived from the author
func (s *PostService) CreatePost(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	if req.PetID != 0 {
		pet, err := s.pets.GetPetByID(req.PetID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pet: %w", err)
		}
		if pet.OwnerID != author.ID {
			return nil, ErrNotPetOwner
		}
	}

	visibleByVet, visibleByOwner := VisibilityForAuthor(author)
	post := &models.Post{
		UserID:         author.ID,
		PetID:          req.PetID,
		Description:    req.Description,
		ImageURLs:      req.ImageURLs,
		VisibleByVet:   visibleByVet,
		VisibleByOwner: visibleByOwner,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// MarkPaid is the one-way paid transition, driven by a payment-success event.
// It forces both visibility flags true; nothing ever unsets them.
func (s *PostService) MarkPaid(ctx context.Context, postID string) error {
	if err := s.posts.MarkPostPaid(ctx, postID); err != nil {
		return fmt.Errorf("failed to mark post paid: %w", err)
	}
	return nil
}
