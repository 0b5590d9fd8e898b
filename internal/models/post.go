package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a marketplace post stored in MongoDB.
// Visibility flags decide which audience sees it: vet-group, owner-group,
// or both once the post has been paid for.
type Post struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         uint               `json:"user_id" bson:"user_id"`
	PetID          uint               `json:"pet_id,omitempty" bson:"pet_id,omitempty"`
	Description    string             `json:"description" bson:"description"`
	ImageURLs      []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VisibleByVet   bool               `json:"visible_by_vet" bson:"visible_by_vet"`
	VisibleByOwner bool               `json:"visible_by_owner" bson:"visible_by_owner"`
	LikesCount     int                `json:"likes_count" bson:"likes_count"`
	CommentsCount  int                `json:"comments_count" bson:"comments_count"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsPaid reports whether the post has been paid for, i.e. it is visible to
// both audiences. There is no transition back once paid.
func (p *Post) IsPaid() bool {
	return p.VisibleByVet && p.VisibleByOwner
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	PetID       uint     `json:"pet_id,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Description string   `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
