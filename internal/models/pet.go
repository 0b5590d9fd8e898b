package models

import (
	"time"

	"gorm.io/gorm"
)

// Pet represents an animal registered by its owner; posts may reference one
type Pet struct {
	gorm.Model
	OwnerID   uint       `json:"owner_id" gorm:"index"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// CreatePetRequest defines the request body for registering a pet
type CreatePetRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=50"`
	Species   string     `json:"species" validate:"required,min=2,max=50"`
	Breed     string     `json:"breed,omitempty" validate:"omitempty,max=50"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}
