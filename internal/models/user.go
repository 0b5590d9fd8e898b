package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Role        Role   `json:"role" gorm:"size:20;index"`
	Verified    bool   `json:"verified" gorm:"default:false"` // Vet verification; students are treated as verified
	Password    string `json:"-"`                             // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	DeviceToken string `json:"-"` // FCM registration token for push notifications
}

// IsVerifiedVet reports whether the user counts as a verified veterinary
// professional. Students are auto-verified.
func (u *User) IsVerifiedVet() bool {
	if u.Role == RoleVetStudent {
		return true
	}
	return u.Role.IsVetGroup() && u.Verified
}

// UserCompact is the public projection of a user attached to feed items and comments
type UserCompact struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

// ToCompact returns the public projection of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Name:     u.Name,
		Role:     u.Role,
		Verified: u.Verified,
	}
}

type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Role        Role   `json:"role" validate:"required,oneof=pet_owner breeder veterinarian vet_student vet_technician"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID provided by the client after Firebase Auth
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=pet_owner breeder veterinarian vet_student vet_technician"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	DeviceToken string `json:"device_token,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
