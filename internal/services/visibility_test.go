package services

import (
	"context"
	"testing"

	"github.com/petcircle/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestVisibilityForAuthor(t *testing.T) {
	tt := []struct {
		name           string
		role           models.Role
		verified       bool
		visibleByVet   bool
		visibleByOwner bool
	}{
		{"pet owner", models.RolePetOwner, false, false, true},
		{"breeder", models.RoleBreeder, false, false, true},
		{"verified veterinarian", models.RoleVeterinarian, true, true, false},
		{"verified vet technician", models.RoleVetTechnician, true, true, false},
		{"vet student is auto verified", models.RoleVetStudent, false, true, false},
		{"unverified veterinarian", models.RoleVeterinarian, false, false, false},
		{"unverified vet technician", models.RoleVetTechnician, false, false, false},
		// Verification is meaningless for owner-group roles.
		{"verified pet owner", models.RolePetOwner, true, false, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			author := &models.User{Role: tc.role, Verified: tc.verified}
			vet, owner := VisibilityForAuthor(author)
			require.Equal(t, tc.visibleByVet, vet)
			require.Equal(t, tc.visibleByOwner, owner)
		})
	}
}

func TestCreatePostDerivesVisibility(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo, newFakePetRepo())

	author := &models.User{ID: 1, Role: models.RoleVeterinarian, Verified: true}
	post, err := svc.CreatePost(context.Background(), author, &models.CreatePostRequest{Description: "lab results look fine"})
	require.NoError(t, err)
	require.True(t, post.VisibleByVet)
	require.False(t, post.VisibleByOwner)
	require.False(t, post.IsPaid())
}

func TestCreatePostRejectsForeignPet(t *testing.T) {
	postRepo := newFakePostRepo()
	pet := &models.Pet{OwnerID: 2}
	pet.ID = 7
	svc := NewPostService(postRepo, newFakePetRepo(pet))

	author := &models.User{ID: 1, Role: models.RolePetOwner}
	_, err := svc.CreatePost(context.Background(), author, &models.CreatePostRequest{Description: "not my pet", PetID: 7})
	require.ErrorIs(t, err, ErrNotPetOwner)
}

func TestMarkPaidMakesPostVisibleToBoth(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo, newFakePetRepo())

	post := &models.Post{UserID: 3, VisibleByVet: true}
	id := postRepo.add(post)
	require.False(t, post.IsPaid())

	require.NoError(t, svc.MarkPaid(context.Background(), id))

	updated, err := postRepo.GetPostByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, updated.VisibleByVet)
	require.True(t, updated.VisibleByOwner)
	require.True(t, updated.IsPaid())
}

func TestMarkPaidUnknownPost(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), newFakePetRepo())
	err := svc.MarkPaid(context.Background(), "0123456789abcdef01234567")
	require.Error(t, err)
}
