package services

import (
	"context"
	"testing"

	"github.com/petcircle/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateCommentRecordsActivity(t *testing.T) {
	author := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	owner := &models.User{ID: 2, Name: "Noor", Role: models.RoleVeterinarian}
	svc, postRepo, commentRepo, _, _, _, _, activityRepo := newTestEngagementService(author, owner)

	postID := postRepo.add(&models.Post{UserID: 2})

	comment, err := svc.CreateComment(context.Background(), author, postID, "how old is she?")
	require.NoError(t, err)
	require.NotZero(t, comment.ID)
	require.Equal(t, postID, comment.PostID)

	_, err = commentRepo.GetCommentByID(comment.ID)
	require.NoError(t, err)

	recorded := activityRepo.createdOfKind(models.ActivityComment)
	require.Len(t, recorded, 1)
	require.EqualValues(t, 1, recorded[0].UserID)
	require.Equal(t, postID, *recorded[0].PostID)
	// Post owner is denormalized onto the activity row at write time.
	require.EqualValues(t, 2, *recorded[0].PostOwnerID)
	require.Equal(t, comment.ID, *recorded[0].CommentID)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	author := &models.User{ID: 1, Role: models.RolePetOwner}
	svc, _, _, _, _, _, _, activityRepo := newTestEngagementService(author)

	_, err := svc.CreateComment(context.Background(), author, "0123456789abcdef01234567", "hello")
	require.Error(t, err)
	require.Empty(t, activityRepo.created)
}

func TestLikePostIdempotent(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	owner := &models.User{ID: 2, Name: "Noor", Role: models.RolePetOwner}
	svc, postRepo, _, _, likeRepo, _, _, activityRepo := newTestEngagementService(user, owner)

	postID := postRepo.add(&models.Post{UserID: 2})

	like, err := svc.LikePost(context.Background(), user, postID)
	require.NoError(t, err)
	require.NotNil(t, like)
	require.EqualValues(t, 2, like.PostOwnerID)

	// Second like is a no-op: no new membership, no new activity.
	again, err := svc.LikePost(context.Background(), user, postID)
	require.NoError(t, err)
	require.Nil(t, again)

	count, err := likeRepo.GetLikesCountByPostID(postID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Len(t, activityRepo.createdOfKind(models.ActivityLike), 1)
}

func TestUnlikePostDeactivatesActivity(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	owner := &models.User{ID: 2, Name: "Noor", Role: models.RolePetOwner}
	svc, postRepo, _, _, likeRepo, _, _, activityRepo := newTestEngagementService(user, owner)

	postID := postRepo.add(&models.Post{UserID: 2})

	_, err := svc.LikePost(context.Background(), user, postID)
	require.NoError(t, err)

	require.NoError(t, svc.UnlikePost(context.Background(), user, postID))

	liked, err := likeRepo.HasUserLikedPost(postID, user.ID)
	require.NoError(t, err)
	require.False(t, liked)

	// The activity row survives, deactivated, never deleted.
	recorded := activityRepo.createdOfKind(models.ActivityLike)
	require.Len(t, recorded, 1)
	require.False(t, recorded[0].Active)
}

func TestUnlikePostNeverLiked(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RolePetOwner}
	owner := &models.User{ID: 2, Role: models.RolePetOwner}
	svc, postRepo, _, _, _, _, _, activityRepo := newTestEngagementService(user, owner)

	postID := postRepo.add(&models.Post{UserID: 2})

	require.NoError(t, svc.UnlikePost(context.Background(), user, postID))
	require.Empty(t, activityRepo.created)
}

func TestUpvoteCommentIdempotent(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	vet := &models.User{ID: 2, Name: "Noor", Role: models.RoleVeterinarian, Verified: true}
	svc, postRepo, commentRepo, upvoteRepo, _, _, _, activityRepo := newTestEngagementService(user, vet)

	postID := postRepo.add(&models.Post{UserID: 1})
	comment := commentRepo.add(&models.Comment{PostID: postID, UserID: 2, Text: "try a bland diet"})

	upvote, err := svc.UpvoteComment(context.Background(), user, comment.ID)
	require.NoError(t, err)
	require.NotNil(t, upvote)

	again, err := svc.UpvoteComment(context.Background(), user, comment.ID)
	require.NoError(t, err)
	require.Nil(t, again)

	count, err := upvoteRepo.GetUpvoteCount(comment.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	recorded := activityRepo.createdOfKind(models.ActivityUpvote)
	require.Len(t, recorded, 1)
	require.Equal(t, comment.ID, *recorded[0].CommentID)
	require.EqualValues(t, 1, *recorded[0].PostOwnerID)
}

func TestRemoveUpvoteDeactivatesActivity(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	vet := &models.User{ID: 2, Name: "Noor", Role: models.RoleVeterinarian}
	svc, postRepo, commentRepo, upvoteRepo, _, _, _, activityRepo := newTestEngagementService(user, vet)

	postID := postRepo.add(&models.Post{UserID: 1})
	comment := commentRepo.add(&models.Comment{PostID: postID, UserID: 2, Text: "looks healthy"})

	_, err := svc.UpvoteComment(context.Background(), user, comment.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveUpvote(context.Background(), user, comment.ID))

	upvoted, err := upvoteRepo.HasUserUpvoted(comment.ID, user.ID)
	require.NoError(t, err)
	require.False(t, upvoted)

	recorded := activityRepo.createdOfKind(models.ActivityUpvote)
	require.Len(t, recorded, 1)
	require.False(t, recorded[0].Active)

	// Removing again is a no-op.
	require.NoError(t, svc.RemoveUpvote(context.Background(), user, comment.ID))
}

func TestFollowUserRejectsSelf(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	svc, _, _, _, _, _, _, activityRepo := newTestEngagementService(user)

	err := svc.FollowUser(context.Background(), user, user.ID)
	require.ErrorIs(t, err, ErrSelfFollow)
	require.Empty(t, activityRepo.created)
}

func TestFollowUserUnknownTarget(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RolePetOwner}
	svc, _, _, _, _, _, _, _ := newTestEngagementService(user)

	err := svc.FollowUser(context.Background(), user, 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFollowUserIdempotent(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	target := &models.User{ID: 2, Name: "Noor", Role: models.RoleBreeder}
	svc, _, _, _, _, followRepo, _, activityRepo := newTestEngagementService(user, target)

	require.NoError(t, svc.FollowUser(context.Background(), user, target.ID))
	require.NoError(t, svc.FollowUser(context.Background(), user, target.ID))

	following, err := followRepo.IsFollowing(user.ID, target.ID)
	require.NoError(t, err)
	require.True(t, following)

	recorded := activityRepo.createdOfKind(models.ActivityFollow)
	require.Len(t, recorded, 1)
	require.Equal(t, target.ID, *recorded[0].FollowedUserID)
}

func TestUnfollowUserDeactivatesActivity(t *testing.T) {
	user := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	target := &models.User{ID: 2, Name: "Noor", Role: models.RoleBreeder}
	svc, _, _, _, _, followRepo, _, activityRepo := newTestEngagementService(user, target)

	require.NoError(t, svc.FollowUser(context.Background(), user, target.ID))
	require.NoError(t, svc.UnfollowUser(context.Background(), user, target.ID))

	following, err := followRepo.IsFollowing(user.ID, target.ID)
	require.NoError(t, err)
	require.False(t, following)

	recorded := activityRepo.createdOfKind(models.ActivityFollow)
	require.Len(t, recorded, 1)
	require.False(t, recorded[0].Active)
}

func TestCreateFeedbackOnlyPostOwner(t *testing.T) {
	owner := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	vet := &models.User{ID: 2, Name: "Noor", Role: models.RoleVeterinarian}
	stranger := &models.User{ID: 3, Name: "Iris", Role: models.RolePetOwner}
	svc, postRepo, commentRepo, _, _, _, _, _ := newTestEngagementService(owner, vet, stranger)

	postID := postRepo.add(&models.Post{UserID: 1})
	comment := commentRepo.add(&models.Comment{PostID: postID, UserID: 2, Text: "deworm every 3 months"})

	req := &models.CreateFeedbackRequest{Helpful: true, Text: "worked well"}

	_, err := svc.CreateFeedback(context.Background(), stranger, comment.ID, req)
	require.ErrorIs(t, err, ErrFeedbackNotPostOwner)

	feedback, err := svc.CreateFeedback(context.Background(), owner, comment.ID, req)
	require.NoError(t, err)
	require.True(t, feedback.Helpful)
	require.Equal(t, owner.ID, feedback.UserID)
}

func TestCreateFeedbackOncePerComment(t *testing.T) {
	owner := &models.User{ID: 1, Name: "Maya", Role: models.RolePetOwner}
	vet := &models.User{ID: 2, Name: "Noor", Role: models.RoleVeterinarian}
	svc, postRepo, commentRepo, _, _, _, feedbackRepo, _ := newTestEngagementService(owner, vet)

	postID := postRepo.add(&models.Post{UserID: 1})
	comment := commentRepo.add(&models.Comment{PostID: postID, UserID: 2, Text: "switch food gradually"})

	_, err := svc.CreateFeedback(context.Background(), owner, comment.ID, &models.CreateFeedbackRequest{Helpful: true})
	require.NoError(t, err)

	_, err = svc.CreateFeedback(context.Background(), owner, comment.ID, &models.CreateFeedbackRequest{Helpful: false})
	require.ErrorIs(t, err, ErrFeedbackExists)

	stored, err := feedbackRepo.GetFeedbackByCommentID(comment.ID)
	require.NoError(t, err)
	require.True(t, stored.Helpful)
}
