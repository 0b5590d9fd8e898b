package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"gorm.io/gorm"
)

// txRunner is the slice of *gorm.DB the engagement service needs: running a
// function inside one transaction.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// EngagementService owns the write paths that produce activity records:
// comments, likes, upvotes, follows and owner feedback. Each primary write
// and its activity insert commit atomically; notifications and denormalized
// counter bumps happen after commit, best effort.
type EngagementService struct {
	db            txRunner
	recorder      *Recorder
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	upvotes       repositories.UpvoteRepository
	likes         repositories.LikeRepository
	follows       repositories.FollowRepository
	feedback      repositories.FeedbackRepository
	activities    repositories.ActivityRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	notifier      Notifier
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	db txRunner,
	recorder *Recorder,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	upvoteRepo repositories.UpvoteRepository,
	likeRepo repositories.LikeRepository,
	followRepo repositories.FollowRepository,
	feedbackRepo repositories.FeedbackRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	notifier Notifier,
) *EngagementService {
	return &EngagementService{
		db:            db,
		recorder:      recorder,
		posts:         postRepo,
		comments:      commentRepo,
		upvotes:       upvoteRepo,
		likes:         likeRepo,
		follows:       followRepo,
		feedback:      feedbackRepo,
		activities:    activityRepo,
		users:         userRepo,
		notifications: notificationRepo,
		notifier:      notifier,
	}
}

// CreateComment creates a comment and its COMMENT activity atomically
func (s *EngagementService) CreateComment(ctx context.Context, author *models.User, postID, text string) (*models.Comment, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: author.ID,
		Text:   text,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).CreateComment(comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return s.recorder.WithTx(tx).RecordComment(author.ID, postID, post.UserID, comment.ID)
	})
	if err != nil {
		return nil, err
	}

	go func() {
		ctx := context.Background()
		if err := s.posts.IncrementCommentsCount(ctx, postID); err != nil {
			log.Printf("failed to bump comment count for post %s: %v", postID, err)
		}
	}()
	if post.UserID != author.ID {
		s.notify(post.UserID, author, "comment", postID, "post", author.Name+" commented on your post")
	}

	return comment, nil
}

// LikePost adds the user to the post's likers and records a LIKE activity.
// Liking an already-liked post is a no-op that records nothing.
func (s *EngagementService) LikePost(ctx context.Context, user *models.User, postID string) (*models.Like, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var like *models.Like
	err = s.db.Transaction(func(tx *gorm.DB) error {
		likes := s.likes.WithTx(tx)
		hasLiked, err := likes.HasUserLikedPost(postID, user.ID)
		if err != nil {
			return err
		}
		if hasLiked {
			return nil
		}

		like = &models.Like{
			PostID:      postID,
			UserID:      user.ID,
			PostOwnerID: post.UserID,
		}
		if err := likes.CreateLike(like); err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
		return s.recorder.WithTx(tx).RecordLike(user.ID, postID, post.UserID)
	})
	if err != nil {
		return nil, err
	}
	if like == nil {
		// Already liked; nothing happened.
		return nil, nil
	}

	go func() {
		ctx := context.Background()
		if err := s.posts.IncrementLikesCount(ctx, postID); err != nil {
			log.Printf("failed to bump like count for post %s: %v", postID, err)
		}
	}()
	if post.UserID != user.ID {
		s.notify(post.UserID, user, "like", postID, "post", user.Name+" liked your post")
	}

	return like, nil
}

// UnlikePost removes the user's like if present and deactivates its LIKE
// activity. Unliking a post that was never liked is a no-op.
func (s *EngagementService) UnlikePost(ctx context.Context, user *models.User, postID string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return err
	}

	var removed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = s.likes.WithTx(tx).DeleteLike(postID, user.ID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.activities.WithTx(tx).DeactivateLikeActivity(user.ID, postID)
	})
	if err != nil {
		return err
	}

	if removed {
		go func() {
			ctx := context.Background()
			if err := s.posts.DecrementLikesCount(ctx, postID); err != nil {
				log.Printf("failed to drop like count for post %s: %v", postID, err)
			}
		}()
	}
	return nil
}

// UpvoteComment adds the user to the comment's upvoters and records an UPVOTE
// activity. Upvoting twice is a no-op that records nothing.
func (s *EngagementService) UpvoteComment(ctx context.Context, user *models.User, commentID uint) (*models.CommentUpvote, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}

	var upvote *models.CommentUpvote
	err = s.db.Transaction(func(tx *gorm.DB) error {
		upvotes := s.upvotes.WithTx(tx)
		hasUpvoted, err := upvotes.HasUserUpvoted(commentID, user.ID)
		if err != nil {
			return err
		}
		if hasUpvoted {
			return nil
		}

		upvote = &models.CommentUpvote{
			CommentID: commentID,
			UserID:    user.ID,
		}
		if err := upvotes.CreateUpvote(upvote); err != nil {
			return fmt.Errorf("failed to create upvote: %w", err)
		}
		return s.recorder.WithTx(tx).RecordUpvote(user.ID, commentID, comment.PostID, post.UserID)
	})
	if err != nil {
		return nil, err
	}
	if upvote == nil {
		return nil, nil
	}

	if comment.UserID != user.ID {
		s.notify(comment.UserID, user, "upvote", fmt.Sprint(commentID), "comment", user.Name+" found your comment helpful")
	}
	return upvote, nil
}

// RemoveUpvote removes the user's upvote if present and deactivates its
// UPVOTE activity. Removal never records a new activity.
func (s *EngagementService) RemoveUpvote(ctx context.Context, user *models.User, commentID uint) error {
	if _, err := s.comments.GetCommentByID(commentID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		removed, err := s.upvotes.WithTx(tx).DeleteUpvote(commentID, user.ID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.activities.WithTx(tx).DeactivateUpvoteActivity(user.ID, commentID)
	})
}

// FollowUser adds target to the user's follows and records a FOLLOW activity.
// Following an already-followed user is a no-op that records nothing.
func (s *EngagementService) FollowUser(ctx context.Context, follower *models.User, targetID uint) error {
	if follower.ID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetUserByID(targetID); err != nil {
		return err
	}

	var followed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		follows := s.follows.WithTx(tx)
		isFollowing, err := follows.IsFollowing(follower.ID, targetID)
		if err != nil {
			return err
		}
		if isFollowing {
			return nil
		}

		if err := follows.CreateFollow(&models.Follow{FollowerID: follower.ID, FollowingID: targetID}); err != nil {
			return fmt.Errorf("failed to create follow: %w", err)
		}
		followed = true
		return s.recorder.WithTx(tx).RecordFollow(follower.ID, targetID)
	})
	if err != nil {
		return err
	}

	if followed {
		s.notify(targetID, follower, "follow", fmt.Sprint(follower.ID), "user", follower.Name+" started following you")
	}
	return nil
}

// UnfollowUser removes the follow if present and deactivates its FOLLOW activity
func (s *EngagementService) UnfollowUser(ctx context.Context, follower *models.User, targetID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		removed, err := s.follows.WithTx(tx).DeleteFollow(follower.ID, targetID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.activities.WithTx(tx).DeactivateFollowActivity(follower.ID, targetID)
	})
}

// CreateFeedback records the post owner's verdict on a comment. Only the
// owner of the comment's post may author it, one per comment.
func (s *EngagementService) CreateFeedback(ctx context.Context, author *models.User, commentID uint, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != author.ID {
		return nil, ErrFeedbackNotPostOwner
	}

	feedback := &models.Feedback{
		CommentID: commentID,
		UserID:    author.ID,
		Helpful:   req.Helpful,
		Text:      req.Text,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		fb := s.feedback.WithTx(tx)
		exists, err := fb.HasFeedback(commentID)
		if err != nil {
			return err
		}
		if exists {
			return ErrFeedbackExists
		}
		return fb.CreateFeedback(feedback)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

// notify writes an in-app notification row and fires a push, both best effort
func (s *EngagementService) notify(recipientID uint, actor *models.User, notifType, targetID, targetType, message string) {
	notification := &models.Notification{
		Type:        notifType,
		ActorID:     actor.ID,
		RecipientID: recipientID,
		TargetID:    targetID,
		TargetType:  targetType,
		Message:     message,
	}
	go func() {
		if err := s.notifications.CreateNotification(notification); err != nil {
			log.Printf("failed to store notification for user %d: %v", recipientID, err)
		}
		s.notifier.Notify(context.Background(), recipientID, message)
	}()
}
