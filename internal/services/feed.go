package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
)

// FeedService aggregates the activity feed for a user from four sources:
// likes received on their posts, upvotes received on their comments, comments
// received on their posts, and comments made on posts they liked. Each source
// is tagged with a beacon, then everything is merged into one list sorted by
// activity update time, newest first. Pagination is left to the HTTP layer.
type FeedService struct {
	activities repositories.ActivityRepository
	likes      repositories.LikeRepository
	users      repositories.UserRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(activities repositories.ActivityRepository, likes repositories.LikeRepository, users repositories.UserRepository) *FeedService {
	return &FeedService{activities: activities, likes: likes, users: users}
}

// GetFeed returns the merged activity feed for the user. A user's own actions
// never surface as received items, and vet-group requesters only see upvotes
// earned on posts owned by vet-group users.
func (s *FeedService) GetFeed(user *models.User) ([]models.FeedItem, error) {
	vetOnly := user.Role.IsVetGroup()

	receivedLikes, err := s.activities.GetReceivedLikes(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load received likes: %w", err)
	}
	receivedUpvotes, err := s.activities.GetReceivedUpvotes(user.ID, vetOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load received upvotes: %w", err)
	}
	receivedComments, err := s.activities.GetReceivedComments(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load received comments: %w", err)
	}
	likedPostComments, err := s.commentsOnLikedPosts(user)
	if err != nil {
		return nil, err
	}

	upvoteItems := tagActivities(receivedUpvotes, models.BeaconUpvote)
	if vetOnly {
		upvoteItems = s.onVetOwnedPosts(upvoteItems)
	}

	items := tagActivities(receivedLikes, models.BeaconLike)
	items = append(items, upvoteItems...)
	items = append(items, tagActivities(receivedComments, models.BeaconComment)...)
	items = withoutActor(items, user.ID)
	items = append(items, likedPostComments...)

	mergeFeed(items)

	if err := s.attachActors(items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetLikesPerformed returns the likes the user has given, as feed items;
// vet-group requesters only see likes on posts owned by vet-group users
func (s *FeedService) GetLikesPerformed(user *models.User) ([]models.FeedItem, error) {
	vetOnly := user.Role.IsVetGroup()
	activities, err := s.activities.GetLikesPerformed(user.ID, vetOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load performed likes: %w", err)
	}
	items := tagActivities(activities, models.BeaconLike)
	if vetOnly {
		items = s.onVetOwnedPosts(items)
	}
	if err := s.attachActors(items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCommentsPerformed returns the comments the user has made on posts, as
// feed items; vet-group requesters only see those on vet-owned posts
func (s *FeedService) GetCommentsPerformed(user *models.User) ([]models.FeedItem, error) {
	vetOnly := user.Role.IsVetGroup()
	activities, err := s.activities.GetCommentsPerformed(user.ID, vetOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load performed comments: %w", err)
	}
	items := tagActivities(activities, models.BeaconComment)
	if vetOnly {
		items = s.onVetOwnedPosts(items)
	}
	if err := s.attachActors(items); err != nil {
		return nil, err
	}
	return items, nil
}

// commentsOnLikedPosts is the like_comment source: comment activities on
// posts the user liked but does not own, keeping only comments made after
// the user's own like on that post.
func (s *FeedService) commentsOnLikedPosts(user *models.User) ([]models.FeedItem, error) {
	likes, err := s.likes.GetLikesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user likes: %w", err)
	}
	if len(likes) == 0 {
		return nil, nil
	}

	likedAt := make(map[string]time.Time, len(likes))
	postIDs := make([]string, 0, len(likes))
	for _, like := range likes {
		likedAt[like.PostID] = like.CreatedAt
		postIDs = append(postIDs, like.PostID)
	}

	activities, err := s.activities.GetCommentActivitiesOnPosts(postIDs, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments on liked posts: %w", err)
	}

	var items []models.FeedItem
	for _, activity := range activities {
		if activity.PostID == nil || activity.UserID == user.ID {
			continue
		}
		// A comment made before the like must not surface.
		if !activity.UpdatedAt.After(likedAt[*activity.PostID]) {
			continue
		}
		items = append(items, models.FeedItem{Activity: activity, Beacon: models.BeaconLikeComment})
	}
	return items, nil
}

// onVetOwnedPosts keeps only items on posts whose owner is a vet-group user.
// Items missing a post owner, or whose owner no longer exists, are dropped.
func (s *FeedService) onVetOwnedPosts(items []models.FeedItem) []models.FeedItem {
	roles := make(map[uint]models.Role)
	kept := items[:0]
	for _, item := range items {
		if item.PostOwnerID == nil {
			continue
		}
		role, ok := roles[*item.PostOwnerID]
		if !ok {
			owner, err := s.users.GetUserByID(*item.PostOwnerID)
			if err != nil {
				continue
			}
			role = owner.Role
			roles[*item.PostOwnerID] = role
		}
		if !role.IsVetGroup() {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// attachActors resolves each item's acting user once and attaches the
// compact projection for the serialization layer
func (s *FeedService) attachActors(items []models.FeedItem) error {
	cache := make(map[uint]models.UserCompact)
	for i := range items {
		actorID := items[i].UserID
		if compact, ok := cache[actorID]; ok {
			items[i].Actor = compact
			continue
		}
		actor, err := s.users.GetUserByID(actorID)
		if err != nil {
			// Actor may have been deleted; leave the projection empty.
			continue
		}
		cache[actorID] = actor.ToCompact()
		items[i].Actor = cache[actorID]
	}
	return nil
}

// tagActivities decorates a source's activities with its beacon label
func tagActivities(activities []models.Activity, beacon string) []models.FeedItem {
	items := make([]models.FeedItem, len(activities))
	for i, activity := range activities {
		items[i] = models.FeedItem{Activity: activity, Beacon: beacon}
	}
	return items
}

// withoutActor drops items performed by the given user
func withoutActor(items []models.FeedItem, userID uint) []models.FeedItem {
	kept := items[:0]
	for _, item := range items {
		if item.UserID == userID {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// mergeFeed sorts the concatenated sources by update time, newest first.
// The sort is stable so items sharing a timestamp keep their source order.
func mergeFeed(items []models.FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}
