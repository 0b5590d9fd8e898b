package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// fakeTxRunner runs the transaction body directly; the nil *gorm.DB is fine
// because every fake repository ignores WithTx.
type fakeTxRunner struct{}

func (fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (f *fakePostRepo) add(post *models.Post) string {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	f.posts[post.ID.Hex()] = post
	return post.ID.Hex()
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	f.add(post)
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) GetVisiblePosts(ctx context.Context, vetAudience bool, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	return nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) MarkPostPaid(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	post.VisibleByVet = true
	post.VisibleByOwner = true
	return nil
}

func (f *fakePostRepo) IncrementLikesCount(ctx context.Context, postID string) error {
	return f.bump(postID, func(p *models.Post) { p.LikesCount++ })
}

func (f *fakePostRepo) DecrementLikesCount(ctx context.Context, postID string) error {
	return f.bump(postID, func(p *models.Post) { p.LikesCount-- })
}

func (f *fakePostRepo) IncrementCommentsCount(ctx context.Context, postID string) error {
	return f.bump(postID, func(p *models.Post) { p.CommentsCount++ })
}

func (f *fakePostRepo) DecrementCommentsCount(ctx context.Context, postID string) error {
	return f.bump(postID, func(p *models.Post) { p.CommentsCount-- })
}

func (f *fakePostRepo) bump(postID string, fn func(*models.Post)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post, ok := f.posts[postID]; ok {
		fn(post)
	}
	return nil
}

type fakeCommentRepo struct {
	nextID   uint
	comments map[uint]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1, comments: make(map[uint]*models.Comment)}
}

func (f *fakeCommentRepo) add(comment *models.Comment) *models.Comment {
	if comment.ID == 0 {
		comment.ID = f.nextID
		f.nextID++
	}
	f.comments[comment.ID] = comment
	return comment
}

func (f *fakeCommentRepo) WithTx(tx *gorm.DB) repositories.CommentRepository { return f }

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	f.add(comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) GetCommentsByPostIDAndRoles(postID string, roles []models.Role) ([]models.CommentWithCount, error) {
	return nil, nil
}

func (f *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) DeleteComment(id uint) error {
	delete(f.comments, id)
	return nil
}

type fakeUpvoteRepo struct {
	nextID  uint
	upvotes map[uint]*models.CommentUpvote
}

func newFakeUpvoteRepo() *fakeUpvoteRepo {
	return &fakeUpvoteRepo{nextID: 1, upvotes: make(map[uint]*models.CommentUpvote)}
}

func (f *fakeUpvoteRepo) WithTx(tx *gorm.DB) repositories.UpvoteRepository { return f }

func (f *fakeUpvoteRepo) CreateUpvote(upvote *models.CommentUpvote) error {
	upvote.ID = f.nextID
	f.nextID++
	f.upvotes[upvote.ID] = upvote
	return nil
}

func (f *fakeUpvoteRepo) DeleteUpvote(commentID, userID uint) (bool, error) {
	for id, u := range f.upvotes {
		if u.CommentID == commentID && u.UserID == userID {
			delete(f.upvotes, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUpvoteRepo) HasUserUpvoted(commentID, userID uint) (bool, error) {
	for _, u := range f.upvotes {
		if u.CommentID == commentID && u.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUpvoteRepo) GetUpvoteCount(commentID uint) (int64, error) {
	var count int64
	for _, u := range f.upvotes {
		if u.CommentID == commentID {
			count++
		}
	}
	return count, nil
}

type fakeLikeRepo struct {
	nextID uint
	likes  []*models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{nextID: 1}
}

func (f *fakeLikeRepo) WithTx(tx *gorm.DB) repositories.LikeRepository { return f }

func (f *fakeLikeRepo) CreateLike(like *models.Like) error {
	like.ID = f.nextID
	f.nextID++
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	f.likes = append(f.likes, like)
	return nil
}

func (f *fakeLikeRepo) DeleteLike(postID string, userID uint) (bool, error) {
	for i, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			f.likes = append(f.likes[:i], f.likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikeRepo) GetLikesByUserID(userID uint) ([]models.Like, error) {
	var likes []models.Like
	for _, l := range f.likes {
		if l.UserID == userID {
			likes = append(likes, *l)
		}
	}
	return likes, nil
}

func (f *fakeLikeRepo) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) HasUserLikedPost(postID string, userID uint) (bool, error) {
	for _, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFollowRepo struct {
	follows []*models.Follow
}

func newFakeFollowRepo() *fakeFollowRepo { return &fakeFollowRepo{} }

func (f *fakeFollowRepo) WithTx(tx *gorm.DB) repositories.FollowRepository { return f }

func (f *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	f.follows = append(f.follows, follow)
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(followerID, followingID uint) (bool, error) {
	for i, fl := range f.follows {
		if fl.FollowerID == followerID && fl.FollowingID == followingID {
			f.follows = append(f.follows[:i], f.follows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, fl := range f.follows {
		if fl.FollowerID == followerID && fl.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) GetFollowers(userID uint) ([]models.User, error)  { return nil, nil }
func (f *fakeFollowRepo) GetFollowing(userID uint) ([]models.User, error)  { return nil, nil }
func (f *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error)     { return 0, nil }
func (f *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error)     { return 0, nil }

type fakeFeedbackRepo struct {
	nextID   uint
	feedback map[uint]*models.Feedback // keyed by comment ID
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{nextID: 1, feedback: make(map[uint]*models.Feedback)}
}

func (f *fakeFeedbackRepo) WithTx(tx *gorm.DB) repositories.FeedbackRepository { return f }

func (f *fakeFeedbackRepo) CreateFeedback(feedback *models.Feedback) error {
	feedback.ID = f.nextID
	f.nextID++
	f.feedback[feedback.CommentID] = feedback
	return nil
}

func (f *fakeFeedbackRepo) GetFeedbackByCommentID(commentID uint) (*models.Feedback, error) {
	fb, ok := f.feedback[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return fb, nil
}

func (f *fakeFeedbackRepo) HasFeedback(commentID uint) (bool, error) {
	_, ok := f.feedback[commentID]
	return ok, nil
}

// fakeActivityRepo stores created activities for write-path assertions and
// serves preset slices for the feed query methods.
type fakeActivityRepo struct {
	nextID  uint
	created []*models.Activity

	receivedLikes     []models.Activity
	receivedUpvotes   []models.Activity
	receivedComments  []models.Activity
	commentActivities []models.Activity
	likesPerformed    []models.Activity
	commentsPerformed []models.Activity

	commentActivitiesPostIDs []string
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{nextID: 1}
}

func (f *fakeActivityRepo) WithTx(tx *gorm.DB) repositories.ActivityRepository { return f }

func (f *fakeActivityRepo) CreateActivity(activity *models.Activity) error {
	if err := activity.Validate(); err != nil {
		return err
	}
	activity.ID = f.nextID
	f.nextID++
	now := time.Now()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	f.created = append(f.created, activity)
	return nil
}

func (f *fakeActivityRepo) createdOfKind(kind models.ActivityKind) []*models.Activity {
	var out []*models.Activity
	for _, a := range f.created {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeActivityRepo) GetReceivedLikes(userID uint) ([]models.Activity, error) {
	return f.receivedLikes, nil
}

func (f *fakeActivityRepo) GetReceivedUpvotes(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error) {
	return f.receivedUpvotes, nil
}

func (f *fakeActivityRepo) GetReceivedComments(userID uint) ([]models.Activity, error) {
	return f.receivedComments, nil
}

func (f *fakeActivityRepo) GetCommentActivitiesOnPosts(postIDs []string, excludeUserID uint) ([]models.Activity, error) {
	f.commentActivitiesPostIDs = postIDs
	return f.commentActivities, nil
}

func (f *fakeActivityRepo) GetLikesPerformed(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error) {
	return f.likesPerformed, nil
}

func (f *fakeActivityRepo) GetCommentsPerformed(userID uint, vetPostOwnersOnly bool) ([]models.Activity, error) {
	return f.commentsPerformed, nil
}

func (f *fakeActivityRepo) DeactivateLikeActivity(userID uint, postID string) error {
	for _, a := range f.created {
		if a.Kind == models.ActivityLike && a.UserID == userID && a.PostID != nil && *a.PostID == postID {
			a.Active = false
		}
	}
	return nil
}

func (f *fakeActivityRepo) DeactivateUpvoteActivity(userID, commentID uint) error {
	for _, a := range f.created {
		if a.Kind == models.ActivityUpvote && a.UserID == userID && a.CommentID != nil && *a.CommentID == commentID {
			a.Active = false
		}
	}
	return nil
}

func (f *fakeActivityRepo) DeactivateFollowActivity(userID, followedUserID uint) error {
	for _, a := range f.created {
		if a.Kind == models.ActivityFollow && a.UserID == userID && a.FollowedUserID != nil && *a.FollowedUserID == followedUserID {
			a.Active = false
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error { return nil }
func (f *fakeUserRepo) DeleteUser(id uint) error           { return nil }

func (f *fakeUserRepo) SearchUsers(query string) ([]models.User, error) { return nil, nil }

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo { return &fakeNotificationRepo{} }

func (f *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) { return 0, nil }
func (f *fakeNotificationRepo) MarkAsRead(notificationID uint) error           { return nil }
func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error           { return nil }

type fakePetRepo struct {
	pets map[uint]*models.Pet
}

func newFakePetRepo(pets ...*models.Pet) *fakePetRepo {
	f := &fakePetRepo{pets: make(map[uint]*models.Pet)}
	for _, p := range pets {
		f.pets[p.ID] = p
	}
	return f
}

func (f *fakePetRepo) CreatePet(pet *models.Pet) error { return nil }

func (f *fakePetRepo) GetPetByID(id uint) (*models.Pet, error) {
	pet, ok := f.pets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pet, nil
}

func (f *fakePetRepo) GetPetsByOwnerID(ownerID uint) ([]models.Pet, error) { return nil, nil }
func (f *fakePetRepo) UpdatePet(pet *models.Pet) error                     { return nil }
func (f *fakePetRepo) DeletePet(id uint) error                             { return nil }

// newTestEngagementService wires an EngagementService over fresh fakes and
// returns the ones the tests assert against.
func newTestEngagementService(users ...*models.User) (*EngagementService, *fakePostRepo, *fakeCommentRepo, *fakeUpvoteRepo, *fakeLikeRepo, *fakeFollowRepo, *fakeFeedbackRepo, *fakeActivityRepo) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	upvoteRepo := newFakeUpvoteRepo()
	likeRepo := newFakeLikeRepo()
	followRepo := newFakeFollowRepo()
	feedbackRepo := newFakeFeedbackRepo()
	activityRepo := newFakeActivityRepo()
	userRepo := newFakeUserRepo(users...)

	svc := NewEngagementService(
		fakeTxRunner{},
		NewRecorder(activityRepo),
		postRepo, commentRepo, upvoteRepo, likeRepo, followRepo, feedbackRepo,
		activityRepo, userRepo, newFakeNotificationRepo(), NoopNotifier{},
	)
	return svc, postRepo, commentRepo, upvoteRepo, likeRepo, followRepo, feedbackRepo, activityRepo
}
