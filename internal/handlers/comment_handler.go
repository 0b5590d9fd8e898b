package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"github.com/petcircle/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments, upvotes and feedback
type CommentHandler struct {
	engagement         *services.EngagementService
	commentRepository  repositories.CommentRepository
	upvoteRepository   repositories.UpvoteRepository
	feedbackRepository repositories.FeedbackRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	engagement *services.EngagementService,
	commentRepo repositories.CommentRepository,
	upvoteRepo repositories.UpvoteRepository,
	feedbackRepo repositories.FeedbackRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
) *CommentHandler {
	return &CommentHandler{
		engagement:         engagement,
		commentRepository:  commentRepo,
		upvoteRepository:   upvoteRepo,
		feedbackRepository: feedbackRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/upvotes", h.UpvoteComment)
	g.DELETE("/comments/:id/upvotes", h.RemoveUpvote)
	g.POST("/comments/:id/feedback", h.CreateFeedback)
	g.GET("/comments/:id/feedback", h.GetFeedback)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.engagement.CreateComment(c.Request().Context(), user, postID, req.Text)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID returns the post's comments partitioned into the
// owner-group and vet-group audiences, each ordered by upvote count then
// recency. A group query parameter restricts the response to one partition.
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return domainError(err)
	}

	switch c.QueryParam("group") {
	case "owner":
		comments, err := h.commentsForRoles(postID, models.OwnerGroupRoles())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"comments": comments})
	case "vet":
		comments, err := h.commentsForRoles(postID, models.VetGroupRoles())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"comments": comments})
	default:
		ownerComments, err := h.commentsForRoles(postID, models.OwnerGroupRoles())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		vetComments, err := h.commentsForRoles(postID, models.VetGroupRoles())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"owner_comments": ownerComments,
			"vet_comments":   vetComments,
		})
	}
}

func (h *CommentHandler) commentsForRoles(postID string, roles []models.Role) ([]models.CommentWithCount, error) {
	comments, err := h.commentRepository.GetCommentsByPostIDAndRoles(postID, roles)
	if err != nil {
		return nil, err
	}

	authorCache := make(map[uint]models.UserCompact)
	for i := range comments {
		author, ok := authorCache[comments[i].UserID]
		if !ok {
			if u, err := h.userRepository.GetUserByID(comments[i].UserID); err == nil {
				author = u.ToCompact()
				authorCache[comments[i].UserID] = author
			}
		}
		comments[i].Author = author
	}
	return comments, nil
}

// UpdateComment updates an existing comment; only its author may update it
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return domainError(err)
	}
	if comment.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the comment's author")
	}

	comment.Text = req.Text
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment; only its author may delete it
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return domainError(err)
	}
	if comment.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the comment's author")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// UpvoteComment adds the requester's upvote to a comment. Upvoting twice is
// a no-op and returns the current count either way.
func (h *CommentHandler) UpvoteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if _, err := h.engagement.UpvoteComment(c.Request().Context(), user, uint(commentID)); err != nil {
		return domainError(err)
	}

	count, err := h.upvoteRepository.GetUpvoteCount(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"comment_id": commentID, "upvote_count": count})
}

// RemoveUpvote removes the requester's upvote from a comment
func (h *CommentHandler) RemoveUpvote(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.engagement.RemoveUpvote(c.Request().Context(), user, uint(commentID)); err != nil {
		return domainError(err)
	}

	count, err := h.upvoteRepository.GetUpvoteCount(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"comment_id": commentID, "upvote_count": count})
}

// CreateFeedback lets the post owner record whether a comment helped
func (h *CommentHandler) CreateFeedback(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.CreateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feedback, err := h.engagement.CreateFeedback(c.Request().Context(), user, uint(commentID), &req)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, feedback)
}

// GetFeedback returns the feedback left on a comment, if any
func (h *CommentHandler) GetFeedback(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	feedback, err := h.feedbackRepository.GetFeedbackByCommentID(uint(commentID))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, feedback)
}
