package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/repositories"
	"github.com/petcircle/backend/internal/services"
)

// LikeHandler handles post like HTTP requests
type LikeHandler struct {
	engagement     *services.EngagementService
	likeRepository repositories.LikeRepository
	userRepository repositories.UserRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService, likeRepo repositories.LikeRepository, userRepo repositories.UserRepository) *LikeHandler {
	return &LikeHandler{
		engagement:     engagement,
		likeRepository: likeRepo,
		userRepository: userRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes", h.GetLikeStatus)
}

// LikePost adds the requester's like to a post. Liking twice is a no-op.
func (h *LikeHandler) LikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	if _, err := h.engagement.LikePost(c.Request().Context(), user, postID); err != nil {
		return domainError(err)
	}
	return h.likeStatus(c, postID, user.ID)
}

// UnlikePost removes the requester's like from a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	if err := h.engagement.UnlikePost(c.Request().Context(), user, postID); err != nil {
		return domainError(err)
	}
	return h.likeStatus(c, postID, user.ID)
}

// GetLikeStatus returns the post's like count and whether the requester liked it
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	return h.likeStatus(c, c.Param("post_id"), user.ID)
}

func (h *LikeHandler) likeStatus(c echo.Context, postID string, userID uint) error {
	count, err := h.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	liked, err := h.likeRepository.HasUserLikedPost(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"post_id":     postID,
		"likes_count": count,
		"is_liked":    liked,
	})
}
