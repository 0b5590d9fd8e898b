package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
)

// SavedPostHandler handles bookmark HTTP requests
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	postRepository      repositories.PostRepository
	userRepository      repositories.UserRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *SavedPostHandler {
	return &SavedPostHandler{
		savedPostRepository: savedPostRepo,
		postRepository:      postRepo,
		userRepository:      userRepo,
	}
}

// RegisterSavedPostRoutes registers bookmark-related routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/save", h.SavePost)
	g.DELETE("/posts/:post_id/save", h.UnsavePost)
	g.GET("/saved-posts", h.GetSavedPosts)
}

// SavePost bookmarks a post for the requester. Saving twice is a no-op.
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return domainError(err)
	}

	saved, err := h.savedPostRepository.HasUserSavedPost(user.ID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !saved {
		if err := h.savedPostRepository.SavePost(&models.SavedPost{UserID: user.ID, PostID: postID}); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "is_saved": true})
}

// UnsavePost removes the requester's bookmark from a post
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	if _, err := h.savedPostRepository.UnsavePost(user.ID, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "is_saved": false})
}

// GetSavedPosts lists the requester's bookmarked posts, newest bookmark first.
// Bookmarks whose post has since been deleted are skipped.
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	saved, err := h.savedPostRepository.GetSavedPosts(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts := make([]models.Post, 0, len(saved))
	for _, s := range saved {
		post, err := h.postRepository.GetPostByID(c.Request().Context(), s.PostID)
		if err != nil {
			continue
		}
		posts = append(posts, *post)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}
