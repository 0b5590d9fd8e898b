package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"github.com/petcircle/backend/internal/services"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postService         *services.PostService
	postRepository      repositories.PostRepository
	userRepository      repositories.UserRepository
	likeRepository      repositories.LikeRepository
	savedPostRepository repositories.SavedPostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postService *services.PostService,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	savedPostRepo repositories.SavedPostRepository,
) *PostHandler {
	return &PostHandler{
		postService:         postService,
		postRepository:      postRepo,
		userRepository:      userRepo,
		likeRepository:      likeRepo,
		savedPostRepository: savedPostRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByUser)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// EnrichedPost is a post with author info, derived counts and user-specific flags
type EnrichedPost struct {
	models.Post
	Author     models.UserCompact `json:"author"`
	LikesCount int64              `json:"likes_count"`
	IsPaid     bool               `json:"is_paid"`
	IsLiked    bool               `json:"is_liked"`
	IsSaved    bool               `json:"is_saved"`
}

// CreatePost creates a new post; visibility flags are derived from the
// author's role and verification state
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), user, &req)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists the posts visible to the requester's audience group
func (h *PostHandler) GetPosts(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	page, limit := pageParams(c, 10)
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.GetVisiblePosts(c.Request().Context(), user.Role.IsVetGroup(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrichPosts(c, user, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": enriched},
		"meta":    echo.Map{"currentPage": page, "itemsPerPage": limit},
	})
}

// GetPost returns one post with derived counters attached
func (h *PostHandler) GetPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}

	enriched, err := h.enrichPosts(c, user, []models.Post{*post})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, enriched[0])
}

// GetPostsByUser lists a user's posts
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := pageParams(c, 10)
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.GetPostsByUserID(c.Request().Context(), uint(targetID), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrichPosts(c, user, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": enriched})
}

// UpdatePost updates a post's content; only the author may update it
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return domainError(err)
	}
	if post.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the post's author")
	}

	if req.Description != "" {
		post.Description = req.Description
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}
	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post; only the author may delete it
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return domainError(err)
	}
	if post.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the post's author")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// enrichPosts attaches author info, like counts and requester-specific flags
func (h *PostHandler) enrichPosts(c echo.Context, requester *models.User, posts []models.Post) ([]EnrichedPost, error) {
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID.Hex()
	}

	savedMap, err := h.savedPostRepository.GetSavedPostIDs(requester.ID, postIDs)
	if err != nil {
		return nil, err
	}

	authorCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		pid := p.ID.Hex()

		author, ok := authorCache[p.UserID]
		if !ok {
			if u, err := h.userRepository.GetUserByID(p.UserID); err == nil {
				author = u.ToCompact()
				authorCache[p.UserID] = author
			}
		}

		likesCount, err := h.likeRepository.GetLikesCountByPostID(pid)
		if err != nil {
			return nil, err
		}
		isLiked, err := h.likeRepository.HasUserLikedPost(pid, requester.ID)
		if err != nil {
			return nil, err
		}

		enriched[i] = EnrichedPost{
			Post:       p,
			Author:     author,
			LikesCount: likesCount,
			IsPaid:     p.IsPaid(),
			IsLiked:    isLiked,
			IsSaved:    savedMap[pid],
		}
	}
	return enriched, nil
}
