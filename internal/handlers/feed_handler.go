package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"github.com/petcircle/backend/internal/services"
)

// FeedHandler serves the merged activity feed
type FeedHandler struct {
	feedService    *services.FeedService
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{feedService: feedService, userRepository: userRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/likes", h.GetLikesPerformed)
	g.GET("/feed/comments", h.GetCommentsPerformed)
}

// GetFeed returns the requester's merged activity feed, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	items, err := h.feedService.GetFeed(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, limit := pageParams(c, 20)
	paged := paginateFeed(items, page, limit)

	return c.JSON(http.StatusOK, echo.Map{
		"feed": paged,
		"meta": echo.Map{"currentPage": page, "itemsPerPage": limit, "totalItems": len(items)},
	})
}

// GetLikesPerformed returns the likes the requester has given
func (h *FeedHandler) GetLikesPerformed(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	items, err := h.feedService.GetLikesPerformed(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"likes": items})
}

// GetCommentsPerformed returns the comments the requester has made
func (h *FeedHandler) GetCommentsPerformed(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	items, err := h.feedService.GetCommentsPerformed(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": items})
}

// paginateFeed slices one page out of the already-merged feed
func paginateFeed(items []models.FeedItem, page, limit int) []models.FeedItem {
	start := (page - 1) * limit
	if start >= len(items) {
		return []models.FeedItem{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
