package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/petcircle/backend/internal/models"
	"github.com/petcircle/backend/internal/repositories"
	"github.com/petcircle/backend/internal/services"
	"gorm.io/gorm"
)

// getUserIDFromContext extracts the authenticated user ID from the JWT claims
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// currentUser loads the full authenticated user for the request
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := users.GetUserByID(id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}
	return user, nil
}

// domainError maps domain errors to HTTP errors. Not-found and invariant
// violations surface with distinct statuses; anything else is a 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPostNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrInvalidPostID),
		errors.Is(err, models.ErrInvalidActivity),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrNotPetOwner):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrFeedbackNotPostOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrFeedbackExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pageParams reads page/limit query parameters with sane bounds
func pageParams(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = defaultLimit
	}
	return page, limit
}
