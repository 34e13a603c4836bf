package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"github.com/travel-match/backend/internal/repositories"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	bookmarkRepository   repositories.BookmarkRepository
	userRepository       repositories.UserRepository
	preferenceRepository repositories.PreferenceRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, userRepo repositories.UserRepository, prefRepo repositories.PreferenceRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository:   bookmarkRepo,
		userRepository:       userRepo,
		preferenceRepository: prefRepo,
	}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.GET("/bookmarks", h.GetBookmarks)
	g.POST("/bookmarks/:id", h.AddBookmark)
	g.DELETE("/bookmarks/:id", h.RemoveBookmark)
}

// GetBookmarks returns the authenticated user's bookmarked profiles with
// their preferences attached. Bookmarks pointing at deleted users are
// silently skipped.
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	ctx := c.Request().Context()

	ids, err := h.bookmarkRepository.ListBookmarkedUserIDs(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profiles := []models.BookmarkedProfile{}
	for _, id := range ids {
		user, err := h.userRepository.GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		profile := models.BookmarkedProfile{User: user.ToCompact()}
		pref, err := h.preferenceRepository.GetByUserID(ctx, id)
		if err == nil {
			profile.Preferences = pref
		} else if !errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		profiles = append(profiles, profile)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": profiles})
}

// AddBookmark bookmarks another user's profile. The unique index on the edge
// makes the insert the only write: a duplicate attempt conflicts instead of
// creating a second edge.
func (h *BookmarkHandler) AddBookmark(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID := c.Param("id")

	if _, err := h.userRepository.GetUserByID(c.Request().Context(), targetID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.bookmarkRepository.Add(c.Request().Context(), userID, targetID); err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, "User already bookmarked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "User bookmarked successfully"})
}

// RemoveBookmark removes a bookmarked profile
func (h *BookmarkHandler) RemoveBookmark(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.bookmarkRepository.Remove(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Bookmark removed successfully"})
}
