package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"github.com/travel-match/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository         repositories.UserRepository
	preferenceRepository   repositories.PreferenceRepository
	bookmarkRepository     repositories.BookmarkRepository
	notificationRepository repositories.NotificationRepository
	messageRepository      repositories.MessageRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, prefRepo repositories.PreferenceRepository,
	bookmarkRepo repositories.BookmarkRepository, notifRepo repositories.NotificationRepository,
	msgRepo repositories.MessageRepository) *UserHandler {
	return &UserHandler{
		userRepository:         userRepo,
		preferenceRepository:   prefRepo,
		bookmarkRepository:     bookmarkRepo,
		notificationRepository: notifRepo,
		messageRepository:      msgRepo,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/profile", h.GetProfile)
	g.PUT("/users/profile", h.UpdateProfile)
	g.DELETE("/users/profile", h.DeleteProfile)
	g.GET("/users/public/:id", h.GetPublicProfile)
}

// GetProfile returns the authenticated user's profile with preferences
// embedded when set
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := echo.Map{
		"id":              user.ID.Hex(),
		"name":            user.Name,
		"email":           user.Email,
		"profile_picture": user.ProfilePicture,
		"created_at":      user.CreatedAt,
	}

	pref, err := h.preferenceRepository.GetByUserID(c.Request().Context(), userID)
	if err == nil {
		profile["preferences"] = pref
	} else if !errors.Is(err, errs.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": profile})
}

// UpdateProfile updates the authenticated user's name or profile picture
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.ProfilePicture != "" {
		fields["profile_picture"] = req.ProfilePicture
	}
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No valid fields to update")
	}

	user, err := h.userRepository.UpdateProfile(c.Request().Context(), userID, fields)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Profile updated successfully",
		"data": echo.Map{
			"id":              user.ID.Hex(),
			"name":            user.Name,
			"email":           user.Email,
			"profile_picture": user.ProfilePicture,
		},
	})
}

// DeleteProfile deletes the authenticated user's account with its dependent
// records: preferences, bookmarks in both directions, notifications and
// messages in both directions, then the user document itself. The cascade is
// not atomic; a crash mid-way leaves orphans that never join back to an
// existing user and stay invisible to the query paths.
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	ctx := c.Request().Context()

	if err := h.preferenceRepository.DeleteByUserID(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.bookmarkRepository.DeleteByUser(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.notificationRepository.DeleteByUserID(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.messageRepository.DeleteByUser(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Account deleted successfully"})
}

// GetPublicProfile returns another user's public profile with preferences
func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	targetID := c.Param("id")

	user, err := h.userRepository.GetUserByID(c.Request().Context(), targetID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data := echo.Map{
		"id":          user.ID.Hex(),
		"name":        user.Name,
		"preferences": nil,
	}
	pref, err := h.preferenceRepository.GetByUserID(c.Request().Context(), targetID)
	if err == nil {
		data["preferences"] = pref
	} else if !errors.Is(err, errs.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": data})
}
