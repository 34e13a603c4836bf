package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"github.com/travel-match/backend/internal/repositories"
)

// PreferenceHandler handles travel preference HTTP requests
type PreferenceHandler struct {
	preferenceRepository   repositories.PreferenceRepository
	notificationRepository repositories.NotificationRepository
	logger                 *zap.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(prefRepo repositories.PreferenceRepository, notifRepo repositories.NotificationRepository, logger *zap.Logger) *PreferenceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceHandler{
		preferenceRepository:   prefRepo,
		notificationRepository: notifRepo,
		logger:                 logger,
	}
}

// RegisterPreferenceRoutes registers preference routes
func (h *PreferenceHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.GET("/preferences", h.GetPreferences)
	g.POST("/preferences", h.CreatePreferences)
	g.PUT("/preferences", h.UpdatePreferences)
}

// GetPreferences returns the authenticated user's travel preferences, or a
// null payload when none are set yet.
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pref, err := h.preferenceRepository.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": nil})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": pref})
}

// CreatePreferences creates or replaces the user's travel preferences
func (h *PreferenceHandler) CreatePreferences(c echo.Context) error {
	return h.upsert(c, http.StatusCreated, false)
}

// UpdatePreferences replaces existing preferences; fails when none exist yet
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	return h.upsert(c, http.StatusOK, true)
}

func (h *PreferenceHandler) upsert(c echo.Context, successStatus int, requireExisting bool) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpsertPreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if requireExisting {
		if _, err := h.preferenceRepository.GetByUserID(ctx, userID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Preferences not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	pref, err := h.preferenceRepository.Upsert(ctx, userID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// best-effort: the preference write stands even if this fails
	if _, err := h.notificationRepository.Create(ctx, userID, "preferences",
		"Your travel preferences have been updated.", ""); err != nil {
		h.logger.Warn("preference notification failed", zap.String("user_id", userID), zap.Error(err))
	}

	return c.JSON(successStatus, echo.Map{"status": "success", "data": pref})
}
