package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travel-match/backend/internal/matching"
	"github.com/travel-match/backend/internal/models"
)

// MatchHandler handles travel partner matching HTTP requests
type MatchHandler struct {
	engine *matching.Engine
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(engine *matching.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// RegisterMatchRoutes registers matching routes
func (h *MatchHandler) RegisterMatchRoutes(g *echo.Group) {
	g.GET("/matches", h.GetMatches)
	g.POST("/matches/search", h.SearchMatches)
}

// GetMatches returns travel partner matches for the authenticated user
func (h *MatchHandler) GetMatches(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	matches, err := h.engine.FindMatches(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": matches})
}

// SearchMatches returns users whose preferences exactly match the populated
// criteria fields. Malformed payloads are rejected before any store access.
func (h *MatchHandler) SearchMatches(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid search criteria")
	}
	if err := c.Validate(&criteria); err != nil {
		return err
	}

	results, err := h.engine.SearchByCriteria(c.Request().Context(), criteria)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": results})
}
