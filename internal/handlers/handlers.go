package handlers

import (
	"github.com/travel-match/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated caller's ID set by the JWT
// middleware. Empty when the request carries no valid claims.
func currentUserID(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}
