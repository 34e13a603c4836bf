package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/messaging"
	"github.com/travel-match/backend/internal/models"
)

// MessageHandler handles messaging HTTP requests
type MessageHandler struct {
	conversations *messaging.Service
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(svc *messaging.Service) *MessageHandler {
	return &MessageHandler{conversations: svc}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetConversations)
	g.GET("/messages/:id", h.GetThread)
	g.POST("/messages/:id", h.SendMessage)
}

// GetConversations returns all conversations for the authenticated user
func (h *MessageHandler) GetConversations(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversations, err := h.conversations.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": conversations})
}

// GetThread returns the full message history with another user, oldest first
func (h *MessageHandler) GetThread(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	messages, err := h.conversations.GetThread(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "data": messages})
}

// SendMessage sends a message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.conversations.SendMessage(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, errs.ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, "No message content provided")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "success", "data": msg})
}
