// Package messaging reconstructs per-peer conversations from the flat message
// log and handles message sending with its notification side effect.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"github.com/travel-match/backend/internal/repositories"
	"go.uber.org/zap"
)

// Service aggregates conversations for a user. Stateless per invocation; the
// peer set, profile lookups and latest-message lookups are separate store
// reads and may observe a concurrent send or deletion in between. That read
// skew is accepted, not fixed.
type Service struct {
	messages      repositories.MessageRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewService creates a messaging Service. A nil logger is replaced with a
// no-op logger.
func NewService(msgRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		messages:      msgRepo,
		users:         userRepo,
		notifications: notifRepo,
		logger:        logger,
	}
}

// ListConversations returns one entry per peer the user has exchanged
// messages with: the peer's public profile and the most recent message in
// either direction. Peers whose user record has been deleted are silently
// omitted. Unread counts are not tracked and always report zero.
func (s *Service) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	peerIDs, err := s.messages.DistinctPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := []models.Conversation{}
	for _, peerID := range peerIDs {
		peer, err := s.users.GetUserByID(ctx, peerID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}

		conv := models.Conversation{User: peer.ToCompact(), UnreadCount: 0}

		latest, err := s.messages.LatestBetween(ctx, userID, peerID)
		switch {
		case err == nil:
			conv.LastMessage = &models.LastMessage{
				Content:   latest.Content,
				Timestamp: latest.CreatedAt,
			}
		case errors.Is(err, errs.ErrNotFound):
			// messages deleted between the peer query and this lookup;
			// keep the peer without a last message
		default:
			return nil, err
		}

		conversations = append(conversations, conv)
	}
	return conversations, nil
}

// GetThread returns the full message history between the user and a peer,
// oldest first. Fails with errs.ErrNotFound when the peer does not exist.
func (s *Service) GetThread(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	if _, err := s.users.GetUserByID(ctx, peerID); err != nil {
		return nil, err
	}
	return s.messages.ListBetween(ctx, userID, peerID)
}

// SendMessage appends an immutable message and notifies the recipient. The
// notification is best-effort: once the message is persisted the send has
// succeeded, and a notification failure is only logged.
func (s *Service) SendMessage(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.ErrInvalidInput
	}

	if _, err := s.users.GetUserByID(ctx, recipientID); err != nil {
		return nil, err
	}
	sender, err := s.users.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, senderID, recipientID, content)
	if err != nil {
		return nil, err
	}

	notifContent := fmt.Sprintf("You received a new message from %s", sender.Name)
	if _, err := s.notifications.Create(ctx, recipientID, "message", notifContent, senderID); err != nil {
		s.logger.Warn("message notification failed",
			zap.String("recipient_id", recipientID),
			zap.Error(err))
	}
	return msg, nil
}
