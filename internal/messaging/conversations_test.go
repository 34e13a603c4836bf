package messaging

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"github.com/travel-match/backend/internal/repositories"
)

// memMessageRepo keeps messages in insertion order with deterministic,
// strictly increasing timestamps.
type memMessageRepo struct {
	msgs      []models.Message
	seq       int
	createErr error
}

var _ repositories.MessageRepository = (*memMessageRepo)(nil)

var messageEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func (m *memMessageRepo) Create(_ context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	senderObjID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	recipientObjID, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	m.seq++
	msg := models.Message{
		ID:          primitive.NewObjectID(),
		SenderID:    senderObjID,
		RecipientID: recipientObjID,
		Content:     content,
		CreatedAt:   messageEpoch.Add(time.Duration(m.seq) * time.Second),
	}
	m.msgs = append(m.msgs, msg)
	return &msg, nil
}

func (m *memMessageRepo) DistinctPeerIDs(_ context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var peers []string
	for _, msg := range m.msgs {
		if msg.SenderID.Hex() == userID && !seen[msg.RecipientID.Hex()] {
			seen[msg.RecipientID.Hex()] = true
			peers = append(peers, msg.RecipientID.Hex())
		}
	}
	for _, msg := range m.msgs {
		if msg.RecipientID.Hex() == userID && !seen[msg.SenderID.Hex()] {
			seen[msg.SenderID.Hex()] = true
			peers = append(peers, msg.SenderID.Hex())
		}
	}
	return peers, nil
}

func (m *memMessageRepo) LatestBetween(_ context.Context, userID, peerID string) (*models.Message, error) {
	var latest *models.Message
	for i := range m.msgs {
		msg := &m.msgs[i]
		if !between(msg, userID, peerID) {
			continue
		}
		if latest == nil || !msg.CreatedAt.Before(latest.CreatedAt) {
			latest = msg
		}
	}
	if latest == nil {
		return nil, errs.ErrNotFound
	}
	return latest, nil
}

func (m *memMessageRepo) ListBetween(_ context.Context, userID, peerID string) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.msgs {
		if between(&msg, userID, peerID) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memMessageRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := m.msgs[:0]
	for _, msg := range m.msgs {
		if msg.SenderID.Hex() != userID && msg.RecipientID.Hex() != userID {
			kept = append(kept, msg)
		}
	}
	m.msgs = kept
	return nil
}

func between(msg *models.Message, userID, peerID string) bool {
	return (msg.SenderID.Hex() == userID && msg.RecipientID.Hex() == peerID) ||
		(msg.SenderID.Hex() == peerID && msg.RecipientID.Hex() == userID)
}

type memUserRepo struct {
	users map[string]*models.User
}

var _ repositories.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (f *memUserRepo) add(name string) *models.User {
	u := &models.User{ID: primitive.NewObjectID(), Name: name, Email: name + "@example.com"}
	f.users[u.ID.Hex()] = u
	return u
}

func (f *memUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *memUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *memUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *memUserRepo) UpdateProfile(_ context.Context, id string, fields bson.M) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		u.Name = name
	}
	return u, nil
}

func (f *memUserRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type memNotificationRepo struct {
	notifications []models.Notification
	createErr     error
}

var _ repositories.NotificationRepository = (*memNotificationRepo)(nil)

func (f *memNotificationRepo) Create(_ context.Context, userID, notifType, content, relatedID string) (*models.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    objID,
		Type:      notifType,
		Content:   content,
		RelatedID: relatedID,
		CreatedAt: time.Now(),
	}
	f.notifications = append(f.notifications, n)
	return &n, nil
}

func (f *memNotificationRepo) GetByUserID(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID.Hex() == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *memNotificationRepo) MarkAsRead(_ context.Context, notificationID, userID string) error {
	for i := range f.notifications {
		if f.notifications[i].ID.Hex() == notificationID && f.notifications[i].UserID.Hex() == userID {
			f.notifications[i].Read = true
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *memNotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	for i := range f.notifications {
		if f.notifications[i].UserID.Hex() == userID {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *memNotificationRepo) DeleteByUserID(_ context.Context, userID string) error {
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID.Hex() != userID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func newTestService() (*Service, *memMessageRepo, *memUserRepo, *memNotificationRepo) {
	msgs := &memMessageRepo{}
	users := newMemUserRepo()
	notifs := &memNotificationRepo{}
	return NewService(msgs, users, notifs, nil), msgs, users, notifs
}

func TestListConversations_OnePerPeerWithLatestMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, users, _ := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")
	carol := users.add("Carol")

	_, err := svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), "hi bob")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, bob.ID.Hex(), alice.ID.Hex(), "hi alice")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), "see you in paris")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, carol.ID.Hex(), alice.ID.Hex(), "hello from carol")
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, alice.ID.Hex())
	require.NoError(t, err)
	require.Len(t, convs, 2)

	byPeer := make(map[string]models.Conversation)
	for _, c := range convs {
		byPeer[c.User.ID] = c
	}

	bobConv, ok := byPeer[bob.ID.Hex()]
	require.True(t, ok, "Bob missing from Alice's conversation list")
	require.NotNil(t, bobConv.LastMessage)
	assert.Equal(t, "see you in paris", bobConv.LastMessage.Content)
	assert.Equal(t, 0, bobConv.UnreadCount)

	carolConv, ok := byPeer[carol.ID.Hex()]
	require.True(t, ok, "Carol missing from Alice's conversation list")
	require.NotNil(t, carolConv.LastMessage)
	assert.Equal(t, "hello from carol", carolConv.LastMessage.Content)

	// the list is complete in both directions
	convs, err = svc.ListConversations(ctx, bob.ID.Hex())
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, alice.ID.Hex(), convs[0].User.ID)
}

func TestListConversations_NoMessagesIsEmptyList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, users, _ := newTestService()
	alice := users.add("Alice")

	convs, err := svc.ListConversations(ctx, alice.ID.Hex())
	require.NoError(t, err)
	assert.NotNil(t, convs)
	assert.Empty(t, convs)
}

func TestListConversations_OmitsDeletedPeers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, users, _ := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")

	_, err := svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), "hi")
	require.NoError(t, err)
	require.NoError(t, users.DeleteUser(ctx, bob.ID.Hex()))

	convs, err := svc.ListConversations(ctx, alice.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestGetThread_OldestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, users, _ := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")

	contents := []string{"first", "second", "third"}
	senders := []string{alice.ID.Hex(), bob.ID.Hex(), alice.ID.Hex()}
	recipients := []string{bob.ID.Hex(), alice.ID.Hex(), bob.ID.Hex()}
	for i := range contents {
		_, err := svc.SendMessage(ctx, senders[i], recipients[i], contents[i])
		require.NoError(t, err)
	}

	thread, err := svc.GetThread(ctx, alice.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	require.Len(t, thread, 3)
	for i, msg := range thread {
		assert.Equal(t, contents[i], msg.Content)
	}
	assert.True(t, thread[0].CreatedAt.Before(thread[1].CreatedAt))
	assert.True(t, thread[1].CreatedAt.Before(thread[2].CreatedAt))
}

func TestGetThread_UnknownPeer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, users, _ := newTestService()
	alice := users.add("Alice")

	_, err := svc.GetThread(ctx, alice.ID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSendMessage_RejectsEmptyContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, msgs, users, _ := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), content)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	}
	assert.Empty(t, msgs.msgs, "no message should be persisted on rejected input")
}

func TestSendMessage_UnknownRecipient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, msgs, users, _ := newTestService()
	alice := users.add("Alice")

	_, err := svc.SendMessage(ctx, alice.ID.Hex(), primitive.NewObjectID().Hex(), "hello?")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, msgs.msgs)
}

func TestSendMessage_NotifiesRecipient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, users, notifs := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")

	msg, err := svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), "hi bob")
	require.NoError(t, err)
	assert.Equal(t, "hi bob", msg.Content)

	require.Len(t, notifs.notifications, 1)
	n := notifs.notifications[0]
	assert.Equal(t, bob.ID, n.UserID)
	assert.Equal(t, "message", n.Type)
	assert.Equal(t, "You received a new message from Alice", n.Content)
	assert.Equal(t, alice.ID.Hex(), n.RelatedID)
	assert.False(t, n.Read)
}

func TestSendMessage_StoreFailurePropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, msgs, users, notifs := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")

	msgs.createErr = errors.New("insert failed")

	_, err := svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), "hi")
	require.Error(t, err)
	assert.Empty(t, notifs.notifications, "no notification without a persisted message")
}

func TestSendMessage_NotificationFailureDoesNotFailSend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, msgs, users, notifs := newTestService()
	alice := users.add("Alice")
	bob := users.add("Bob")

	notifs.createErr = errors.New("notification store down")

	msg, err := svc.SendMessage(ctx, alice.ID.Hex(), bob.ID.Hex(), "still delivered")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Len(t, msgs.msgs, 1)
}
