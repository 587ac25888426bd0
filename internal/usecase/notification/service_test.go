package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainNotification "admin-dashboard/internal/domain/notification"
	appErrors "admin-dashboard/pkg/errors"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*domainNotification.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*domainNotification.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domainNotification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	clone := *n
	r.notifications[n.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*domainNotification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, domainNotification.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*domainNotification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainNotification.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return domainNotification.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[id]; !ok {
		return domainNotification.ErrNotificationNotFound
	}
	delete(r.notifications, id)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*domainNotification.Notification
}

func (p *fakePublisher) Publish(n *domainNotification.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
}

func TestCreateNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	publisher := &fakePublisher{}
	service := NewService(repo, publisher)
	userID := uuid.New()

	n, err := service.Create(context.Background(), &CreateRequest{
		UserID:  userID,
		Title:   "Deployment finished",
		Message: "Version 2.4.0 is live",
		Type:    domainNotification.TypeSuccess,
	})
	require.NoError(t, err)
	assert.Equal(t, domainNotification.TypeSuccess, n.Type)
	assert.False(t, n.Read)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, n.ID, publisher.published[0].ID)

	list, err := service.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateNotificationDefaultsType(t *testing.T) {
	service := NewService(newFakeNotificationRepo(), &fakePublisher{})

	n, err := service.Create(context.Background(), &CreateRequest{
		UserID:  uuid.New(),
		Title:   "Heads up",
		Message: "Something happened",
	})
	require.NoError(t, err)
	assert.Equal(t, domainNotification.TypeInfo, n.Type)
}

func TestMarkAsReadOwnershipEnforced(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewService(repo, &fakePublisher{})
	owner := uuid.New()

	n, err := service.Create(context.Background(), &CreateRequest{
		UserID:  owner,
		Title:   "For the owner",
		Message: "Only the owner may touch this",
	})
	require.NoError(t, err)

	err = service.MarkAsRead(context.Background(), n.ID, uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	require.NoError(t, service.MarkAsRead(context.Background(), n.ID, owner))
	stored, err := repo.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)
}

func TestDeleteNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewService(repo, &fakePublisher{})
	owner := uuid.New()

	n, err := service.Create(context.Background(), &CreateRequest{
		UserID:  owner,
		Title:   "Ephemeral",
		Message: "Soon to be gone",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(context.Background(), n.ID, uuid.New()), appErrors.ErrInsufficientPermissions)
	require.NoError(t, service.Delete(context.Background(), n.ID, owner))
	assert.ErrorIs(t, service.Delete(context.Background(), n.ID, owner), appErrors.ErrNotificationNotFound)
}
