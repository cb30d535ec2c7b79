package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

// stubSession returns a fixed identity as the active session.
type stubSession struct {
	identity *models.Identity
}

func (s *stubSession) Current() *models.Identity { return s.identity }

var (
	adminViewer     = &models.Identity{ID: "admin-1", Username: "Admin", Role: models.RoleAdmin, Name: "System Admin"}
	delivererViewer = &models.Identity{ID: "d1", Username: "bob", Role: models.RoleDeliverer, Name: "Bob"}
	customerViewer  = &models.Identity{ID: "c1", Username: "carol", Role: models.RoleCustomer, Name: "Carol"}
)

func newTestRouter(t *testing.T, opts ...Option) (*Router, *storage.MemoryAdapter) {
	t.Helper()
	adapter := storage.NewMemoryAdapter()
	return NewRouter(adapter, &stubSession{}, zerolog.Nop(), opts...), adapter
}

func floatPtr(v float64) *float64 { return &v }

func orderEvent(distance float64) models.Notification {
	return models.Notification{
		Type:     models.NotificationOrder,
		Title:    "New Water Order",
		Message:  "order",
		Distance: floatPtr(distance),
	}
}

func TestEmit_AssignsMonotonicIDsAndDefaults(t *testing.T) {
	router, _ := newTestRouter(t)
	first := router.Emit(orderEvent(5))
	second := router.Emit(orderEvent(5))
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)

	events := router.VisibleFor(adminViewer)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.False(t, ev.Read)
		assert.False(t, ev.Timestamp.IsZero())
		assert.Equal(t, models.StatusPending, ev.Status)
	}
}

func TestEmit_IDCounterResumesAfterReload(t *testing.T) {
	router, adapter := newTestRouter(t)
	router.Emit(orderEvent(5))
	router.Emit(orderEvent(5))
	require.NoError(t, router.Delete(1))

	reloaded := NewRouter(adapter, &stubSession{}, zerolog.Nop())
	id := reloaded.Emit(orderEvent(5))
	assert.Equal(t, uint64(3), id, "counter resumes past the highest surviving id")
}

func TestVisibleFor_RoleFilters(t *testing.T) {
	router, _ := newTestRouter(t)
	router.Emit(orderEvent(5))  // in range
	router.Emit(orderEvent(25)) // out of range
	router.Emit(models.Notification{Type: models.NotificationDelivery, Title: "t", Message: "for carol", TargetUserID: "c1"})
	router.Emit(models.Notification{Type: models.NotificationSystem, Title: "t", Message: "untargeted"})

	assert.Len(t, router.VisibleFor(adminViewer), 4, "admin sees everything")
	assert.Len(t, router.VisibleFor(delivererViewer), 1, "deliverer sees events in radius only")
	assert.Len(t, router.VisibleFor(customerViewer), 1, "customer sees addressed events only")
	assert.Empty(t, router.VisibleFor(nil), "anonymous sees nothing")
}

func TestVisibleFor_DelivererThreshold(t *testing.T) {
	radius := 10.0
	router, _ := newTestRouter(t, WithRadiusFunc(func() float64 { return radius }))
	router.Emit(orderEvent(5))

	assert.Len(t, router.VisibleFor(delivererViewer), 1, "distance 5 within threshold 10")
	radius = 3
	assert.Empty(t, router.VisibleFor(delivererViewer), "distance 5 beyond threshold 3")
	assert.Len(t, router.VisibleFor(adminViewer), 1, "admin ignores distance")
}

func TestVisibleFor_DelivererIgnoresEventsWithoutDistance(t *testing.T) {
	router, _ := newTestRouter(t)
	router.Emit(models.Notification{Type: models.NotificationSystem, Title: "t", Message: "no distance"})
	assert.Empty(t, router.VisibleFor(delivererViewer))
}

func TestVisibleFor_SortsByTimestampDescending(t *testing.T) {
	// Preload storage with timestamps out of creation order; sorting happens
	// at query time.
	now := time.Now()
	stored := []models.Notification{
		{ID: 1, Title: "older", Message: "m", Timestamp: now.Add(-time.Hour)},
		{ID: 2, Title: "newest", Message: "m", Timestamp: now},
		{ID: 3, Title: "oldest", Message: "m", Timestamp: now.Add(-2 * time.Hour)},
	}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	adapter := storage.NewMemoryAdapter()
	require.NoError(t, adapter.Save(storage.KeyNotifications, raw))

	router := NewRouter(adapter, &stubSession{}, zerolog.Nop())
	events := router.VisibleFor(adminViewer)
	require.Len(t, events, 3)
	assert.Equal(t, "newest", events[0].Title)
	assert.Equal(t, "older", events[1].Title)
	assert.Equal(t, "oldest", events[2].Title)
}

func TestUnreadCountFor(t *testing.T) {
	router, _ := newTestRouter(t)
	router.Emit(orderEvent(5))
	id := router.Emit(orderEvent(5))
	router.Emit(orderEvent(25))

	assert.Equal(t, 3, router.UnreadCountFor(adminViewer))
	assert.Equal(t, 2, router.UnreadCountFor(delivererViewer))
	assert.Equal(t, 0, router.UnreadCountFor(nil))

	require.NoError(t, router.MarkAsRead(id))
	assert.Equal(t, 2, router.UnreadCountFor(adminViewer))
	assert.Equal(t, 1, router.UnreadCountFor(delivererViewer))
}

func TestMarkAllAsReadFor_OnlyTouchesVisibleEvents(t *testing.T) {
	router, _ := newTestRouter(t)
	router.Emit(orderEvent(5))  // visible to deliverer
	router.Emit(orderEvent(25)) // admin only

	router.MarkAllAsReadFor(delivererViewer)

	events := router.VisibleFor(adminViewer)
	require.Len(t, events, 2)
	byID := map[uint64]models.Notification{}
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	assert.True(t, byID[1].Read, "in-range event flipped")
	assert.False(t, byID[2].Read, "event outside deliverer visibility untouched")
}

func TestMarkAsReadAndDelete_MissingID(t *testing.T) {
	router, _ := newTestRouter(t)
	assert.ErrorIs(t, router.MarkAsRead(99), ErrNotFound)
	assert.ErrorIs(t, router.Delete(99), ErrNotFound)
}

func TestClearAllFor_RespectsVisibility(t *testing.T) {
	router, _ := newTestRouter(t)
	router.Emit(orderEvent(5))
	router.Emit(orderEvent(25))

	router.ClearAllFor(delivererViewer)
	assert.Len(t, router.VisibleFor(adminViewer), 1, "out-of-range event survives")
}

func TestEmit_AlertFiresForVisibleSessionOnly(t *testing.T) {
	session := &stubSession{identity: delivererViewer}
	var alerts []models.Notification
	adapter := storage.NewMemoryAdapter()
	router := NewRouter(adapter, session, zerolog.Nop(),
		WithAlertFunc(func(n models.Notification) { alerts = append(alerts, n) }))

	router.Emit(orderEvent(5))
	router.Emit(orderEvent(25))
	require.Len(t, alerts, 1, "only the in-range event alerts the deliverer")
	assert.Equal(t, uint64(1), alerts[0].ID)

	session.identity = nil
	router.Emit(orderEvent(5))
	assert.Len(t, alerts, 1, "anonymous session never alerts")
}

func TestAlert_IsNotPersisted(t *testing.T) {
	session := &stubSession{identity: adminViewer}
	adapter := storage.NewMemoryAdapter()
	router := NewRouter(adapter, session, zerolog.Nop(),
		WithAlertFunc(func(models.Notification) {}))
	router.Emit(orderEvent(5))

	raw, err := adapter.Load(storage.KeyNotifications)
	require.NoError(t, err)
	var stored []models.Notification
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, 1, "only the event itself is written")
}
