package notify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusConfirmed, models.RoleDeliverer))
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, models.RoleCustomer))
	assert.Error(t, CanTransition(models.StatusPending, models.StatusDelivered, models.RoleDeliverer), "no skipping states")
	assert.Error(t, CanTransition(models.StatusPending, models.StatusConfirmed, models.RoleCustomer), "customers cannot confirm")
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusPending, models.RoleAdmin), "delivered is terminal")
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.NotificationStatus{models.StatusConfirmed, models.StatusCancelled},
		NextStatuses(models.StatusPending))
	assert.Empty(t, NextStatuses(models.StatusDelivered))
}

func TestAdvanceStatus_FullLifecycle(t *testing.T) {
	router := NewRouter(storage.NewMemoryAdapter(), &stubSession{}, zerolog.Nop())
	id := router.Emit(orderEvent(5))

	require.NoError(t, router.AdvanceStatus(id, models.StatusConfirmed, models.RoleDeliverer))
	require.NoError(t, router.AdvanceStatus(id, models.StatusOutForDelivery, models.RoleDeliverer))
	require.NoError(t, router.AdvanceStatus(id, models.StatusDelivered, models.RoleDeliverer))

	events := router.VisibleFor(adminViewer)
	require.Len(t, events, 1)
	assert.Equal(t, models.StatusDelivered, events[0].Status)
}

func TestAdvanceStatus_RejectsInvalidActorAndMissingEvent(t *testing.T) {
	router := NewRouter(storage.NewMemoryAdapter(), &stubSession{}, zerolog.Nop())
	id := router.Emit(orderEvent(5))

	assert.Error(t, router.AdvanceStatus(id, models.StatusConfirmed, models.RoleCustomer))
	assert.ErrorIs(t, router.AdvanceStatus(99, models.StatusConfirmed, models.RoleAdmin), ErrNotFound)

	// Rejected transition leaves the status alone.
	events := router.VisibleFor(adminViewer)
	require.Len(t, events, 1)
	assert.Equal(t, models.StatusPending, events[0].Status)
}
