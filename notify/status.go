package notify

import (
	"fmt"

	"water-delivery-core/models"
)

// transition defines a valid status change and the role allowed to make it.
type transition struct {
	From  models.NotificationStatus
	To    models.NotificationStatus
	Actor models.Role
}

// validTransitions is the authoritative lifecycle of an order event.
var validTransitions = []transition{
	// Sellers confirm a pending order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: models.RoleAdmin},
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: models.RoleDeliverer},
	// Pending orders can be cancelled by the customer or an admin
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleAdmin},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleCustomer},
	// Confirmed orders go out for delivery, or an admin pulls them
	{From: models.StatusConfirmed, To: models.StatusOutForDelivery, Actor: models.RoleDeliverer},
	{From: models.StatusConfirmed, To: models.StatusOutForDelivery, Actor: models.RoleAdmin},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: models.RoleAdmin},
	// The deliverer completes the run
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: models.RoleDeliverer},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: models.RoleAdmin},
}

type transitionKey struct {
	From  models.NotificationStatus
	To    models.NotificationStatus
	Actor models.Role
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// NextStatuses returns all statuses reachable from the given one, regardless
// of actor.
func NextStatuses(from models.NotificationStatus) []models.NotificationStatus {
	var nexts []models.NotificationStatus
	seen := map[models.NotificationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == from && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether actor may move an event from one status to
// another.
func CanTransition(from, to models.NotificationStatus, actor models.Role) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s to %s is not allowed for role %q", from, to, actor)
}

// AdvanceStatus moves an event through its lifecycle on behalf of the given
// role.
func (r *Router) AdvanceStatus(id uint64, to models.NotificationStatus, actor models.Role) error {
	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}
		if err := CanTransition(r.events[i].Status, to, actor); err != nil {
			return err
		}
		r.events[i].Status = to
		r.persist()
		return nil
	}
	return ErrNotFound
}
