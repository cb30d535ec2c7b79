package notify

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

var ErrNotFound = errors.New("notification not found")

const defaultRadiusKm = 10

// SessionSource yields the identity behind the active session, nil when
// anonymous. Used to decide whether an emitted event should raise a
// transient alert.
type SessionSource interface {
	Current() *models.Identity
}

// AlertFunc receives events visible to the active session at the moment they
// are emitted. The alert is a UI signal only and is never persisted.
type AlertFunc func(models.Notification)

// Router keeps the append-only event log and computes per-viewer visibility:
// admins see everything, deliverers see events within the delivery radius,
// customers see events addressed to them, anonymous sessions see nothing.
type Router struct {
	adapter storage.Adapter
	session SessionSource
	radius  func() float64
	alert   AlertFunc
	log     zerolog.Logger

	events []models.Notification // creation order
	nextID uint64
}

type Option func(*Router)

// WithRadiusFunc supplies the deliverer distance threshold, normally wired to
// the app settings.
func WithRadiusFunc(fn func() float64) Option {
	return func(r *Router) { r.radius = fn }
}

// WithAlertFunc installs the transient alert callback.
func WithAlertFunc(fn AlertFunc) Option {
	return func(r *Router) { r.alert = fn }
}

func NewRouter(adapter storage.Adapter, session SessionSource, log zerolog.Logger, opts ...Option) *Router {
	r := &Router{
		adapter: adapter,
		session: session,
		radius:  func() float64 { return defaultRadiusKm },
		log:     log.With().Str("component", "notify").Logger(),
		nextID:  1,
	}
	r.load()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) load() {
	raw, err := r.adapter.Load(storage.KeyNotifications)
	if err != nil {
		r.log.Warn().Err(err).Msg("loading notification log failed, starting empty")
		return
	}
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, &r.events); err != nil {
		r.log.Warn().Err(err).Msg("notification log unreadable, starting empty")
		r.events = nil
		return
	}
	for _, ev := range r.events {
		if ev.ID >= r.nextID {
			r.nextID = ev.ID + 1
		}
	}
}

func (r *Router) persist() {
	raw, err := json.Marshal(r.events)
	if err == nil {
		err = r.adapter.Save(storage.KeyNotifications, raw)
	}
	if err != nil {
		r.log.Error().Err(err).Msg("persisting notification log failed")
	}
}

// Emit appends the event with a fresh id and creation timestamp, unread. If
// the event is visible to the currently active session the alert callback
// fires.
func (r *Router) Emit(event models.Notification) uint64 {
	event.ID = r.nextID
	r.nextID++
	event.Timestamp = time.Now()
	event.Read = false
	if event.Status == "" {
		event.Status = models.StatusPending
	}
	r.events = append(r.events, event)
	r.persist()

	if r.alert != nil && r.visibleTo(r.session.Current(), event) {
		r.alert(event)
	}
	return event.ID
}

func (r *Router) visibleTo(viewer *models.Identity, event models.Notification) bool {
	if viewer == nil {
		return false
	}
	switch viewer.Role {
	case models.RoleAdmin:
		return true
	case models.RoleDeliverer:
		return event.Distance != nil && *event.Distance <= r.radius()
	default:
		return event.TargetUserID != "" && event.TargetUserID == viewer.ID
	}
}

// VisibleFor evaluates the role filter fresh on every call and returns the
// matching events newest first. Events are sorted at query time, so a
// timestamp that arrives out of creation order still sorts correctly.
func (r *Router) VisibleFor(viewer *models.Identity) []models.Notification {
	var out []models.Notification
	for _, ev := range r.events {
		if r.visibleTo(viewer, ev) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// UnreadCountFor counts unread events under the same filter as VisibleFor.
func (r *Router) UnreadCountFor(viewer *models.Identity) int {
	count := 0
	for _, ev := range r.events {
		if !ev.Read && r.visibleTo(viewer, ev) {
			count++
		}
	}
	return count
}

func (r *Router) MarkAsRead(id uint64) error {
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].Read = true
			r.persist()
			return nil
		}
	}
	return ErrNotFound
}

// MarkAllAsReadFor flips the read flag only on events currently visible to
// the viewer; everything outside that visibility stays untouched.
func (r *Router) MarkAllAsReadFor(viewer *models.Identity) {
	changed := false
	for i := range r.events {
		if !r.events[i].Read && r.visibleTo(viewer, r.events[i]) {
			r.events[i].Read = true
			changed = true
		}
	}
	if changed {
		r.persist()
	}
}

func (r *Router) Delete(id uint64) error {
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			r.persist()
			return nil
		}
	}
	return ErrNotFound
}

// ClearAllFor removes every event visible to the viewer, leaving the rest of
// the log intact.
func (r *Router) ClearAllFor(viewer *models.Identity) {
	kept := r.events[:0]
	changed := false
	for _, ev := range r.events {
		if r.visibleTo(viewer, ev) {
			changed = true
			continue
		}
		kept = append(kept, ev)
	}
	r.events = kept
	if changed {
		r.persist()
	}
}
