package models

import "time"

// NotificationType categorizes an event for display.
type NotificationType string

const (
	NotificationOrder    NotificationType = "order"
	NotificationDelivery NotificationType = "delivery"
	NotificationSystem   NotificationType = "system"
	NotificationPromo    NotificationType = "promo"
)

// NotificationStatus represents the lifecycle state of an order event.
type NotificationStatus string

const (
	StatusPending        NotificationStatus = "pending"
	StatusConfirmed      NotificationStatus = "confirmed"
	StatusOutForDelivery NotificationStatus = "out_for_delivery"
	StatusDelivered      NotificationStatus = "delivered"
	StatusCancelled      NotificationStatus = "cancelled"
)

// LatLng is a geographic point attached to order events.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ContactInfo carries the ordering customer's name and phone so deliverers
// can reach them.
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Notification is one entry of the append-only event log. Optional fields are
// modeled explicitly rather than as an open property bag: Distance is the
// event's proximity to a deliverer and drives deliverer visibility,
// TargetUserID addresses an event to a single customer.
type Notification struct {
	ID           uint64             `json:"id"`
	Type         NotificationType   `json:"type"`
	Title        string             `json:"title"`
	Message      string             `json:"message"`
	Timestamp    time.Time          `json:"timestamp"`
	Status       NotificationStatus `json:"status"`
	Location     *LatLng            `json:"location,omitempty"`
	Distance     *float64           `json:"distance,omitempty"`
	UserInfo     *ContactInfo       `json:"userInfo,omitempty"`
	Read         bool               `json:"read"`
	TargetUserID string             `json:"targetUserId,omitempty"`
}
