package app

import (
	"water-delivery-core/models"
)

type NotificationInput struct {
	Type         models.NotificationType   `json:"type"`
	Title        string                    `json:"title" validate:"required"`
	Message      string                    `json:"message" validate:"required"`
	Status       models.NotificationStatus `json:"status"`
	Location     *models.LatLng            `json:"location"`
	Distance     *float64                  `json:"distance" validate:"omitempty,gte=0"`
	UserInfo     *models.ContactInfo       `json:"userInfo"`
	TargetUserID string                    `json:"targetUserId"`
}

// EmitNotification appends an event to the log and returns its id.
func (c *Core) EmitNotification(in NotificationInput) (uint64, error) {
	if err := c.validate.Struct(in); err != nil {
		return 0, err
	}
	if in.Type == "" {
		in.Type = models.NotificationOrder
	}
	return c.router.Emit(models.Notification{
		Type:         in.Type,
		Title:        in.Title,
		Message:      in.Message,
		Status:       in.Status,
		Location:     in.Location,
		Distance:     in.Distance,
		UserInfo:     in.UserInfo,
		TargetUserID: in.TargetUserID,
	}), nil
}

// QueryVisibleNotifications returns the events the active session may see,
// newest first.
func (c *Core) QueryVisibleNotifications() []models.Notification {
	return c.router.VisibleFor(c.sessions.Current())
}

func (c *Core) QueryUnreadCount() int {
	return c.router.UnreadCountFor(c.sessions.Current())
}

func (c *Core) MarkNotificationRead(id uint64) error {
	return c.router.MarkAsRead(id)
}

// MarkAllNotificationsRead flips the read flag on the events visible to the
// active session only.
func (c *Core) MarkAllNotificationsRead() {
	c.router.MarkAllAsReadFor(c.sessions.Current())
}

func (c *Core) DeleteNotification(id uint64) error {
	return c.router.Delete(id)
}

// ClearAllNotifications removes every event visible to the active session.
func (c *Core) ClearAllNotifications() {
	c.router.ClearAllFor(c.sessions.Current())
}

// AdvanceNotificationStatus moves an order event through its lifecycle on
// behalf of the signed-in role.
func (c *Core) AdvanceNotificationStatus(id uint64, to models.NotificationStatus) error {
	current := c.sessions.Current()
	if current == nil {
		return ErrNotAuthenticated
	}
	return c.router.AdvanceStatus(id, to, current.Role)
}
