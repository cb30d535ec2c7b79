package settings

import (
	"water-delivery-core/models"
	"water-delivery-core/storage"
)

// AppSettings returns the current app-wide settings.
func (s *Store) AppSettings() models.AppSettings {
	return s.appSettings
}

// DeliveryRadiusKm is the distance threshold within which deliverers receive
// order notifications.
func (s *Store) DeliveryRadiusKm() float64 {
	return s.appSettings.DeliveryRadiusKm
}

// AppSettingsUpdate merges into the app settings; nil leaves a field as-is.
type AppSettingsUpdate struct {
	DeliveryRadiusKm  *float64 `validate:"omitempty,gt=0"`
	MinOrderAmount    *float64 `validate:"omitempty,gte=0"`
	DeliveryFee       *float64 `validate:"omitempty,gte=0"`
	NotificationPrefs *models.NotificationPrefs
}

// UpdateAppSettings applies upd. Requires admin.
func (s *Store) UpdateAppSettings(upd AppSettingsUpdate) error {
	return s.mutate(CapabilityAdmin, func() error {
		if upd.DeliveryRadiusKm != nil {
			s.appSettings.DeliveryRadiusKm = *upd.DeliveryRadiusKm
		}
		if upd.MinOrderAmount != nil {
			s.appSettings.MinOrderAmount = *upd.MinOrderAmount
		}
		if upd.DeliveryFee != nil {
			s.appSettings.DeliveryFee = *upd.DeliveryFee
		}
		if upd.NotificationPrefs != nil {
			s.appSettings.NotificationPrefs = *upd.NotificationPrefs
		}
		s.persist(storage.KeyAppSettings, s.appSettings)
		return nil
	})
}

// DefaultAppSettings matches the defaults of the client this engine replaces.
func DefaultAppSettings() models.AppSettings {
	return models.AppSettings{
		DeliveryRadiusKm: 10,
		MinOrderAmount:   0,
		DeliveryFee:      0,
		NotificationPrefs: models.NotificationPrefs{
			OrderConfirmation: true,
			DeliveryUpdates:   true,
			Promotions:        false,
		},
	}
}
