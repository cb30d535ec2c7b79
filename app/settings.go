package app

import (
	"water-delivery-core/models"
	"water-delivery-core/settings"
)

// Catalog, payment, tip and app-settings operations. Capability checks live
// in the settings store; the facade only validates input shape.

type BottleTypeInput struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

func (c *Core) AddBottleType(in BottleTypeInput) (models.BottleType, error) {
	if err := c.validate.Struct(in); err != nil {
		return models.BottleType{}, err
	}
	return c.settings.AddBottleType(in.Name, in.Price)
}

func (c *Core) UpdateBottleType(id int, upd settings.BottleTypeUpdate) error {
	if err := c.validate.Struct(upd); err != nil {
		return err
	}
	return c.settings.UpdateBottleType(id, upd)
}

func (c *Core) DeleteBottleType(id int) error {
	return c.settings.DeleteBottleType(id)
}

func (c *Core) BottleTypes() []models.BottleType {
	return c.settings.BottleTypes()
}

func (c *Core) PaymentOptions() []models.PaymentOption {
	return c.settings.PaymentOptions()
}

func (c *Core) EnabledPaymentOptions() []models.PaymentOption {
	return c.settings.EnabledPaymentOptions()
}

func (c *Core) UpdatePaymentOption(id string, enabled bool) error {
	return c.settings.UpdatePaymentOption(id, enabled)
}

func (c *Core) TipOptions() []models.TipOption {
	return c.settings.TipOptions()
}

func (c *Core) UpdateTipOption(id string, upd settings.TipOptionUpdate) error {
	if err := c.validate.Struct(upd); err != nil {
		return err
	}
	return c.settings.UpdateTipOption(id, upd)
}

func (c *Core) AppSettings() models.AppSettings {
	return c.settings.AppSettings()
}

func (c *Core) UpdateAppSettings(upd settings.AppSettingsUpdate) error {
	if err := c.validate.Struct(upd); err != nil {
		return err
	}
	return c.settings.UpdateAppSettings(upd)
}
