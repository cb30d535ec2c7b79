package app

import (
	"fmt"
	"math"

	"water-delivery-core/models"
)

type OrderItemInput struct {
	BottleTypeID int `json:"bottleTypeId" validate:"required"`
	Quantity     int `json:"quantity" validate:"required,gt=0"`
}

type OrderInput struct {
	Name            string           `json:"name" validate:"required"`
	Phone           string           `json:"phone" validate:"required"`
	Email           string           `json:"email" validate:"omitempty,email"`
	Address         string           `json:"address"`
	Location        *models.LatLng   `json:"location" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	PaymentOptionID string           `json:"paymentOptionId" validate:"required"`
	TipOptionID     string           `json:"tipOptionId"`
	CustomTip       float64          `json:"customTip" validate:"gte=0"`
	DistanceKm      float64          `json:"distanceKm" validate:"gte=0"`
	Notes           string           `json:"notes"`
}

type OrderSummary struct {
	ItemsTotal     float64 `json:"itemsTotal"`
	DeliveryFee    float64 `json:"deliveryFee"`
	Tip            float64 `json:"tip"`
	Total          float64 `json:"total"`
	NotificationID uint64  `json:"notificationId"`
}

// PlaceOrder prices the requested bottles against the catalog, applies the
// delivery fee and tip, and emits the order event that notifies sellers in
// range. A customer session gets the event addressed back to it as an order
// confirmation.
func (c *Core) PlaceOrder(in OrderInput) (OrderSummary, error) {
	if err := c.validate.Struct(in); err != nil {
		return OrderSummary{}, err
	}
	if err := c.checkPaymentOption(in.PaymentOptionID); err != nil {
		return OrderSummary{}, err
	}

	catalog := c.settings.BottleTypes()
	priceByID := make(map[int]float64, len(catalog))
	for _, t := range catalog {
		priceByID[t.ID] = t.Price
	}

	itemsTotal := 0.0
	for _, item := range in.Items {
		price, ok := priceByID[item.BottleTypeID]
		if !ok {
			return OrderSummary{}, fmt.Errorf("unknown bottle type %d", item.BottleTypeID)
		}
		itemsTotal += price * float64(item.Quantity)
	}

	appSettings := c.settings.AppSettings()
	if itemsTotal < appSettings.MinOrderAmount {
		return OrderSummary{}, fmt.Errorf("order total %.2f is below the minimum of %.2f", itemsTotal, appSettings.MinOrderAmount)
	}

	tip := c.tipAmount(in, itemsTotal)
	total := itemsTotal + appSettings.DeliveryFee + tip

	targetUserID := ""
	if current := c.sessions.Current(); current != nil && current.Role == models.RoleCustomer {
		targetUserID = current.ID
	}

	distance := in.DistanceKm
	id := c.router.Emit(models.Notification{
		Type:         models.NotificationOrder,
		Title:        "New Water Order",
		Message:      fmt.Sprintf("%s placed an order for K%.2f", in.Name, total),
		Status:       models.StatusPending,
		Location:     in.Location,
		Distance:     &distance,
		UserInfo:     &models.ContactInfo{Name: in.Name, Phone: in.Phone},
		TargetUserID: targetUserID,
	})

	c.log.Info().
		Float64("total", total).
		Int("items", len(in.Items)).
		Uint64("notification_id", id).
		Msg("order placed")

	return OrderSummary{
		ItemsTotal:     itemsTotal,
		DeliveryFee:    appSettings.DeliveryFee,
		Tip:            tip,
		Total:          total,
		NotificationID: id,
	}, nil
}

func (c *Core) checkPaymentOption(id string) error {
	for _, opt := range c.settings.EnabledPaymentOptions() {
		if opt.ID == id {
			return nil
		}
	}
	return fmt.Errorf("payment option %q is not available", id)
}

// tipAmount resolves the tip: an explicit custom amount wins, otherwise the
// selected preset's percentage of the items total, rounded to the nearest
// whole unit.
func (c *Core) tipAmount(in OrderInput, itemsTotal float64) float64 {
	if in.CustomTip > 0 {
		return in.CustomTip
	}
	if in.TipOptionID == "" {
		return 0
	}
	for _, opt := range c.settings.TipOptions() {
		if opt.ID == in.TipOptionID {
			return math.Round(itemsTotal * float64(opt.Percentage) / 100)
		}
	}
	return 0
}
