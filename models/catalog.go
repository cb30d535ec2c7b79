package models

// BottleType is a sellable catalog entry. Ids are assigned as max(existing)+1
// over the current set, so an id freed by deleting the highest entry can be
// handed out again.
type BottleType struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PaymentOption is one of a fixed enumeration of payment methods that admins
// can toggle on and off.
type PaymentOption struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

const (
	PaymentCash         = "cash"
	PaymentMobileMoney  = "mobile_money"
	PaymentBankTransfer = "bank_transfer"
	PaymentCreditCard   = "credit_card"
)

// TipOption is a percentage-based tip preset offered during checkout.
type TipOption struct {
	ID         string `json:"id"`
	Percentage int    `json:"percentage"`
	Label      string `json:"label"`
}

// NotificationPrefs controls which notification categories are delivered.
type NotificationPrefs struct {
	OrderConfirmation bool `json:"orderConfirmation"`
	DeliveryUpdates   bool `json:"deliveryUpdates"`
	Promotions        bool `json:"promotions"`
}

// AppSettings is the app-wide configuration mutable by admins only.
type AppSettings struct {
	DeliveryRadiusKm  float64           `json:"deliveryRadius"`
	MinOrderAmount    float64           `json:"minOrderAmount"`
	DeliveryFee       float64           `json:"deliveryFee"`
	NotificationPrefs NotificationPrefs `json:"notificationPrefs"`
}
