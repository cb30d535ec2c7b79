package settings

import (
	"water-delivery-core/models"
	"water-delivery-core/storage"
)

// PaymentOptions returns a copy of all payment options, enabled or not.
func (s *Store) PaymentOptions() []models.PaymentOption {
	out := make([]models.PaymentOption, len(s.paymentOptions))
	copy(out, s.paymentOptions)
	return out
}

// EnabledPaymentOptions filters to the options customers may pick at
// checkout.
func (s *Store) EnabledPaymentOptions() []models.PaymentOption {
	var out []models.PaymentOption
	for _, opt := range s.paymentOptions {
		if opt.Enabled {
			out = append(out, opt)
		}
	}
	return out
}

// UpdatePaymentOption toggles a payment method. Requires admin.
func (s *Store) UpdatePaymentOption(id string, enabled bool) error {
	return s.mutate(CapabilityAdmin, func() error {
		for i := range s.paymentOptions {
			if s.paymentOptions[i].ID == id {
				s.paymentOptions[i].Enabled = enabled
				s.persist(storage.KeyPayments, s.paymentOptions)
				return nil
			}
		}
		return ErrNotFound
	})
}

// TipOptions returns a copy of the tip presets.
func (s *Store) TipOptions() []models.TipOption {
	out := make([]models.TipOption, len(s.tipOptions))
	copy(out, s.tipOptions)
	return out
}

// TipOptionUpdate merges into an existing preset; nil leaves a field as-is.
type TipOptionUpdate struct {
	Percentage *int `validate:"omitempty,gte=0,lte=100"`
	Label      *string
}

// UpdateTipOption edits a tip preset. Requires admin.
func (s *Store) UpdateTipOption(id string, upd TipOptionUpdate) error {
	return s.mutate(CapabilityAdmin, func() error {
		for i := range s.tipOptions {
			if s.tipOptions[i].ID != id {
				continue
			}
			if upd.Percentage != nil {
				s.tipOptions[i].Percentage = *upd.Percentage
			}
			if upd.Label != nil {
				s.tipOptions[i].Label = *upd.Label
			}
			s.persist(storage.KeyTips, s.tipOptions)
			return nil
		}
		return ErrNotFound
	})
}

func defaultPaymentOptions() []models.PaymentOption {
	return []models.PaymentOption{
		{ID: models.PaymentCash, Name: "Cash on Delivery", Enabled: true},
		{ID: models.PaymentMobileMoney, Name: "Mobile Money", Enabled: true},
		{ID: models.PaymentBankTransfer, Name: "Bank Transfer", Enabled: true},
		{ID: models.PaymentCreditCard, Name: "Credit Card", Enabled: true},
	}
}

func defaultTipOptions() []models.TipOption {
	return []models.TipOption{
		{ID: "none", Percentage: 0, Label: "No tip"},
		{ID: "ten", Percentage: 10, Label: "10%"},
		{ID: "fifteen", Percentage: 15, Label: "15%"},
		{ID: "twenty", Percentage: 20, Label: "20%"},
	}
}
