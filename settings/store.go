package settings

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

var (
	ErrForbidden = errors.New("operation not permitted for current role")
	ErrNotFound  = errors.New("entry not found")
)

// Capability names the permission a mutator requires.
type Capability string

const (
	CapabilitySeller Capability = "seller"
	CapabilityAdmin  Capability = "admin"
)

// CapabilitySource yields the capability flags of the active session.
type CapabilitySource interface {
	Capabilities() models.Capabilities
}

// Store holds the mutable shared configuration: the bottle catalog, payment
// and tip options and the app-wide settings. Catalog mutators require the
// seller capability, everything else requires admin. Reads are ungated.
type Store struct {
	adapter storage.Adapter
	session CapabilitySource
	log     zerolog.Logger

	bottleTypes    []models.BottleType
	paymentOptions []models.PaymentOption
	tipOptions     []models.TipOption
	appSettings    models.AppSettings
	revision       uint64
}

func NewStore(adapter storage.Adapter, session CapabilitySource, log zerolog.Logger) *Store {
	s := &Store{
		adapter:        adapter,
		session:        session,
		log:            log.With().Str("component", "settings").Logger(),
		bottleTypes:    defaultBottleTypes(),
		paymentOptions: defaultPaymentOptions(),
		tipOptions:     defaultTipOptions(),
		appSettings:    DefaultAppSettings(),
	}
	s.loadInto(storage.KeyCatalog, &s.bottleTypes)
	s.loadInto(storage.KeyPayments, &s.paymentOptions)
	s.loadInto(storage.KeyTips, &s.tipOptions)
	s.loadInto(storage.KeyAppSettings, &s.appSettings)
	return s
}

// mutate runs fn only when the active session holds the required capability.
// A denied or failed mutation leaves the store untouched; a successful one
// bumps the revision exactly once.
func (s *Store) mutate(required Capability, fn func() error) error {
	caps := s.session.Capabilities()
	allowed := caps.IsAdmin
	if required == CapabilitySeller {
		allowed = caps.IsSeller
	}
	if !allowed {
		s.log.Warn().Str("required", string(required)).Msg("configuration change denied")
		return ErrForbidden
	}
	if err := fn(); err != nil {
		return err
	}
	s.revision++
	return nil
}

// Revision counts successful mutations since startup.
func (s *Store) Revision() uint64 { return s.revision }

func (s *Store) loadInto(key string, v interface{}) {
	raw, err := s.adapter.Load(key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("loading configuration failed, using defaults")
		return
	}
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("configuration unreadable, using defaults")
	}
}

func (s *Store) persist(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = s.adapter.Save(key, raw)
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persisting configuration failed")
	}
}
