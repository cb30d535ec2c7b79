// Package app wires the credential store, session manager, settings store
// and notification router into the single facade the presentation layer
// talks to.
package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"water-delivery-core/auth"
	"water-delivery-core/config"
	"water-delivery-core/models"
	"water-delivery-core/notify"
	"water-delivery-core/settings"
	"water-delivery-core/storage"
)

var ErrNotAuthenticated = errors.New("no authenticated session")

type Core struct {
	cfg      *config.Config
	adapter  storage.Adapter
	users    *auth.CredentialStore
	sessions *auth.SessionManager
	settings *settings.Store
	router   *notify.Router
	validate *validator.Validate
	log      zerolog.Logger

	alert notify.AlertFunc
}

type Option func(*Core)

// WithAlert installs the transient notification callback the UI uses for
// pop-up alerts. The callback result is never persisted.
func WithAlert(fn notify.AlertFunc) Option {
	return func(c *Core) { c.alert = fn }
}

// New constructs the engine: seeds the admin account, restores any persisted
// session and loads all configuration collections, falling back to defaults
// for anything missing or unreadable.
func New(cfg *config.Config, adapter storage.Adapter, log zerolog.Logger, opts ...Option) *Core {
	c := &Core{
		cfg:      cfg,
		adapter:  adapter,
		validate: validator.New(),
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.users = auth.NewCredentialStore(adapter, log)
	c.users.EnsureSeedAdmin()

	c.sessions = auth.NewSessionManager(c.users, adapter, cfg.SessionSecret, log)
	c.sessions.RestoreSession()

	c.settings = settings.NewStore(adapter, c.sessions, log)

	routerOpts := []notify.Option{notify.WithRadiusFunc(c.deliveryRadius)}
	if c.alert != nil {
		routerOpts = append(routerOpts, notify.WithAlertFunc(c.alert))
	}
	c.router = notify.NewRouter(adapter, c.sessions, log, routerOpts...)
	return c
}

// deliveryRadius prefers the admin-configured radius and falls back to the
// process default when settings are not yet loaded.
func (c *Core) deliveryRadius() float64 {
	if r := c.settings.DeliveryRadiusKm(); r > 0 {
		return r
	}
	return c.cfg.DefaultRadiusKm
}

// ── Session ────────────────────────────────────────────────────────

func (c *Core) Login(username, password string) (models.Identity, error) {
	return c.sessions.Login(username, password)
}

type RegisterInput struct {
	Username string      `json:"username" validate:"required,min=3"`
	Password string      `json:"password" validate:"required,min=4"`
	Name     string      `json:"name" validate:"required"`
	Role     models.Role `json:"role" validate:"required"`
	Phone    string      `json:"phone"`
	Email    string      `json:"email" validate:"omitempty,email"`
}

func (c *Core) Register(in RegisterInput) (models.Identity, error) {
	if err := c.validate.Struct(in); err != nil {
		return models.Identity{}, err
	}
	if !in.Role.Valid() {
		return models.Identity{}, fmt.Errorf("invalid role %q, must be customer, deliverer or admin", in.Role)
	}
	return c.sessions.Register(models.User{
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
	})
}

func (c *Core) Logout() {
	c.sessions.Logout()
}

// CurrentSession returns the active identity, nil when anonymous.
func (c *Core) CurrentSession() *models.Identity {
	return c.sessions.Current()
}

func (c *Core) CapabilitiesForCurrentSession() models.Capabilities {
	return c.sessions.Capabilities()
}

// ── Employees ──────────────────────────────────────────────────────

type EmployeeInput struct {
	Username string      `json:"username" validate:"required,min=3"`
	Password string      `json:"password" validate:"required,min=4"`
	Name     string      `json:"name" validate:"required"`
	Role     models.Role `json:"role"`
	Phone    string      `json:"phone"`
}

// AddEmployee creates a staff record without signing it in. The role
// defaults to deliverer.
func (c *Core) AddEmployee(in EmployeeInput) (models.User, error) {
	if err := c.validate.Struct(in); err != nil {
		return models.User{}, err
	}
	if in.Role == "" {
		in.Role = models.RoleDeliverer
	}
	if !in.Role.Valid() {
		return models.User{}, fmt.Errorf("invalid role %q, must be customer, deliverer or admin", in.Role)
	}
	user := models.User{
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
		Name:     in.Name,
		Phone:    in.Phone,
	}
	id, err := c.users.Insert(user)
	if err != nil {
		return models.User{}, err
	}
	user.ID = id
	return user, nil
}

func (c *Core) ListEmployees() []models.User {
	return c.users.List()
}

// UpdateUserProfile merges the update into the stored record and refreshes
// the session view when the signed-in user edited themselves.
func (c *Core) UpdateUserProfile(id string, upd auth.UserUpdate) (models.User, error) {
	user, err := c.users.Update(id, upd)
	if err != nil {
		return models.User{}, err
	}
	c.sessions.RefreshIdentity(user)
	return user, nil
}

func (c *Core) ChangePassword(id, newPassword string) error {
	if len(newPassword) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	_, err := c.users.Update(id, auth.UserUpdate{Password: &newPassword})
	return err
}

// DeleteEmployee removes a record. Deleting the currently signed-in account
// is refused.
func (c *Core) DeleteEmployee(id string) error {
	if current := c.sessions.Current(); current != nil && current.ID == id {
		return auth.ErrSelfDeletionDenied
	}
	return c.users.Remove(id)
}
