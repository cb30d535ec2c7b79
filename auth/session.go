package auth

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

// SessionManager holds the single process-wide session. States are Anonymous
// (nil identity) and Authenticated; login and register move to Authenticated,
// logout moves back, nothing else does.
type SessionManager struct {
	store   *CredentialStore
	adapter storage.Adapter
	secret  []byte
	log     zerolog.Logger
	current *models.Identity
}

func NewSessionManager(store *CredentialStore, adapter storage.Adapter, secret string, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:   store,
		adapter: adapter,
		secret:  []byte(secret),
		log:     log.With().Str("component", "session").Logger(),
	}
}

// RestoreSession rehydrates the session persisted by a previous run. The
// restored identity is trusted as-is, without re-validation against the
// credential store: a record deleted since the last run stays signed in until
// logout. Any unreadable token simply leaves the session anonymous.
func (m *SessionManager) RestoreSession() {
	raw, err := m.adapter.Load(storage.KeySession)
	if err != nil {
		m.log.Warn().Err(err).Msg("loading persisted session failed")
		return
	}
	if raw == nil {
		return
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil || token == "" {
		return
	}
	identity, err := parseSession(token, m.secret)
	if err != nil {
		m.log.Warn().Err(err).Msg("discarding unreadable persisted session")
		return
	}
	m.current = &identity
	m.log.Info().Str("username", identity.Username).Msg("session restored")
}

// Login authenticates against the credential store: case-insensitive
// username lookup, exact-match password comparison. On failure the session
// is left untouched.
func (m *SessionManager) Login(username, password string) (models.Identity, error) {
	user, found := m.store.FindByUsername(username)
	if !found || user.Password != password {
		return models.Identity{}, ErrInvalidCredentials
	}
	identity := identityOf(user)
	m.setCurrent(&identity)
	m.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("signed in")
	return identity, nil
}

// Register inserts the record and authenticates it immediately; registration
// implies login.
func (m *SessionManager) Register(user models.User) (models.Identity, error) {
	id, err := m.store.Insert(user)
	if err != nil {
		return models.Identity{}, err
	}
	user.ID = id
	identity := identityOf(user)
	m.setCurrent(&identity)
	m.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("registered")
	return identity, nil
}

// Logout clears the session unconditionally. Idempotent.
func (m *SessionManager) Logout() {
	m.setCurrent(nil)
}

// Current returns a copy of the authenticated identity, or nil when
// anonymous.
func (m *SessionManager) Current() *models.Identity {
	if m.current == nil {
		return nil
	}
	c := *m.current
	return &c
}

// Capabilities derives the capability flags of the active session.
func (m *SessionManager) Capabilities() models.Capabilities {
	return models.CapabilitiesFor(m.current)
}

// RefreshIdentity updates the session view after a profile edit to the
// signed-in user. Edits to other users are ignored.
func (m *SessionManager) RefreshIdentity(user models.User) {
	if m.current == nil || m.current.ID != user.ID {
		return
	}
	identity := identityOf(user)
	m.setCurrent(&identity)
}

func identityOf(user models.User) models.Identity {
	return models.Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Name:     user.Name,
	}
}

func (m *SessionManager) setCurrent(identity *models.Identity) {
	m.current = identity
	m.persistCurrent()
}

func (m *SessionManager) persistCurrent() {
	token := ""
	if m.current != nil {
		signed, err := signSession(*m.current, m.secret)
		if err != nil {
			m.log.Error().Err(err).Msg("signing session token failed")
			return
		}
		token = signed
	}
	raw, err := json.Marshal(token)
	if err == nil {
		err = m.adapter.Save(storage.KeySession, raw)
	}
	if err != nil {
		m.log.Error().Err(err).Msg("persisting session failed")
	}
}
