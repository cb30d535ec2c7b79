package auth

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNotFound           = errors.New("user not found")
	ErrSelfDeletionDenied = errors.New("cannot delete the currently signed-in account")
)

// Seed admin installed on first start. Values match the client this engine
// replaces; the plaintext default password is a known defect of that client.
const (
	seedAdminID       = "admin-1"
	seedAdminUsername = "Admin"
	seedAdminPassword = "1593"
	seedAdminName     = "System Admin"
)

// CredentialStore holds all user and employee records. Usernames are unique
// case-insensitively; ids are immutable once assigned.
type CredentialStore struct {
	adapter storage.Adapter
	log     zerolog.Logger
	users   []models.User
}

func NewCredentialStore(adapter storage.Adapter, log zerolog.Logger) *CredentialStore {
	s := &CredentialStore{
		adapter: adapter,
		log:     log.With().Str("component", "credstore").Logger(),
	}
	s.load()
	return s
}

func (s *CredentialStore) load() {
	raw, err := s.adapter.Load(storage.KeyUsers)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading user records failed, starting empty")
		return
	}
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, &s.users); err != nil {
		s.log.Warn().Err(err).Msg("user records unreadable, starting empty")
		s.users = nil
	}
}

func (s *CredentialStore) persist() {
	raw, err := json.Marshal(s.users)
	if err == nil {
		err = s.adapter.Save(storage.KeyUsers, raw)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("persisting user records failed")
	}
}

// FindByUsername matches case-insensitively.
func (s *CredentialStore) FindByUsername(username string) (models.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return models.User{}, false
}

// Insert appends a new record, assigning a fresh id unless the caller set
// one. Fails when the username is already taken, ignoring case.
func (s *CredentialStore) Insert(user models.User) (string, error) {
	if _, taken := s.FindByUsername(user.Username); taken {
		return "", ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users = append(s.users, user)
	s.persist()
	return user.ID, nil
}

// UserUpdate carries the fields a profile or admin edit may change. Nil
// leaves a field untouched; the id never changes.
type UserUpdate struct {
	Username *string
	Password *string
	Role     *models.Role
	Name     *string
	Phone    *string
	Email    *string
}

// Update merges upd into the record with the given id and returns the merged
// record.
func (s *CredentialStore) Update(id string, upd UserUpdate) (models.User, error) {
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if upd.Username != nil {
			u.Username = *upd.Username
		}
		if upd.Password != nil {
			u.Password = *upd.Password
		}
		if upd.Role != nil {
			u.Role = *upd.Role
		}
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		s.persist()
		return *u, nil
	}
	return models.User{}, ErrNotFound
}

func (s *CredentialStore) Remove(id string) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrNotFound
}

// List returns a copy of all records.
func (s *CredentialStore) List() []models.User {
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// EnsureSeedAdmin installs the default admin account if no record with its
// username exists. Idempotent: keyed on the username, not on call count.
// Must run before the first login attempt.
func (s *CredentialStore) EnsureSeedAdmin() {
	if _, exists := s.FindByUsername(seedAdminUsername); exists {
		return
	}
	s.users = append(s.users, models.User{
		ID:       seedAdminID,
		Username: seedAdminUsername,
		Password: seedAdminPassword,
		Role:     models.RoleAdmin,
		Name:     seedAdminName,
	})
	s.persist()
	s.log.Info().Msg("seed admin account installed")
}
