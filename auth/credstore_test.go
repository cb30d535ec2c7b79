package auth

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-delivery-core/models"
	"water-delivery-core/storage"
)

func newTestStore(t *testing.T) (*CredentialStore, *storage.MemoryAdapter) {
	t.Helper()
	adapter := storage.NewMemoryAdapter()
	return NewCredentialStore(adapter, zerolog.Nop()), adapter
}

func TestFindByUsername_CaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Insert(models.User{Username: "bob", Password: "pw1", Role: models.RoleDeliverer, Name: "Bob"})
	require.NoError(t, err)

	lower, okLower := store.FindByUsername("bob")
	upper, okUpper := store.FindByUsername("BOB")
	require.True(t, okLower)
	require.True(t, okUpper)
	assert.Equal(t, lower, upper)
}

func TestInsert_RejectsDuplicateUsernameIgnoringCase(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Insert(models.User{Username: "bob", Password: "pw1", Role: models.RoleDeliverer, Name: "Bob"})
	require.NoError(t, err)

	_, err = store.Insert(models.User{Username: "Bob", Password: "other", Role: models.RoleCustomer, Name: "Other Bob"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, store.List(), 1)
}

func TestInsert_AssignsFreshIDs(t *testing.T) {
	store, _ := newTestStore(t)
	first, err := store.Insert(models.User{Username: "alice", Password: "pw", Role: models.RoleCustomer, Name: "Alice"})
	require.NoError(t, err)
	second, err := store.Insert(models.User{Username: "carol", Password: "pw", Role: models.RoleCustomer, Name: "Carol"})
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestEnsureSeedAdmin_Idempotent(t *testing.T) {
	store, adapter := newTestStore(t)
	store.EnsureSeedAdmin()
	store.EnsureSeedAdmin()
	store.EnsureSeedAdmin()

	count := 0
	for _, u := range store.List() {
		if u.Username == "Admin" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// Still one after a reload from the same storage.
	reloaded := NewCredentialStore(adapter, zerolog.Nop())
	reloaded.EnsureSeedAdmin()
	count = 0
	for _, u := range reloaded.List() {
		if u.Username == "Admin" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestUpdate_MergesFieldsAndKeepsID(t *testing.T) {
	store, _ := newTestStore(t)
	id, err := store.Insert(models.User{Username: "bob", Password: "pw1", Role: models.RoleDeliverer, Name: "Bob"})
	require.NoError(t, err)

	newName := "Robert"
	newPhone := "555-0101"
	updated, err := store.Update(id, UserUpdate{Name: &newName, Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "555-0101", updated.Phone)
	assert.Equal(t, "bob", updated.Username, "untouched fields stay")
	assert.Equal(t, "pw1", updated.Password)
}

func TestUpdate_MissingID(t *testing.T) {
	store, _ := newTestStore(t)
	name := "Nobody"
	_, err := store.Update("missing", UserUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)
	id, err := store.Insert(models.User{Username: "bob", Password: "pw1", Role: models.RoleDeliverer, Name: "Bob"})
	require.NoError(t, err)

	require.NoError(t, store.Remove(id))
	_, found := store.FindByUsername("bob")
	assert.False(t, found)
	assert.ErrorIs(t, store.Remove(id), ErrNotFound)
}

func TestStore_SurvivesReload(t *testing.T) {
	store, adapter := newTestStore(t)
	id, err := store.Insert(models.User{Username: "bob", Password: "pw1", Role: models.RoleDeliverer, Name: "Bob"})
	require.NoError(t, err)

	reloaded := NewCredentialStore(adapter, zerolog.Nop())
	user, found := reloaded.FindByUsername("bob")
	require.True(t, found)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleDeliverer, user.Role)
}

func TestStore_CorruptRecordsStartEmpty(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	require.NoError(t, adapter.Save(storage.KeyUsers, []byte("{not json")))
	store := NewCredentialStore(adapter, zerolog.Nop())
	assert.Empty(t, store.List())
}
