package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *IdentityStore {
	t.Helper()
	s, err := OpenIdentityStore(filepath.Join(t.TempDir(), "nested", "identities.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIdentityStorePutGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("alice", []byte{1, 2, 3}))
	got, err := s.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	err = s.Put("alice", []byte{4})
	assert.ErrorIs(t, err, ErrIdentityExists)

	_, err = s.Get("bob")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestIdentityStoreListDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("b", []byte{1}))
	require.NoError(t, s.Put("a", []byte{2}))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, s.Delete("a"))
	assert.ErrorIs(t, s.Delete("a"), ErrIdentityNotFound)

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestIdentityStoreEmptyName(t *testing.T) {
	s := openTestStore(t)
	assert.ErrorIs(t, s.Put("", []byte{1}), ErrInvalidIdentity)
}

func TestIdentityStoreSaveLoad(t *testing.T) {
	s := openTestStore(t)
	m := testMultisig()

	require.NoError(t, s.Save("vault", m, "pw"))

	loaded, err := s.Load("vault", "pw")
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	_, err = s.Load("vault", "nope")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestIdentityStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identities.db")
	s, err := OpenIdentityStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("alice", []byte("sealed")))
	require.NoError(t, s.Close())

	s, err = OpenIdentityStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), got)
}
