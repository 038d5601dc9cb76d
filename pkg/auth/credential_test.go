package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStore(t *testing.T) {
	t.Run("stores in the first accepting store", func(t *testing.T) {
		first := NewMockStore()
		second := NewMockStore()
		m := &Manager{stores: []CredentialStore{first, second}}

		err := m.Store(&Credential{ClientID: "abc123"})
		require.NoError(t, err)

		assert.True(t, first.Exists())
		assert.False(t, second.Exists())
	})

	t.Run("falls through on store failure", func(t *testing.T) {
		first := NewMockStore()
		first.StoreError = errors.New("keychain locked")
		second := NewMockStore()
		m := &Manager{stores: []CredentialStore{first, second}}

		err := m.Store(&Credential{ClientID: "abc123"})
		require.NoError(t, err)

		assert.False(t, first.Exists())
		assert.True(t, second.Exists())
	})

	t.Run("sets last modified", func(t *testing.T) {
		store := NewMockStore()
		m := &Manager{stores: []CredentialStore{store}}

		require.NoError(t, m.Store(&Credential{ClientID: "abc123"}))

		cred, err := store.Retrieve()
		require.NoError(t, err)
		assert.False(t, cred.LastModified.IsZero())
	})

	t.Run("rejects empty credential", func(t *testing.T) {
		m := &Manager{stores: []CredentialStore{NewMockStore()}}

		assert.ErrorIs(t, m.Store(nil), ErrInvalidCredential)
		assert.ErrorIs(t, m.Store(&Credential{}), ErrInvalidCredential)
	})

	t.Run("all stores fail", func(t *testing.T) {
		store := NewMockStore()
		store.StoreError = errors.New("disk full")
		m := &Manager{stores: []CredentialStore{store}}

		err := m.Store(&Credential{ClientID: "abc123"})
		assert.Error(t, err)
	})
}

func TestManagerRetrieve(t *testing.T) {
	t.Run("first store wins", func(t *testing.T) {
		first := NewMockStore()
		require.NoError(t, first.Store(&Credential{ClientID: "from-first"}))
		second := NewMockStore()
		require.NoError(t, second.Store(&Credential{ClientID: "from-second"}))
		m := &Manager{stores: []CredentialStore{first, second}}

		cred, err := m.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, "from-first", cred.ClientID)
	})

	t.Run("falls through empty stores", func(t *testing.T) {
		first := NewMockStore()
		second := NewMockStore()
		require.NoError(t, second.Store(&Credential{ClientID: "from-second"}))
		m := &Manager{stores: []CredentialStore{first, second}}

		cred, err := m.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, "from-second", cred.ClientID)
	})

	t.Run("nothing stored anywhere", func(t *testing.T) {
		m := &Manager{stores: []CredentialStore{NewMockStore(), NewMockStore()}}

		cred, err := m.Retrieve()
		assert.Nil(t, cred)
		assert.ErrorIs(t, err, ErrCredentialNotFound)
	})
}

func TestManagerDelete(t *testing.T) {
	t.Run("deletes from every store", func(t *testing.T) {
		first := NewMockStore()
		require.NoError(t, first.Store(&Credential{ClientID: "abc"}))
		second := NewMockStore()
		require.NoError(t, second.Store(&Credential{ClientID: "abc"}))
		m := &Manager{stores: []CredentialStore{first, second}}

		require.NoError(t, m.Delete())
		assert.False(t, first.Exists())
		assert.False(t, second.Exists())
	})

	t.Run("nothing to delete", func(t *testing.T) {
		m := &Manager{stores: []CredentialStore{NewMockStore()}}
		assert.Error(t, m.Delete())
	})
}

func TestEncryptedFileStore(t *testing.T) {
	t.Setenv("IMGURGRAB_PASSPHRASE", "test-passphrase")

	t.Run("round trip", func(t *testing.T) {
		store, err := NewEncryptedFileStore(filepath.Join(t.TempDir(), "credential.enc"))
		require.NoError(t, err)

		require.NoError(t, store.Store(&Credential{ClientID: "secret-id"}))
		assert.True(t, store.Exists())

		cred, err := store.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, "secret-id", cred.ClientID)
	})

	t.Run("file on disk is not plaintext", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credential.enc")
		store, err := NewEncryptedFileStore(path)
		require.NoError(t, err)

		require.NoError(t, store.Store(&Credential{ClientID: "secret-id"}))

		content := readFile(t, path)
		assert.NotContains(t, content, "secret-id")
	})

	t.Run("wrong passphrase fails to decrypt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credential.enc")
		store, err := NewEncryptedFileStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Store(&Credential{ClientID: "secret-id"}))

		store.passphrase = "wrong"
		_, err = store.Retrieve()
		assert.Error(t, err)
	})

	t.Run("retrieve before store", func(t *testing.T) {
		store, err := NewEncryptedFileStore(filepath.Join(t.TempDir(), "credential.enc"))
		require.NoError(t, err)

		_, err = store.Retrieve()
		assert.ErrorIs(t, err, ErrCredentialNotFound)
		assert.False(t, store.Exists())
	})

	t.Run("delete removes the file", func(t *testing.T) {
		store, err := NewEncryptedFileStore(filepath.Join(t.TempDir(), "credential.enc"))
		require.NoError(t, err)
		require.NoError(t, store.Store(&Credential{ClientID: "secret-id"}))

		require.NoError(t, store.Delete())
		assert.False(t, store.Exists())
		assert.ErrorIs(t, store.Delete(), ErrCredentialNotFound)
	})
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	t.Run("reads from environment", func(t *testing.T) {
		t.Setenv("IMGURGRAB_CLIENT_ID", "env-id")

		assert.True(t, store.Exists())
		cred, err := store.Retrieve()
		require.NoError(t, err)
		assert.Equal(t, "env-id", cred.ClientID)
	})

	t.Run("unset variable", func(t *testing.T) {
		t.Setenv("IMGURGRAB_CLIENT_ID", "")

		assert.False(t, store.Exists())
		_, err := store.Retrieve()
		assert.ErrorIs(t, err, ErrCredentialNotFound)
	})

	t.Run("is read only", func(t *testing.T) {
		assert.ErrorIs(t, store.Store(&Credential{ClientID: "x"}), ErrStoreReadOnly)
		assert.ErrorIs(t, store.Delete(), ErrStoreReadOnly)
	})
}

func TestMaskClientID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{
			name:     "long id shows edges",
			id:       "0123456789abcdef",
			expected: "0123...cdef",
		},
		{
			name:     "short id fully masked",
			id:       "abcd1234",
			expected: "********",
		},
		{
			name:     "empty id",
			id:       "",
			expected: "********",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskClientID(tt.id))
		})
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
