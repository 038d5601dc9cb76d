package auth

import "sync"

// MockStore implements CredentialStore for testing purposes.
type MockStore struct {
	cred *Credential
	mu   sync.RWMutex

	// Error injection for testing
	StoreError    error
	RetrieveError error
	DeleteError   error
}

// NewMockStore creates a new mock credential store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Store saves the credential to the mock store.
func (m *MockStore) Store(cred *Credential) error {
	if m.StoreError != nil {
		return m.StoreError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cred == nil || cred.ClientID == "" {
		return ErrInvalidCredential
	}

	// Copy to avoid external modifications
	credCopy := *cred
	m.cred = &credCopy

	return nil
}

// Retrieve gets the credential from the mock store.
func (m *MockStore) Retrieve() (*Credential, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cred == nil {
		return nil, ErrCredentialNotFound
	}

	credCopy := *m.cred
	return &credCopy, nil
}

// Delete removes the credential from the mock store.
func (m *MockStore) Delete() error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred == nil {
		return ErrCredentialNotFound
	}
	m.cred = nil

	return nil
}

// Exists checks if a credential is stored.
func (m *MockStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred != nil
}
