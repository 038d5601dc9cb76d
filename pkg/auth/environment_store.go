package auth

import "os"

// EnvironmentStore reads the credential from the environment. It is
// read-only and sits last in the fallback chain.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store.
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for the environment.
func (s *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreReadOnly
}

// Retrieve reads the client ID from IMGURGRAB_CLIENT_ID.
func (s *EnvironmentStore) Retrieve() (*Credential, error) {
	clientID := os.Getenv("IMGURGRAB_CLIENT_ID")
	if clientID == "" {
		return nil, ErrCredentialNotFound
	}

	return &Credential{ClientID: clientID}, nil
}

// Delete is not supported for the environment.
func (s *EnvironmentStore) Delete() error {
	return ErrStoreReadOnly
}

// Exists checks if the environment variable is set.
func (s *EnvironmentStore) Exists() bool {
	return os.Getenv("IMGURGRAB_CLIENT_ID") != ""
}
