package memory

import (
	"context"
	"sync"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
)

var _ repository.CredentialRepository = (*MemoryCredentialRepository)(nil)

// MemoryCredentialRepository implements CredentialRepository in memory (NOT FOR PRODUCTION)
type MemoryCredentialRepository struct {
	credentials map[string]models.Credential
	mutex       sync.RWMutex
}

func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{
		credentials: make(map[string]models.Credential),
	}
}

func (r *MemoryCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Unavailable("memory get", err)
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cred, exists := r.credentials[username]
	if !exists {
		return nil, repository.ErrCredentialNotFound
	}
	return &cred, nil
}

func (r *MemoryCredentialRepository) CreateCredentialIfAbsent(ctx context.Context, username string, salt models.Salt, verifier models.Verifier) error {
	if err := ctx.Err(); err != nil {
		return repository.Unavailable("memory create", err)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.credentials[username]; exists {
		return repository.ErrUserExists
	}
	r.credentials[username] = models.Credential{
		Username: username,
		Salt:     salt,
		Verifier: verifier,
	}
	return nil
}

// Len returns the number of stored credentials.
func (r *MemoryCredentialRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.credentials)
}
