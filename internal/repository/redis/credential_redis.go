package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
)

var _ repository.CredentialRepository = (*RedisCredentialRepository)(nil)

// credentialDocument is the value stored under a credential key. Salt and
// verifier live in one value so a single SET NX creates both or neither.
type credentialDocument struct {
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

// RedisCredentialRepository implements CredentialRepository using Redis.
type RedisCredentialRepository struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisCredentialRepository creates a Redis-backed credential repository.
// keyPrefix namespaces the keys when the database is shared.
func NewRedisCredentialRepository(client redis.UniversalClient, keyPrefix string) *RedisCredentialRepository {
	return &RedisCredentialRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Helper to construct credential key
func (r *RedisCredentialRepository) makeCredentialKey(username string) string {
	return fmt.Sprintf("%scredential:%s", r.keyPrefix, username)
}

// GetCredential reads and validates the record stored for username.
func (r *RedisCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	data, err := r.client.Get(ctx, r.makeCredentialKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrCredentialNotFound
	}
	if err != nil {
		return nil, repository.Unavailable("redis GET failed", err)
	}

	var doc credentialDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal failed: %w", repository.ErrMalformedCredential, err)
	}
	return repository.DecodeCredential(username, doc.Salt, doc.Verifier)
}

// CreateCredentialIfAbsent stores the record with SET NX, which Redis applies
// atomically: concurrent callers for the same key see exactly one success.
func (r *RedisCredentialRepository) CreateCredentialIfAbsent(ctx context.Context, username string, salt models.Salt, verifier models.Verifier) error {
	data, err := json.Marshal(credentialDocument{Salt: salt[:], Verifier: verifier[:]})
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.makeCredentialKey(username), data, 0).Result()
	if err != nil {
		return repository.Unavailable("redis SETNX failed", err)
	}
	if !created {
		return repository.ErrUserExists
	}
	return nil
}
