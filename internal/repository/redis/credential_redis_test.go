package redis

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyPrefix = "test:"

func newTestRedisCredentialRepo(t *testing.T) (repo *RedisCredentialRepository, mr *miniredis.Miniredis, client *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	repo = NewRedisCredentialRepository(client, testKeyPrefix)
	return repo, mr, client
}

func testCredential() (models.Salt, models.Verifier) {
	var salt models.Salt
	var verifier models.Verifier
	copy(salt[:], bytes.Repeat([]byte{0x11}, models.SaltSize))
	copy(verifier[:], bytes.Repeat([]byte{0x22}, models.VerifierSize))
	return salt, verifier
}

func TestRedisCredentialRepository_CreateCredentialIfAbsent(t *testing.T) {
	ctx := context.Background()
	salt, verifier := testCredential()

	t.Run("Success", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		defer mr.Close()

		err := repo.CreateCredentialIfAbsent(ctx, "alice", salt, verifier)
		require.NoError(t, err)

		stored, err := mr.Get("test:credential:alice")
		require.NoError(t, err)
		var doc credentialDocument
		require.NoError(t, json.Unmarshal([]byte(stored), &doc))
		assert.Equal(t, salt[:], doc.Salt)
		assert.Equal(t, verifier[:], doc.Verifier)

		assert.Zero(t, mr.TTL("test:credential:alice"), "credentials must not expire")
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		defer mr.Close()

		require.NoError(t, repo.CreateCredentialIfAbsent(ctx, "alice", salt, verifier))

		err := repo.CreateCredentialIfAbsent(ctx, "alice", models.Salt{}, models.Verifier{})
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrUserExists)

		cred, err := repo.GetCredential(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, salt, cred.Salt, "existing record must not be overwritten")
	})

	t.Run("ConcurrentCreate", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		defer mr.Close()

		const racers = 16
		results := make(chan error, racers)
		var wg sync.WaitGroup
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results <- repo.CreateCredentialIfAbsent(ctx, "alice", models.Salt{byte(i)}, verifier)
			}(i)
		}
		wg.Wait()
		close(results)

		created := 0
		for err := range results {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, repository.ErrUserExists)
		}
		assert.Equal(t, 1, created)
	})

	t.Run("RedisError", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		mr.Close() // Close to cause error

		err := repo.CreateCredentialIfAbsent(ctx, "alice", salt, verifier)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "redis SETNX failed")
	})
}

func TestRedisCredentialRepository_GetCredential(t *testing.T) {
	ctx := context.Background()
	salt, verifier := testCredential()

	t.Run("Success", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		defer mr.Close()

		data, _ := json.Marshal(credentialDocument{Salt: salt[:], Verifier: verifier[:]})
		require.NoError(t, mr.Set("test:credential:bob", string(data)))

		cred, err := repo.GetCredential(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", cred.Username)
		assert.Equal(t, salt, cred.Salt)
		assert.Equal(t, verifier, cred.Verifier)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		defer mr.Close()

		_, err := repo.GetCredential(ctx, "nobody")
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
	})

	t.Run("PrefixIsolation", func(t *testing.T) {
		repo, mr, client := newTestRedisCredentialRepo(t)
		defer mr.Close()

		other := NewRedisCredentialRepository(client, "other:")
		require.NoError(t, other.CreateCredentialIfAbsent(ctx, "alice", salt, verifier))

		_, err := repo.GetCredential(ctx, "alice")
		assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
	})

	t.Run("RedisGetError", func(t *testing.T) {
		repo, mr, _ := newTestRedisCredentialRepo(t)
		mr.Close() // Induce error

		_, err := repo.GetCredential(ctx, "alice")
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "redis GET failed")
	})

	malformed := []struct {
		name  string
		value string
	}{
		{"NotJSON", "this is not json"},
		{"MissingVerifier", mustJSON(t, map[string]any{"salt": salt[:]})},
		{"MissingSalt", mustJSON(t, map[string]any{"verifier": verifier[:]})},
		{"ShortVerifier", mustJSON(t, credentialDocument{Salt: salt[:], Verifier: verifier[:20]})},
		{"LongSalt", mustJSON(t, credentialDocument{Salt: append(salt[:], 0x00), Verifier: verifier[:]})},
	}
	for _, tc := range malformed {
		t.Run(fmt.Sprintf("Malformed%s", tc.name), func(t *testing.T) {
			repo, mr, _ := newTestRedisCredentialRepo(t)
			defer mr.Close()

			require.NoError(t, mr.Set("test:credential:carol", tc.value))

			_, err := repo.GetCredential(ctx, "carol")
			require.Error(t, err)
			assert.ErrorIs(t, err, repository.ErrMalformedCredential)
			assert.NotErrorIs(t, err, repository.ErrStoreUnavailable)
		})
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
