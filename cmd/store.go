package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/config"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository/dynamo"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository/memory"
	redis_repo "github.com/SimpnicServerTeam/scs-credential-server/internal/repository/redis"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository/sqldb"
)

// newCredentialRepository connects the store selected by CREDENTIAL_STORE.
// The returned func releases its connections.
func newCredentialRepository(ctx context.Context, cfg *config.Config) (repository.CredentialRepository, func(), error) {
	switch cfg.CredentialStore {
	case config.StoreRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisSettings.Address,
			Password: cfg.RedisSettings.Password,
			DB:       cfg.RedisSettings.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// requests will report the store as unavailable until it recovers
			log.Warn().Err(err).Str("address", cfg.RedisSettings.Address).Msg("Redis is not reachable yet")
		}
		closeFn := func() {
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close redis client")
			}
		}
		return redis_repo.NewRedisCredentialRepository(redisClient, cfg.RedisSettings.KeyPrefix), closeFn, nil

	case config.StoreDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		return dynamo.NewDynamoDBCredentialRepository(client, cfg.DynamoDB.Table), func() {}, nil

	case config.StorePostgres, config.StoreSQLite:
		driver := sqldb.DriverPostgres
		if cfg.CredentialStore == config.StoreSQLite {
			driver = sqldb.DriverSQLite
		}
		db, err := sqldb.Open(ctx, driver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}
		return sqldb.NewSQLCredentialRepository(db), closeFn, nil

	case config.StoreMemory:
		log.Warn().Msg("Using in-memory credential store, registrations are lost on restart")
		return memory.NewMemoryCredentialRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
	}
}
