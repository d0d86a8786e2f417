package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Alturino/storefront/catalog/internal/repository"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/infra"
)

type (
	setupFunc    func(context.Context) (*redis.Client, *pgxpool.Pool, *postgres.PostgresContainer, *testRedis.RedisContainer, CatalogService)
	teardownFunc func(*redis.Client, *pgxpool.Pool, *postgres.PostgresContainer, *testRedis.RedisContainer)
)

func setup(t *testing.T) setupFunc {
	return func(c context.Context) (*redis.Client, *pgxpool.Pool, *postgres.PostgresContainer, *testRedis.RedisContainer, CatalogService) {
		pgContainer, err := postgres.Run(
			c,
			"postgres:16.6-alpine3.21",
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.WithDatabase("postgres"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed running postgres container with error: %s", err)
		}

		host, err := pgContainer.Host(c)
		if err != nil {
			t.Fatalf("failed getting postgres host with error: %s", err)
		}
		port, err := pgContainer.MappedPort(c, "5432/tcp")
		if err != nil {
			t.Fatalf("failed getting postgres port with error: %s", err)
		}
		portNumber, err := strconv.ParseUint(port.Port(), 10, 16)
		if err != nil {
			t.Fatalf("failed parsing postgres port with error: %s", err)
		}

		dbConfig := config.Database{
			Name:          "postgres",
			Host:          host,
			MigrationPath: "file://../../migrations",
			Password:      "postgres",
			Username:      "postgres",
			Port:          uint16(portNumber),
		}
		pool, err := infra.NewDatabaseClient(c, dbConfig)
		if err != nil {
			t.Fatalf("failed creating postgres pool with error: %s", err)
		}
		if err = infra.Migrate(c, pool, dbConfig); err != nil {
			t.Fatalf("failed migrating postgres with error: %s", err)
		}

		redisContainer, err := testRedis.Run(
			c,
			"redis:7.4.2-alpine3.21",
			testRedis.WithLogLevel(testRedis.LogLevelVerbose),
		)
		if err != nil {
			t.Fatalf("failed running redis container with error: %s", err)
		}

		redisConnStr, err := redisContainer.ConnectionString(c)
		if err != nil {
			t.Fatalf("failed getting redis connection string with error: %s", err)
		}

		redisOpt, err := redis.ParseURL(redisConnStr)
		if err != nil {
			t.Fatalf("failed parsing redis connection string with error: %s", err)
		}

		redisClient := redis.NewClient(redisOpt)
		if err = redisClient.Ping(c).Err(); err != nil {
			t.Fatalf("failed ping redis client with error: %s", err)
		}

		return redisClient, pool, pgContainer, redisContainer, NewCatalogService(repository.New(pool), redisClient)
	}
}

func teardown(t *testing.T) teardownFunc {
	return func(redisClient *redis.Client, pool *pgxpool.Pool, pgContainer *postgres.PostgresContainer, redisContainer *testRedis.RedisContainer) {
		redisClient.Close()
		pool.Close()
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
}
