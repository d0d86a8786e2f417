package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/infra"
)

type cartStorage interface {
	Load(c context.Context) ([]response.CartEntry, error)
	Save(c context.Context, entries []response.CartEntry) error
}

func entries() []response.CartEntry {
	return []response.CartEntry{
		{
			ID:     2,
			Title:  "Tênis VR Caminhada Confortável",
			Price:  decimal.RequireFromString("139.9"),
			Image:  "https://example.com/2.jpg",
			Amount: 1,
		},
		{
			ID:     1,
			Title:  "Tênis de Caminhada Leve Confortável",
			Price:  decimal.RequireFromString("179.9"),
			Image:  "https://example.com/1.jpg",
			Amount: 3,
		},
	}
}

func assertRoundTrip(t *testing.T, s cartStorage) {
	c := context.Background()

	loaded, err := s.Load(c)
	require.NoError(t, err)
	assert.Equal(t, []response.CartEntry{}, loaded)

	expected := entries()
	require.NoError(t, s.Save(c, expected))
	loaded, err = s.Load(c)
	require.NoError(t, err)
	require.Len(t, loaded, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].ID, loaded[i].ID)
		assert.Equal(t, expected[i].Amount, loaded[i].Amount)
		assert.True(t, expected[i].Price.Equal(loaded[i].Price))
	}

	require.NoError(t, s.Save(c, nil))
	loaded, err = s.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "@RocketShoes:cart", Key("@RocketShoes"))
	assert.Equal(t, "cart", Key(""))
}

func TestDecodeCorruptValue(t *testing.T) {
	_, err := decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestMemoryStorage(t *testing.T) {
	assertRoundTrip(t, NewMemoryStorage())
}

func TestSqliteStorage(t *testing.T) {
	c := context.Background()
	path := filepath.Join(t.TempDir(), "storefront.db")

	db, err := infra.NewSqliteClient(c, path)
	require.NoError(t, err)
	s, err := NewSqliteStorage(c, db, "@RocketShoes")
	require.NoError(t, err)
	assertRoundTrip(t, s)

	require.NoError(t, s.Save(c, entries()))
	require.NoError(t, db.Close())

	db, err = infra.NewSqliteClient(c, path)
	require.NoError(t, err)
	defer db.Close()
	reopened, err := NewSqliteStorage(c, db, "@RocketShoes")
	require.NoError(t, err)
	loaded, err := reopened.Load(c)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	other, err := NewSqliteStorage(c, db, "other")
	require.NoError(t, err)
	loaded, err = other.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	c := context.Background()

	redisContainer, err := testRedis.Run(
		c,
		"redis:7.4.2-alpine3.21",
		testRedis.WithLogLevel(testRedis.LogLevelVerbose),
	)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}
	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}
	client := redis.NewClient(redisOpt)
	defer client.Close()

	s := NewRedisStorage(client, "@RocketShoes")
	assertRoundTrip(t, s)

	require.NoError(t, s.Save(c, entries()))
	raw, err := client.Get(c, "@RocketShoes:cart").Result()
	require.NoError(t, err)
	assert.Contains(t, raw, `"amount":3`)
	ttl, err := client.TTL(c, "@RocketShoes:cart").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), int64(ttl))
}
