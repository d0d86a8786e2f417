package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/internal/storage"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
)

func TestNewStorage(t *testing.T) {
	c := context.Background()

	t.Run("given memory driver should return memory storage", func(t *testing.T) {
		s, closeStorage, err := newStorage(c, &config.Config{Storage: config.Storage{Driver: config.StorageDriverMemory}})
		require.NoError(t, err)
		defer closeStorage()
		assert.IsType(t, &storage.MemoryStorage{}, s)
	})

	t.Run("given sqlite driver should open the file", func(t *testing.T) {
		cfg := &config.Config{Storage: config.Storage{
			Driver:    config.StorageDriverSqlite,
			Namespace: "@RocketShoes",
			Path:      filepath.Join(t.TempDir(), "storefront.db"),
		}}
		s, closeStorage, err := newStorage(c, cfg)
		require.NoError(t, err)
		defer closeStorage()
		assert.IsType(t, &storage.SqliteStorage{}, s)
	})

	t.Run("given unknown driver should fail", func(t *testing.T) {
		_, _, err := newStorage(c, &config.Config{Storage: config.Storage{Driver: "etcd"}})
		assert.ErrorIs(t, err, commonErrors.ErrUnknownStorageKind)
	})
}
