package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/storage"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
)

type closeFunc func() error

// newStorage opens the backend named by cfg.Storage.Driver. The returned closeFunc releases the
// underlying client.
func newStorage(c context.Context, cfg *config.Config) (service.Storage, closeFunc, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd newStorage").
		Str(log.KeyStorageDriver, cfg.Storage.Driver).
		Logger()

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
		logger.Info().Msg("initializing cache")
		c = logger.WithContext(c)
		cache, err := infra.NewCacheClient(c, cfg.Cache)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("initialized cache")
		return storage.NewRedisStorage(cache, cfg.Storage.Namespace), cache.Close, nil
	case config.StorageDriverSqlite:
		logger = logger.With().Str(log.KeyProcess, "initializing sqlite").Logger()
		logger.Info().Msg("initializing sqlite")
		c = logger.WithContext(c)
		db, err := infra.NewSqliteClient(c, cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		s, err := storage.NewSqliteStorage(c, db, cfg.Storage.Namespace)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info().Msg("initialized sqlite")
		return s, db.Close, nil
	case config.StorageDriverMemory:
		logger.Warn().Msg("cart will not survive a restart")
		return storage.NewMemoryStorage(), func() error { return nil }, nil
	default:
		err := fmt.Errorf(
			"failed initializing storage driver=%s with error=%w",
			cfg.Storage.Driver,
			commonErrors.ErrUnknownStorageKind,
		)
		logger.Error().Err(err).Msg(err.Error())
		return nil, nil, err
	}
}
