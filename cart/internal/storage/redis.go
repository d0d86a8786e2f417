package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client, namespace string) *RedisStorage {
	return &RedisStorage{client: client, key: Key(namespace)}
}

func (s *RedisStorage) Load(c context.Context) ([]response.CartEntry, error) {
	c, span := otel.Tracer.Start(c, "RedisStorage Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisStorage Load").
		Str(log.KeyStorageKey, s.key).
		Logger()

	logger.Trace().Msg("loading cart")
	data, err := s.client.Get(c, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Info().Msg("cart not persisted yet")
		return []response.CartEntry{}, nil
	}
	if err != nil {
		err = fmt.Errorf("failed loading cart key=%s with error=%w", s.key, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	entries, err := decode(data)
	if err != nil {
		err = fmt.Errorf("failed decoding cart key=%s with error=%w", s.key, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Int(log.KeyCartSize, len(entries)).Msg("loaded cart")

	return entries, nil
}

func (s *RedisStorage) Save(c context.Context, entries []response.CartEntry) error {
	c, span := otel.Tracer.Start(c, "RedisStorage Save")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisStorage Save").
		Str(log.KeyStorageKey, s.key).
		Int(log.KeyCartSize, len(entries)).
		Logger()

	data, err := encode(entries)
	if err != nil {
		err = fmt.Errorf("failed encoding cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Trace().Msg("saving cart")
	if err = s.client.Set(c, s.key, data, 0).Err(); err != nil {
		err = fmt.Errorf("failed saving cart key=%s with error=%w", s.key, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("saved cart")

	return nil
}
