package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

const (
	queryCreateKv = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`
	querySelectValue = `SELECT value FROM kv WHERE key = ?`
	queryUpsertValue = `INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`
)

// SqliteStorage keeps the cart in a local sqlite key-value table, so it survives restarts of
// the terminal storefront.
type SqliteStorage struct {
	db  *sql.DB
	key string
}

func NewSqliteStorage(c context.Context, db *sql.DB, namespace string) (*SqliteStorage, error) {
	if _, err := db.ExecContext(c, queryCreateKv); err != nil {
		return nil, fmt.Errorf("failed creating kv table with error=%w", err)
	}
	return &SqliteStorage{db: db, key: Key(namespace)}, nil
}

func (s *SqliteStorage) Load(c context.Context) ([]response.CartEntry, error) {
	c, span := otel.Tracer.Start(c, "SqliteStorage Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SqliteStorage Load").
		Str(log.KeyStorageKey, s.key).
		Logger()

	var value string
	err := s.db.QueryRowContext(c, querySelectValue, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Info().Msg("cart not persisted yet")
		return []response.CartEntry{}, nil
	}
	if err != nil {
		err = fmt.Errorf("failed loading cart key=%s with error=%w", s.key, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	entries, err := decode([]byte(value))
	if err != nil {
		err = fmt.Errorf("failed decoding cart key=%s with error=%w", s.key, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Int(log.KeyCartSize, len(entries)).Msg("loaded cart")

	return entries, nil
}

func (s *SqliteStorage) Save(c context.Context, entries []response.CartEntry) error {
	c, span := otel.Tracer.Start(c, "SqliteStorage Save")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SqliteStorage Save").
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

	if _, err = s.db.ExecContext(c, queryUpsertValue, s.key, string(data)); err != nil {
		err = fmt.Errorf("failed saving cart key=%s with error=%w", s.key, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("saved cart")

	return nil
}
