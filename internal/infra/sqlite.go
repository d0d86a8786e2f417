package infra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/Alturino/storefront/internal/log"
)

// NewSqliteClient opens the local sqlite file backing the terminal storefront.
func NewSqliteClient(c context.Context, path string) (*sql.DB, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "infra NewSqliteClient").
		Str("path", path).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "opening sqlite").Logger()
	logger.Info().Msg("opening sqlite")
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		err = fmt.Errorf("failed opening sqlite with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(c); err != nil {
		_ = db.Close()
		err = fmt.Errorf("failed pinging sqlite with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("opened sqlite")

	return db, nil
}
