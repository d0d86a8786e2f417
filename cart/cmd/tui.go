package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alturino/storefront/cart/internal/catalog"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/tui"
	"github.com/Alturino/storefront/cart/internal/view"
	"github.com/Alturino/storefront/internal/common/constants"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/notification"
)

// RunStorefrontTui runs the terminal storefront. Logs go to the file only since the program owns
// the terminal.
func RunStorefrontTui(c context.Context, logDir string) error {
	logger := log.InitFileLogger(filepath.Join(logDir, constants.AppStorefrontTui+".log")).
		With().
		Str(log.KeyAppName, constants.AppStorefrontTui).
		Str(log.KeyTag, "main RunStorefrontTui").
		Logger()

	c, span := otel.Tracer.Start(c, "RunStorefrontTui")
	defer span.End()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppStorefront)
	logger = logger.Level(log.LevelFor(cfg.Application.Env))
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing storage").Logger()
	logger.Info().Msg("initializing storage")
	c = logger.WithContext(c)
	store, closeStorage, err := newStorage(c, cfg)
	if err != nil {
		err = fmt.Errorf("failed initializing storage with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			err = fmt.Errorf("failed shutting down storage with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized storage")

	logger = logger.With().Str(log.KeyProcess, "initializing cart service").Logger()
	logger.Info().Msg("initializing cart service")
	c = logger.WithContext(c)
	client := catalog.NewClient(cfg.Catalog)
	cartService, err := service.NewCartService(c, client, store)
	if err != nil {
		err = fmt.Errorf("failed initializing cart service with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("initialized cart service")

	logger = logger.With().Str(log.KeyProcess, "running program").Logger()
	logger.Info().Msg("running program")
	c = logger.WithContext(c)
	model := tui.NewModel(
		c,
		cartService,
		client,
		notification.NewNotifier(cfg.Notification.TTL),
		view.NewPriceFormatter(cfg.Currency),
	)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(c))
	if _, err = program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		err = fmt.Errorf("failed running program with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("program exited")

	return nil
}
