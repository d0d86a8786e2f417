package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/storefront/cart/cmd"
	catalogCmd "github.com/Alturino/storefront/catalog/cmd"
	"github.com/Alturino/storefront/internal/common/constants"
)

func Start() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logDir string
	rootCmd := &cobra.Command{
		Use:          constants.AppStorefront,
		Short:        "Storefront cart, catalog and terminal storefront",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "logs", "directory for rotated log files")

	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context(), logDir)
			},
		},
		{
			Use:   "catalog",
			Short: "Run catalog service",
			Run: func(cmd *cobra.Command, args []string) {
				catalogCmd.RunCatalogService(cmd.Context(), logDir)
			},
		},
		{
			Use:   "tui",
			Short: "Run terminal storefront",
			RunE: func(cmd *cobra.Command, args []string) error {
				return cartCmd.RunStorefrontTui(cmd.Context(), logDir)
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		stop()
		os.Exit(1)
	}
}
