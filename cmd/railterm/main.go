package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"railterm/internal/app"
	"railterm/internal/config"
)

var version = "dev"

var (
	configPath  string
	networkName string
)

func newApp(logger *slog.Logger) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return app.New(cfg, networkName, logger)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	root := &cobra.Command{
		Use:           "railterm",
		Short:         "Terminal viewer for private wallet transaction history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&networkName, "network", "", "network name (defaults to first configured)")

	root.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Browse transaction history with on-chain detail views",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunHistory(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "balances [token-address...]",
		Short: "Show public ERC-20 balances of the configured wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunBalances(cmd.Context(), args)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the railterm version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("railterm " + version)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
