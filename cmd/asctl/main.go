// Command asctl is the operator CLI for the Alliance Shipping back office.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "asctl",
		Short:         "Alliance Shipping back-office operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrackingCmd(), newAdminCmd(), newMigrateCmd())
	return root
}

// loadRuntime reads the same environment as the API server.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, "asctl")
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
