package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alliance-shipping/backoffice/internal/persistence"
)

func newMigrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pg.Close()
			if pg.PoolHandle() == nil {
				return fmt.Errorf("POSTGRES_DSN is required")
			}

			applied, err := persistence.RunMigrations(cmd.Context(), pg.PoolHandle(), dir, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", persistence.DefaultMigrationsDir, "directory holding *.sql migrations")
	return cmd
}
