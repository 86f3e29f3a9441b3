package commands

import (
	"fmt"

	"github.com/mgarrido/chatforge/internal/infra/config"
	"github.com/mgarrido/chatforge/internal/infra/sqlite"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := sqlite.NewDB(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close() //nolint:errcheck

			if err := sqlite.MigrateUp(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			v, err := sqlite.MigrationVersion(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database at migration version %d\n", v)
			return nil
		},
	}
}
