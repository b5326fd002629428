package cli

import (
	"github.com/spf13/cobra"

	"github.com/go-petr/ledger/pkg/dbpkg"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(false)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(true)
	},
}

func runMigrate(down bool) error {
	if err := dbpkg.Migrate(config.MigrationURL, config.DBSource, down); err != nil {
		logger.Error().Err(err).Bool("down", down).Msg("migration failed")
		return err
	}

	logger.Info().Bool("down", down).Msg("migration done")

	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
