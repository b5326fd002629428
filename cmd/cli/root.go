// Package cli provides the ledger command line interface.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-petr/ledger/internal/middleware"
	"github.com/go-petr/ledger/pkg/configpkg"
)

var (
	configPath string

	config configpkg.Config
	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Double-entry accounting ledger",
	Long: `ledger serves the accounting API and runs the maintenance tasks around it.

Example:
  ledger migrate up
  ledger user create --username boss --password secret1 --fullname Boss --email boss@example.com --role admin
  ledger serve
  ledger export --format csv`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		config, err = configpkg.Load(configPath)
		if err != nil {
			return err
		}

		logger = middleware.CreateLogger(config)
		cmd.SetContext(logger.WithContext(cmd.Context()))

		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory holding app.env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(userCmd)
}
