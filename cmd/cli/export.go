package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/go-petr/ledger/internal/balancerepo"
	"github.com/go-petr/ledger/internal/balanceservice"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/sheetpkg"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the balance sheet to a file",
	Long: `Write the balance sheet of every account to an xlsx or csv file.

Example:
  ledger export --format csv --output /tmp/balance.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Error().Err(err).Msg("cannot connect to database")
		return err
	}
	defer db.Close()

	output := exportOutput
	if output == "" {
		output = domain.BalanceExportFileName(exportFormat)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	service := balanceservice.New(balancerepo.NewRepoPGS(db))

	if err := service.Export(ctx, f, exportFormat); err != nil {
		_ = os.Remove(output)
		return err
	}

	logger.Info().Str("output", output).Msg("balance sheet written")

	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", sheetpkg.FormatXLSX, "output format: xlsx or csv")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file (default balance_comptable.<format>)")
}
