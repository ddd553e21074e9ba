/*
main.go - khata CLI entry point

PURPOSE:
  The presentation shell over the ledger core. Every command reads or
  writes through the repository and renders whatever the core returns;
  no balance or report math lives here.

STARTUP SEQUENCE:
  1. Load configuration from the environment (KHATA_DB, KHATA_LOG_*)
  2. Open the SQLite document store
  3. Seed first-run data via Repository.Bootstrap
  4. Dispatch the cobra command

EXAMPLES:
  khata add sale --client "Alice Smith" --product Milk --qty 10
  khata pay in --client "Alice Smith" --amount 800
  khata clients
  khata statement "Alice Smith"
  khata backup && khata restore Ledger_Backup_2025-12-01.json --yes
*/
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/daudsoft/khata/config"
	"github.com/daudsoft/khata/ledger"
	"github.com/daudsoft/khata/logging"
	"github.com/daudsoft/khata/store/sqlite"
)

type app struct {
	repo *ledger.Repository
	st   *sqlite.Store
	log  zerolog.Logger
}

func main() {
	a := &app{}
	var dbOverride string

	rootCmd := &cobra.Command{
		Use:           "khata",
		Short:         "Single-user bookkeeping ledger for a small retail business",
		Long:          "khata records credit sales, purchases and cash settlements against\nclients and suppliers, and derives balances, monthly reports and\nprintable statements from them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dbOverride != "" {
				cfg.DBPath = dbOverride
			}
			a.log = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

			st, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open ledger database: %w", err)
			}
			a.st = st
			a.repo = ledger.NewRepository(st, a.log)
			return a.repo.Bootstrap(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.st != nil {
				a.st.Close()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "SQLite database path (overrides KHATA_DB)")

	rootCmd.AddCommand(
		a.newAddCmd(),
		a.newPayCmd(),
		a.newEditCmd(),
		a.newDeleteCmd(),
		a.newListCmd(),
		a.newDashboardCmd(),
		a.newAccountsCmd(ledger.SideClient),
		a.newAccountsCmd(ledger.SideSupplier),
		a.newStatementCmd(),
		a.newReportCmd(),
		a.newReceiptCmd(),
		a.newBackupCmd(),
		a.newRestoreCmd(),
		a.newSettingsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
