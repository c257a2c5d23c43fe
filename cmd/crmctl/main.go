// Command crmctl runs maintenance tasks against the CRM database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"mcacrm/internal/config"
	applog "mcacrm/internal/logger"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	config.LoadEnv()
	cfg := config.Load()
	if err := applog.InitLogger(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer applog.Sync()

	rootCmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "Maintenance commands for the merchant cash advance CRM",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd(cfg))
	rootCmd.AddCommand(recomputeCmd(cfg))
	rootCmd.AddCommand(summaryCmd(cfg))
	rootCmd.AddCommand(tokenCmd(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
