package cmd

import (
	"io"

	"github.com/simonvc/fecledger/internal/config"
	"github.com/simonvc/fecledger/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg          = config.Load()
	flagServer   string
	flagDB       string
	flagLogLevel string
	logCloser    io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "fecledger",
	Short: "Fichier des Écritures Comptables generator for sales documents",
	Long: "Records invoices, credit notes and payments in SQLite and derives the French " +
		"FEC (Article A47 A-1 LPF) for any period, with a local validator.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lc := cfg.LoggerConfig()
		if flagLogLevel != "" {
			lc.Level = flagLogLevel
		}
		closer, err := logger.Setup(lc)
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", cfg.ServerURL, "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", cfg.DBPath, "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

func Execute() error {
	return rootCmd.Execute()
}
