package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/spf13/cobra"
)

var (
	exportPeriod periodFlags
	exportOut    string
	exportCheck  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the FEC of an entity for a period",
	Long: `Download the FEC of an entity for a period and write it under its
regulatory filename ({SIRET}FEC{YYYYMMDD}.txt) in --out. Use --out - to
write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := exportPeriod.parse()
		if err != nil {
			return err
		}

		c := client.New(flagServer)
		f, err := c.ExportFEC(context.Background(), exportPeriod.entity, start, end)
		if err != nil {
			return err
		}

		if exportOut == "-" {
			fmt.Fprint(cmd.OutOrStdout(), f.Content)
		} else {
			path := filepath.Join(exportOut, f.Name)
			if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info().Str("file", path).Int("documents", f.Documents).Int("lines", f.Lines).Msg("fec written")
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d documents, %d lines\n", path, f.Documents, f.Lines)
		}

		if exportCheck {
			report := fec.Validate(f.Content)
			printReport(cmd, report)
			if !report.Valid {
				return errors.New("exported FEC failed validation")
			}
		}
		return nil
	},
}

func init() {
	exportPeriod.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "Output directory, or - for stdout")
	exportCmd.Flags().BoolVar(&exportCheck, "check", false, "Validate the file after download")
	rootCmd.AddCommand(exportCmd)
}
