package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/simonvc/fecledger/internal/fec"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check an FEC file for structure and balance",
	Long:  "Check an FEC file locally. Reads stdin when the file is -.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		report := fec.Validate(string(data))
		printReport(cmd, report)
		if !report.Valid {
			return fmt.Errorf("%d error(s) found", len(report.Errors))
		}
		return nil
	},
}

func printReport(cmd *cobra.Command, r fec.Report) {
	out := cmd.OutOrStdout()
	if r.Valid {
		fmt.Fprintln(out, "FEC valide")
		return
	}
	fmt.Fprintln(out, "FEC invalide :")
	for _, e := range r.Errors {
		fmt.Fprintf(out, "  - %s\n", e)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
