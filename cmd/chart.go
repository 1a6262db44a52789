package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/fecledger/internal/client"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the chart of accounts and journals used in exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)
		ctx := context.Background()

		accounts, err := c.Chart(ctx)
		if err != nil {
			return err
		}
		journals, err := c.Journals(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-8s %s\n", "COMPTE", "LIBELLÉ")
		for _, a := range accounts {
			fmt.Printf("%-8s %s\n", a.Number, a.Label)
		}
		fmt.Println()
		fmt.Printf("%-8s %s\n", "JOURNAL", "LIBELLÉ")
		for _, j := range journals {
			fmt.Printf("%-8s %s\n", j.Code, j.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
}
