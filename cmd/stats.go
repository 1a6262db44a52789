package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	statsPeriod periodFlags
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the documents of an export period",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := statsPeriod.parse()
		if err != nil {
			return err
		}

		c := client.New(flagServer)
		st, err := c.Stats(context.Background(), statsPeriod.entity, start, end)
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printStats(st)
		return nil
	},
}

func printStats(st *ledger.Stats) {
	fmt.Printf("Période      %s → %s\n", st.Period.Start, st.Period.End)
	fmt.Printf("Factures     %d\n", st.Documents.Invoices)
	fmt.Printf("Avoirs       %d\n", st.Documents.CreditNotes)
	fmt.Printf("Paiements    %d\n", st.Payments)
	fmt.Printf("Écritures    ~%d\n", st.Entries)
	fmt.Printf("Ventes HT    %s\n", fec.FormatTotal(st.Amounts.SalesHT))
	fmt.Printf("TVA          %s\n", fec.FormatTotal(st.Amounts.VAT))
	fmt.Printf("Ventes TTC   %s\n", fec.FormatTotal(st.Amounts.SalesTTC))
}

func init() {
	statsPeriod.register(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print raw JSON")
	rootCmd.AddCommand(statsCmd)
}
