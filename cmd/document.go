package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage invoices, credit notes and quotes",
}

// document create
var (
	docEntity  string
	docClient  string
	docNumero  string
	docType    string
	docStatus  string
	docDate    string
	docDue     string
	docLines   []string
	docHT      string
	docTVA     string
	docTTC     string
	docListTyp string
)

var documentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a document",
	Long: `Create a document. Lines are given as "description;quantity;unit price HT;VAT rate",
for instance --line "Audit;2;450;20". Totals are computed from the lines unless
--ht, --tva or --ttc are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := client.DocumentInput{
			EntityID: docEntity,
			ClientID: docClient,
			Numero:   docNumero,
			Type:     ledger.DocumentType(strings.ToUpper(docType)),
			Status:   ledger.DocumentStatus(strings.ToUpper(docStatus)),
		}

		var err error
		if in.Date, err = ledger.ParseDate(docDate); err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		if docDue != "" {
			due, err := ledger.ParseDate(docDue)
			if err != nil {
				return fmt.Errorf("--due: %w", err)
			}
			in.DueDate = &due
		}
		for _, raw := range docLines {
			l, err := parseLine(raw)
			if err != nil {
				return err
			}
			in.Lines = append(in.Lines, l)
		}
		if in.TotalHT, err = optionalAmount("--ht", docHT); err != nil {
			return err
		}
		if in.TotalTVA, err = optionalAmount("--tva", docTVA); err != nil {
			return err
		}
		if in.TotalTTC, err = optionalAmount("--ttc", docTTC); err != nil {
			return err
		}

		c := client.New(flagServer)
		doc, err := c.CreateDocument(context.Background(), in)
		if err != nil {
			return err
		}
		fmt.Printf("Document created: %s %s %s HT %s TVA %s TTC %s\n",
			doc.ID, doc.Type, doc.Numero,
			fec.FormatAmount(doc.TotalHT), fec.FormatAmount(doc.TotalTVA), fec.FormatAmount(doc.TotalTTC))
		return nil
	},
}

// document pay
var (
	payAmount string
	payMethod string
	payDate   string
)

var documentPayCmd = &cobra.Command{
	Use:   "pay [document-id]",
	Short: "Record a payment against a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(strings.ReplaceAll(payAmount, ",", "."))
		if err != nil {
			return fmt.Errorf("--amount: %w", err)
		}
		date, err := ledger.ParseDate(payDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}

		c := client.New(flagServer)
		p, err := c.RecordPayment(context.Background(), args[0], amount,
			ledger.PaymentMethod(strings.ToUpper(payMethod)), date)
		if err != nil {
			return err
		}
		fmt.Printf("Payment recorded: %s %s %s on %s\n",
			p.ID, fec.FormatAmount(p.Amount), p.Method, p.Date.Format(ledger.DateLayout))
		return nil
	},
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		docs, err := c.ListDocuments(context.Background(), docEntity, ledger.DocumentType(strings.ToUpper(docListTyp)))
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents found.")
			return nil
		}

		fmt.Printf("%-10s %-12s %-10s %-10s %-24s %12s %9s\n", "DATE", "NUMERO", "TYPE", "STATUS", "CLIENT", "TTC", "PAYMENTS")
		fmt.Printf("%-10s %-12s %-10s %-10s %-24s %12s %9s\n", "----", "------", "----", "------", "------", "---", "--------")
		for _, d := range docs {
			fmt.Printf("%-10s %-12s %-10s %-10s %-24s %12s %9d\n",
				d.Date.Format(ledger.DateLayout), d.Numero, d.Type, d.Status,
				truncate(d.Client.Nom, 24), fec.FormatAmount(d.TotalTTC), len(d.Payments))
		}
		return nil
	},
}

// parseLine reads "description;quantity;unit price;vat rate". Decimal
// commas are accepted.
func parseLine(raw string) (ledger.LineItem, error) {
	parts := strings.Split(raw, ";")
	if len(parts) != 4 {
		return ledger.LineItem{}, fmt.Errorf("--line %q: expected description;quantity;unit price;vat rate", raw)
	}
	var nums [3]decimal.Decimal
	for i, p := range parts[1:] {
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(p), ",", "."))
		if err != nil {
			return ledger.LineItem{}, fmt.Errorf("--line %q: %w", raw, err)
		}
		nums[i] = d
	}
	return ledger.LineItem{
		Description: strings.TrimSpace(parts[0]),
		Quantity:    nums[0],
		UnitPriceHT: nums[1],
		VATRate:     nums[2],
	}, nil
}

func optionalAmount(flag, v string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag, err)
	}
	return &d, nil
}

func init() {
	documentCreateCmd.Flags().StringVar(&docEntity, "entity", "", "Entity ID")
	documentCreateCmd.Flags().StringVar(&docClient, "client", "", "Client ID")
	documentCreateCmd.Flags().StringVar(&docNumero, "numero", "", "Document number")
	documentCreateCmd.Flags().StringVar(&docType, "type", string(ledger.DocumentInvoice), "INVOICE, CREDIT_NOTE or QUOTE")
	documentCreateCmd.Flags().StringVar(&docStatus, "status", string(ledger.StatusIssued), "DRAFT, ISSUED, PAID or CANCELLED")
	documentCreateCmd.Flags().StringVar(&docDate, "date", "", "Issue date (YYYY-MM-DD)")
	documentCreateCmd.Flags().StringVar(&docDue, "due", "", "Due date (YYYY-MM-DD)")
	documentCreateCmd.Flags().StringArrayVar(&docLines, "line", nil, "Line item, repeatable")
	documentCreateCmd.Flags().StringVar(&docHT, "ht", "", "Explicit total HT")
	documentCreateCmd.Flags().StringVar(&docTVA, "tva", "", "Explicit total TVA")
	documentCreateCmd.Flags().StringVar(&docTTC, "ttc", "", "Explicit total TTC")
	documentCreateCmd.MarkFlagRequired("entity")
	documentCreateCmd.MarkFlagRequired("client")
	documentCreateCmd.MarkFlagRequired("numero")
	documentCreateCmd.MarkFlagRequired("date")

	documentPayCmd.Flags().StringVar(&payAmount, "amount", "", "Amount received")
	documentPayCmd.Flags().StringVar(&payMethod, "method", string(ledger.PaymentBankTransfer), "CASH, CHECK, CARD, BANK_TRANSFER, DIRECT_DEBIT or OTHER")
	documentPayCmd.Flags().StringVar(&payDate, "date", "", "Payment date (YYYY-MM-DD)")
	documentPayCmd.MarkFlagRequired("amount")
	documentPayCmd.MarkFlagRequired("date")

	documentListCmd.Flags().StringVar(&docEntity, "entity", "", "Filter by entity")
	documentListCmd.Flags().StringVar(&docListTyp, "type", "", "Filter by type")

	documentCmd.AddCommand(documentCreateCmd)
	documentCmd.AddCommand(documentPayCmd)
	documentCmd.AddCommand(documentListCmd)

	rootCmd.AddCommand(documentCmd)
}
