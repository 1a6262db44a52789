package ledger

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type StatsPeriod struct {
	Start string `json:"debut"`
	End   string `json:"fin"`
}

type StatsDocuments struct {
	Invoices    int `json:"factures"`
	CreditNotes int `json:"avoirs"`
	Total       int `json:"total"`
}

type StatsAmounts struct {
	SalesHT  decimal.Decimal `json:"ventesHT"`
	VAT      decimal.Decimal `json:"tva"`
	SalesTTC decimal.Decimal `json:"ventesTTC"`
}

// MarshalJSON writes the totals as bare JSON numbers. Decoding accepts both
// numbers and quoted strings.
func (a StatsAmounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SalesHT  json.Number `json:"ventesHT"`
		VAT      json.Number `json:"tva"`
		SalesTTC json.Number `json:"ventesTTC"`
	}{
		SalesHT:  json.Number(a.SalesHT.String()),
		VAT:      json.Number(a.VAT.String()),
		SalesTTC: json.Number(a.SalesTTC.String()),
	})
}

// Stats summarises an export period for operators.
type Stats struct {
	Period    StatsPeriod    `json:"periode"`
	Documents StatsDocuments `json:"documents"`
	Payments  int            `json:"paiements"`
	// Entries estimates the line count as documents*3 + payments*2. It
	// over-counts by one for every document without VAT.
	Entries int          `json:"ecritures"`
	Amounts StatsAmounts `json:"montants"`
}

// ComputeStats aggregates the postable documents of a period. Amounts are
// summed over invoices only.
func ComputeStats(docs []Document, start, end time.Time) Stats {
	st := Stats{
		Period: StatsPeriod{Start: start.Format(DateLayout), End: end.Format(DateLayout)},
		Amounts: StatsAmounts{
			SalesHT:  decimal.Zero,
			VAT:      decimal.Zero,
			SalesTTC: decimal.Zero,
		},
	}
	for i := range docs {
		d := &docs[i]
		if !d.Postable() {
			continue
		}
		switch d.Type {
		case DocumentInvoice:
			st.Documents.Invoices++
			st.Amounts.SalesHT = st.Amounts.SalesHT.Add(d.TotalHT)
			st.Amounts.VAT = st.Amounts.VAT.Add(d.TotalTVA)
			st.Amounts.SalesTTC = st.Amounts.SalesTTC.Add(d.TotalTTC)
		case DocumentCreditNote:
			st.Documents.CreditNotes++
		}
		st.Payments += len(d.Payments)
	}
	st.Documents.Total = st.Documents.Invoices + st.Documents.CreditNotes
	st.Entries = st.Documents.Total*3 + st.Payments*2
	return st
}
