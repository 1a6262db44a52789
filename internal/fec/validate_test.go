package fec

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerWith(n int) string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("C%d", i)
	}
	return strings.Join(cols, Separator)
}

func dataRow(date, debit, credit string) string {
	cols := make([]string, ColumnCount)
	cols[colEcritureDate] = date
	cols[colDebit] = debit
	cols[colCredit] = credit
	return strings.Join(cols, Separator)
}

func TestValidateGeneratedInvoice(t *testing.T) {
	out := Serialize(ledger.Synthesize([]ledger.Document{sampleInvoice()}))
	r := Validate(out)
	assert.True(t, r.Valid, "errors: %v", r.Errors)
	assert.Empty(t, r.Errors)
}

func TestValidateHeaderOnly(t *testing.T) {
	for _, in := range []string{"", Serialize(nil), Serialize(nil) + "\n"} {
		r := Validate(in)
		assert.False(t, r.Valid)
		require.Len(t, r.Errors, 1)
		assert.Contains(t, r.Errors[0], "au moins une ligne")
	}
}

func TestValidateHeaderColumnCount(t *testing.T) {
	body := dataRow("20240101", "10,00", "") + "\n" + dataRow("20240101", "", "10,00")
	for _, n := range []int{17, 19} {
		r := Validate(headerWith(n) + "\n" + body)
		assert.False(t, r.Valid, "header with %d columns", n)
		require.Len(t, r.Errors, 1)
		assert.Contains(t, r.Errors[0], fmt.Sprintf("%d colonnes", n))
	}
	r := Validate(headerWith(18) + "\n" + body)
	assert.True(t, r.Valid, "errors: %v", r.Errors)
}

func TestValidateRowChecksAreSampled(t *testing.T) {
	rows := []string{strings.Join(Header, Separator)}
	for i := 0; i < 12; i++ {
		rows = append(rows, dataRow("2024-01-01", "", ""))
	}
	r := Validate(strings.Join(rows, "\n"))
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors, sampledRows)
	assert.Contains(t, r.Errors[0], "Ligne 2")
	assert.Contains(t, r.Errors[len(r.Errors)-1], "Ligne 10")
}

func TestValidateShortRow(t *testing.T) {
	in := strings.Join(Header, Separator) + "\nVE|Journal des ventes|VEF001"
	r := Validate(in)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 2)
	assert.Contains(t, r.Errors[0], "Ligne 2 : 3 colonnes")
	assert.Contains(t, r.Errors[1], "date d'écriture invalide")
}

func TestValidateBalanceScansWholeFile(t *testing.T) {
	rows := []string{strings.Join(Header, Separator)}
	for i := 0; i < 20; i++ {
		rows = append(rows, dataRow("20240101", "1,00", ""), dataRow("20240101", "", "1,00"))
	}
	// Imbalance beyond the sampled rows.
	rows = append(rows, dataRow("20240101", "0,50", ""))

	r := Validate(strings.Join(rows, "\n"))
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Déséquilibre débit/crédit : total débit 20,50, total crédit 20,00, écart 0,50", r.Errors[0])
}

func TestValidateBalanceTolerance(t *testing.T) {
	in := strings.Join([]string{
		strings.Join(Header, Separator),
		dataRow("20240101", "10,01", ""),
		dataRow("20240101", "", "10,00"),
	}, "\n")
	assert.True(t, Validate(in).Valid)
}

func TestValidateInconsistentDocument(t *testing.T) {
	doc := sampleInvoice()
	doc.TotalTTC = amount("125.00")
	doc.Payments = nil

	r := Validate(Serialize(ledger.Synthesize([]ledger.Document{doc})))
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "écart 5,00")
	assert.Contains(t, r.Errors[0], "total débit 125,00")
	assert.Contains(t, r.Errors[0], "total crédit 120,00")
}

func TestValidateCRLF(t *testing.T) {
	out := Serialize(ledger.Synthesize([]ledger.Document{sampleInvoice()}))
	assert.True(t, Validate(strings.ReplaceAll(out, "\n", "\r\n")+"\r\n").Valid)
}

func TestGeneratedExportsAlwaysBalance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	methods := ledger.AllPaymentMethods
	cents := func(max int64) decimal.Decimal {
		return decimal.New(rng.Int63n(max), -2)
	}

	for run := 0; run < 50; run++ {
		var docs []ledger.Document
		for i := 0; i < 1+rng.Intn(15); i++ {
			ht := cents(1_000_000)
			tva := decimal.Zero
			if rng.Intn(3) > 0 {
				tva = ht.Mul(decimal.NewFromInt(20)).Div(decimal.NewFromInt(100)).Round(2)
			}
			doc := ledger.Document{
				ID:       fmt.Sprintf("d%d", i),
				Numero:   fmt.Sprintf("F%04d", i),
				Type:     ledger.DocumentInvoice,
				Status:   ledger.StatusIssued,
				Date:     date(2024, 1, 1+rng.Intn(28)),
				TotalHT:  ht,
				TotalTVA: tva,
				TotalTTC: ht.Add(tva),
				Client:   ledger.Client{ID: fmt.Sprintf("client-%d", rng.Intn(5)), Nom: "Client"},
			}
			if rng.Intn(4) == 0 {
				doc.Type = ledger.DocumentCreditNote
			}
			for p := 0; p < rng.Intn(3); p++ {
				doc.Payments = append(doc.Payments, ledger.Payment{
					ID:     fmt.Sprintf("%04x%d", rng.Intn(0xffff), p),
					Amount: cents(100_000).Add(decimal.New(1, -2)),
					Method: methods[rng.Intn(len(methods))],
					Date:   date(2024, 2, 1+rng.Intn(28)),
				})
			}
			docs = append(docs, doc)
		}

		r := Validate(Serialize(ledger.Synthesize(docs)))
		require.True(t, r.Valid, "run %d: %v", run, r.Errors)
	}
}
