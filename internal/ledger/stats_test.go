package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	pay := Payment{ID: "p1", Amount: dec("120"), Method: PaymentBankTransfer, Date: day("2024-03-20")}
	quote := invoice("D001", "2024-03-02", "999", "0", "999")
	quote.Type = DocumentQuote

	docs := []Document{
		invoice("F001", "2024-03-05", "100.00", "20.00", "120.00", pay),
		invoice("F002", "2024-03-06", "50.00", "0.00", "50.00"),
		creditNote("A001", "2024-03-07", "10.00", "2.00", "12.00"),
		quote,
	}
	st := ComputeStats(docs, day("2024-03-01"), day("2024-03-31"))

	assert.Equal(t, "2024-03-01", st.Period.Start)
	assert.Equal(t, "2024-03-31", st.Period.End)
	assert.Equal(t, 2, st.Documents.Invoices)
	assert.Equal(t, 1, st.Documents.CreditNotes)
	assert.Equal(t, 3, st.Documents.Total)
	assert.Equal(t, 1, st.Payments)
	assert.Equal(t, 11, st.Entries)
	assert.Equal(t, "150", st.Amounts.SalesHT.String())
	assert.Equal(t, "20", st.Amounts.VAT.String())
	assert.Equal(t, "170", st.Amounts.SalesTTC.String())

	// The estimate over-counts documents without VAT.
	assert.Greater(t, st.Entries, len(Synthesize(docs)))
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil, day("2024-01-01"), day("2024-01-31"))
	assert.Zero(t, st.Documents.Total)
	assert.Zero(t, st.Entries)
	assert.True(t, st.Amounts.SalesTTC.IsZero())
}

func TestStatsAmountsMarshalAsNumbers(t *testing.T) {
	st := Stats{Amounts: StatsAmounts{SalesHT: dec("150.5"), VAT: dec("20"), SalesTTC: dec("170.5")}}
	raw, err := json.Marshal(st)
	require.NoError(t, err)

	var out struct {
		Amounts json.RawMessage `json:"montants"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.JSONEq(t, `{"ventesHT":150.5,"tva":20,"ventesTTC":170.5}`, string(out.Amounts))

	var back Stats
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Amounts.SalesTTC.Equal(dec("170.5")))
}
