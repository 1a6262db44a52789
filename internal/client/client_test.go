package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/simonvc/fecledger/internal/server"
	"github.com/simonvc/fecledger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(server.New(st, "").Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func day(s string) time.Time {
	d, err := ledger.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	entity, err := c.CreateEntity(ctx, "SARL Atelier", "123456789 00012")
	require.NoError(t, err)
	cl, err := c.CreateClient(ctx, entity.ID, "Boulangerie Martin")
	require.NoError(t, err)

	clients, err := c.ListClients(ctx, entity.ID)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	doc, err := c.CreateDocument(ctx, DocumentInput{
		EntityID: entity.ID,
		ClientID: cl.ID,
		Numero:   "F001",
		Type:     ledger.DocumentInvoice,
		Date:     day("2024-03-05"),
		Lines: []ledger.LineItem{
			{Description: "Prestation", Quantity: decimal.NewFromInt(1), UnitPriceHT: decimal.NewFromInt(100), VATRate: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "120", doc.TotalTTC.String())

	_, err = c.RecordPayment(ctx, doc.ID, decimal.NewFromInt(120), ledger.PaymentCash, day("2024-03-06"))
	require.NoError(t, err)

	f, err := c.ExportFEC(ctx, entity.ID, day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	assert.Equal(t, "12345678900012FEC20240331.txt", f.Name)
	assert.Equal(t, 1, f.Documents)
	assert.Equal(t, 5, f.Lines)
	assert.True(t, fec.Validate(f.Content).Valid)

	report, err := c.Validate(ctx, f.Content)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)

	stats, err := c.Stats(ctx, entity.ID, day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents.Invoices)
	assert.Equal(t, "120", stats.Amounts.SalesTTC.String())

	docs, err := c.ListDocuments(ctx, entity.ID, ledger.DocumentInvoice)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Payments, 1)

	chart, err := c.Chart(ctx)
	require.NoError(t, err)
	assert.Len(t, chart, 7)
	journals, err := c.Journals(ctx)
	require.NoError(t, err)
	assert.Len(t, journals, 4)
}

func TestClientStatusError(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.ExportFEC(ctx, "missing", day("2024-03-01"), day("2024-03-31"))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, se.Message, "entity not found")

	_, err = c.Stats(ctx, "missing", day("2024-04-01"), day("2024-03-31"))
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
}
