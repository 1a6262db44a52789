package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/simonvc/fecledger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, "127.0.0.1:0").Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type seeded struct {
	entity ledger.Entity
	client ledger.Client
}

func seed(t *testing.T, h http.Handler) seeded {
	t.Helper()
	rec := do(t, h, "POST", "/api/v1/entities", map[string]string{"name": "SARL Atelier", "siret": "123 456 789 00012"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	e := decode[ledger.Entity](t, rec)

	rec = do(t, h, "POST", "/api/v1/clients", map[string]string{"entity_id": e.ID, "nom": "Boulangerie Martin"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[ledger.Client](t, rec)
	return seeded{entity: e, client: c}
}

func (s seeded) document(numero, typ, date string, lines ...map[string]string) map[string]any {
	return map[string]any{
		"entity_id": s.entity.ID,
		"client_id": s.client.ID,
		"numero":    numero,
		"type":      typ,
		"date":      date,
		"lines":     lines,
	}
}

func TestExportFlow(t *testing.T) {
	h := newTestServer(t)
	s := seed(t, h)

	rec := do(t, h, "POST", "/api/v1/documents", s.document("F001", "INVOICE", "2024-03-05",
		map[string]string{"description": "Prestation", "quantity": "2", "unit_price_ht": "50", "vat_rate": "20"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inv := decode[ledger.Document](t, rec)
	assert.Equal(t, "100", inv.TotalHT.String())
	assert.Equal(t, "120", inv.TotalTTC.String())
	assert.Equal(t, ledger.StatusIssued, inv.Status)

	rec = do(t, h, "POST", "/api/v1/documents/"+inv.ID+"/payments",
		map[string]string{"amount": "120", "method": "BANK_TRANSFER", "date": "2024-03-20"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, "POST", "/api/v1/documents", s.document("A001", "CREDIT_NOTE", "2024-03-10",
		map[string]string{"description": "Remise", "quantity": "1", "unit_price_ht": "50", "vat_rate": "0"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, "GET", "/api/v1/fec?entity_id="+s.entity.ID+"&start=2024-03-01&end=2024-03-31", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="12345678900012FEC20240331.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "2", rec.Header().Get("X-FEC-Documents"))
	assert.Equal(t, "7", rec.Header().Get("X-FEC-Lines"))

	content := rec.Body.String()
	rows := strings.Split(content, "\n")
	require.Len(t, rows, 8)
	assert.Equal(t, strings.Join(fec.Header, "|"), rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "VE|Journal des ventes|VEF001|20240305|411000|Clients|"))
	assert.True(t, strings.HasPrefix(rows[4], "BQ|Journal de banque|BQF001-"))
	assert.True(t, strings.HasPrefix(rows[6], "VE|Journal des ventes|VEA001|20240310|411000|"))

	rec = do(t, h, "POST", "/api/v1/fec/validate", content)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[fec.Report](t, rec)
	assert.True(t, report.Valid, report.Errors)

	rec = do(t, h, "GET", "/api/v1/fec/stats?entity_id="+s.entity.ID+"&start=2024-03-01&end=2024-03-31", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[ledger.Stats](t, rec)
	assert.Equal(t, 1, stats.Documents.Invoices)
	assert.Equal(t, 1, stats.Documents.CreditNotes)
	assert.Equal(t, 1, stats.Payments)
	assert.Equal(t, 8, stats.Entries)
	assert.Equal(t, "2024-03-01", stats.Period.Start)
}

func TestExportEmptyPeriod(t *testing.T) {
	h := newTestServer(t)
	s := seed(t, h)

	rec := do(t, h, "GET", "/api/v1/fec?entity_id="+s.entity.ID+"&start=2024-01-01&end=2024-01-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, strings.Join(fec.Header, "|"), rec.Body.String())
}

func TestExplicitTotalsOverrideLines(t *testing.T) {
	h := newTestServer(t)
	s := seed(t, h)

	doc := s.document("F009", "INVOICE", "2024-03-05")
	doc["total_ht"] = "100.00"
	doc["total_tva"] = "20.00"
	doc["total_ttc"] = "125.00"
	rec := do(t, h, "POST", "/api/v1/documents", doc)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[ledger.Document](t, rec)
	assert.Equal(t, "125", got.TotalTTC.String())

	rec = do(t, h, "GET", "/api/v1/fec?entity_id="+s.entity.ID+"&start=2024-03-01&end=2024-03-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := fec.Validate(rec.Body.String())
	assert.False(t, report.Valid)
}

func TestErrorStatuses(t *testing.T) {
	h := newTestServer(t)
	s := seed(t, h)

	rec := do(t, h, "POST", "/api/v1/documents", s.document("D001", "QUOTE", "2024-03-05"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	quote := decode[ledger.Document](t, rec)

	period := "&start=2024-03-01&end=2024-03-31"
	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"inverted period", "GET", "/api/v1/fec?entity_id=" + s.entity.ID + "&start=2024-04-01&end=2024-03-31", nil, http.StatusBadRequest},
		{"bad date", "GET", "/api/v1/fec?entity_id=" + s.entity.ID + "&start=2024-13-01&end=2024-03-31", nil, http.StatusBadRequest},
		{"missing entity id", "GET", "/api/v1/fec?" + period[1:], nil, http.StatusBadRequest},
		{"unknown entity", "GET", "/api/v1/fec/stats?entity_id=nope" + period, nil, http.StatusNotFound},
		{"duplicate numero", "POST", "/api/v1/documents", s.document("D001", "QUOTE", "2024-03-06"), http.StatusConflict},
		{"unknown type", "POST", "/api/v1/documents", s.document("X001", "RECEIPT", "2024-03-06"), http.StatusBadRequest},
		{"pipe in numero", "POST", "/api/v1/documents", s.document("F|1", "INVOICE", "2024-03-06"), http.StatusBadRequest},
		{"unknown client", "POST", "/api/v1/documents", map[string]any{
			"entity_id": s.entity.ID, "client_id": "nope", "numero": "F100", "type": "INVOICE", "date": "2024-03-06",
		}, http.StatusNotFound},
		{"quote payment", "POST", "/api/v1/documents/" + quote.ID + "/payments",
			map[string]string{"amount": "10", "method": "CARD", "date": "2024-03-07"}, http.StatusUnprocessableEntity},
		{"zero payment", "POST", "/api/v1/documents/" + quote.ID + "/payments",
			map[string]string{"amount": "0", "method": "CARD", "date": "2024-03-07"}, http.StatusBadRequest},
		{"unknown document", "GET", "/api/v1/documents/nope", nil, http.StatusNotFound},
		{"invalid json", "POST", "/api/v1/entities", "{", http.StatusBadRequest},
		{"missing siret", "POST", "/api/v1/entities", map[string]string{"name": "X"}, http.StatusBadRequest},
		{"bad limit", "GET", "/api/v1/documents?limit=-1", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
		})
	}
}

func TestValidateRejectsMalformedFile(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, "POST", "/api/v1/fec/validate", "JournalCode|JournalLib")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[fec.Report](t, rec)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
}

func TestListDocumentsAndClients(t *testing.T) {
	h := newTestServer(t)
	s := seed(t, h)

	for _, d := range []map[string]any{
		s.document("F001", "INVOICE", "2024-03-01"),
		s.document("D001", "QUOTE", "2024-03-02"),
	} {
		rec := do(t, h, "POST", "/api/v1/documents", d)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, "GET", "/api/v1/documents?entity_id="+s.entity.ID+"&type=INVOICE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	docs := decode[[]ledger.Document](t, rec)
	require.Len(t, docs, 1)
	assert.Equal(t, "F001", docs[0].Numero)

	rec = do(t, h, "GET", "/api/v1/documents?entity_id=nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = do(t, h, "GET", "/api/v1/entities/"+s.entity.ID+"/clients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	clients := decode[[]ledger.Client](t, rec)
	require.Len(t, clients, 1)
	assert.Equal(t, s.client.ID, clients[0].ID)
}

func TestReferenceData(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, "GET", "/api/v1/chart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	accounts := decode[[]ledger.Account](t, rec)
	assert.Len(t, accounts, 7)
	assert.Equal(t, "411000", accounts[0].Number)

	rec = do(t, h, "GET", "/api/v1/journals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	journals := decode[[]ledger.Journal](t, rec)
	require.Len(t, journals, 4)
	assert.Equal(t, "VE", journals[0].Code)
}
