package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/simonvc/fecledger/internal/store"
)

type lineRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

type createDocumentRequest struct {
	EntityID string                `json:"entity_id"`
	ClientID string                `json:"client_id"`
	Numero   string                `json:"numero"`
	Type     ledger.DocumentType   `json:"type"`
	Status   ledger.DocumentStatus `json:"status"`
	Date     string                `json:"date"`
	DueDate  string                `json:"due_date"`
	Lines    []lineRequest         `json:"lines"`

	// Explicit totals override those computed from lines.
	TotalHT  *decimal.Decimal `json:"total_ht"`
	TotalTVA *decimal.Decimal `json:"total_tva"`
	TotalTTC *decimal.Decimal `json:"total_ttc"`
}

func (req *createDocumentRequest) document() (*ledger.Document, error) {
	doc := &ledger.Document{
		EntityID: req.EntityID,
		Numero:   req.Numero,
		Type:     req.Type,
		Status:   req.Status,
		Client:   ledger.Client{ID: req.ClientID},
	}
	if doc.Status == "" {
		doc.Status = ledger.StatusIssued
	}

	var err error
	if doc.Date, err = ledger.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("%w: date: %v", ledger.ErrInvalidDocument, err)
	}
	if req.DueDate != "" {
		due, err := ledger.ParseDate(req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: due_date: %v", ledger.ErrInvalidDocument, err)
		}
		doc.DueDate = &due
	}

	for _, l := range req.Lines {
		doc.Lines = append(doc.Lines, ledger.LineItem{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPriceHT: l.UnitPriceHT,
			VATRate:     l.VATRate,
		})
	}
	doc.ComputeTotals()

	if req.TotalHT != nil {
		doc.TotalHT = *req.TotalHT
	}
	if req.TotalTVA != nil {
		doc.TotalTVA = *req.TotalTVA
	}
	if req.TotalTTC != nil {
		doc.TotalTTC = *req.TotalTTC
	}
	return doc, nil
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	doc, err := req.document()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.CreateDocument(r.Context(), doc); err != nil {
		s.fail(w, r, err)
		return
	}
	if !doc.TotalsConsistent() {
		s.log.Warn().
			Str("numero", doc.Numero).
			Str("total_ht", doc.TotalHT.String()).
			Str("total_tva", doc.TotalTVA.String()).
			Str("total_ttc", doc.TotalTTC.String()).
			Msg("document stored with inconsistent totals")
	}

	created, err := s.store.GetDocument(r.Context(), doc.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, doc)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.DocumentFilter{
		EntityID: q.Get("entity_id"),
		Type:     ledger.DocumentType(q.Get("type")),
	}
	if filter.Type != "" && !ledger.ValidDocumentType(filter.Type) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown document type %q", filter.Type))
		return
	}
	var err error
	if filter.Limit, err = queryInt(q, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.Offset, err = queryInt(q, "offset"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := s.store.ListDocuments(r.Context(), filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if docs == nil {
		docs = []ledger.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type recordPaymentRequest struct {
	Amount decimal.Decimal      `json:"amount"`
	Method ledger.PaymentMethod `json:"method"`
	Date   string               `json:"date"`
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: date: %v", ledger.ErrInvalidPayment, err))
		return
	}
	p := &ledger.Payment{
		DocumentID: chi.URLParam(r, "id"),
		Amount:     req.Amount,
		Method:     req.Method,
		Date:       date,
	}
	if err := s.store.RecordPayment(r.Context(), p); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// queryInt reads a non-negative integer parameter; absent means zero.
func queryInt(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}
