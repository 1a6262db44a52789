package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DocumentType string

const (
	DocumentQuote      DocumentType = "QUOTE"
	DocumentInvoice    DocumentType = "INVOICE"
	DocumentCreditNote DocumentType = "CREDIT_NOTE"
)

var AllDocumentTypes = []DocumentType{DocumentQuote, DocumentInvoice, DocumentCreditNote}

type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusIssued    DocumentStatus = "ISSUED"
	StatusPaid      DocumentStatus = "PAID"
	StatusCancelled DocumentStatus = "CANCELLED"
)

var AllDocumentStatuses = []DocumentStatus{StatusDraft, StatusIssued, StatusPaid, StatusCancelled}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentDirectDebit  PaymentMethod = "DIRECT_DEBIT"
	PaymentOther        PaymentMethod = "OTHER"
)

var AllPaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCheck,
	PaymentCard,
	PaymentBankTransfer,
	PaymentDirectDebit,
	PaymentOther,
}

// Entity is the business issuing documents. Its SIRET names the FEC file.
type Entity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SIRET     string    `json:"siret"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entity_id"`
	Nom       string    `json:"nom"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type LineItem struct {
	ID          string          `json:"id,omitempty"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
	VATRate     decimal.Decimal `json:"vat_rate"` // percent, e.g. 20
	TotalHT     decimal.Decimal `json:"total_ht"`
}

type Payment struct {
	ID         string          `json:"id"`
	DocumentID string          `json:"document_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// Document is an invoice, credit note or quote issued to a client.
type Document struct {
	ID        string          `json:"id"`
	EntityID  string          `json:"entity_id"`
	Numero    string          `json:"numero"`
	Type      DocumentType    `json:"type"`
	Status    DocumentStatus  `json:"status"`
	Date      time.Time       `json:"date"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	TotalHT   decimal.Decimal `json:"total_ht"`
	TotalTVA  decimal.Decimal `json:"total_tva"`
	TotalTTC  decimal.Decimal `json:"total_ttc"`
	Client    Client          `json:"client"`
	Lines     []LineItem      `json:"lines"`
	Payments  []Payment       `json:"payments"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}

func ValidDocumentType(t DocumentType) bool {
	for _, v := range AllDocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidDocumentStatus(s DocumentStatus) bool {
	for _, v := range AllDocumentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	for _, v := range AllPaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// IsCreditNote reports whether postings for d are reversed.
func (d *Document) IsCreditNote() bool {
	return d.Type == DocumentCreditNote
}

// Postable reports whether d produces accounting entries: issued invoices and
// credit notes only. Quotes and drafts never reach the ledger.
func (d *Document) Postable() bool {
	if d.Status == StatusDraft {
		return false
	}
	return d.Type == DocumentInvoice || d.Type == DocumentCreditNote
}

// TotalsConsistent reports whether TTC equals HT + TVA to the cent.
func (d *Document) TotalsConsistent() bool {
	return d.TotalHT.Add(d.TotalTVA).Round(2).Equal(d.TotalTTC.Round(2))
}

// ComputeTotals derives line and document totals from quantities, unit
// prices and VAT rates. Each line is rounded half-up to the cent before
// summing.
func (d *Document) ComputeTotals() {
	ht := decimal.Zero
	tva := decimal.Zero
	for i := range d.Lines {
		l := &d.Lines[i]
		l.TotalHT = l.Quantity.Mul(l.UnitPriceHT).Round(2)
		ht = ht.Add(l.TotalHT)
		tva = tva.Add(l.TotalHT.Mul(l.VATRate).Div(decimal.NewFromInt(100)).Round(2))
	}
	d.TotalHT = ht
	d.TotalTVA = tva
	d.TotalTTC = ht.Add(tva)
}

// Validate checks the structural invariants a stored document must hold.
// Totals are not cross-checked: inconsistent upstream totals are propagated
// to the export unchanged.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Numero) == "" {
		return fmt.Errorf("%w: numero is required", ErrInvalidDocument)
	}
	if strings.Contains(d.Numero, "|") {
		return fmt.Errorf("%w: numero cannot contain '|'", ErrInvalidDocument)
	}
	if !ValidDocumentType(d.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDocument, d.Type)
	}
	if !ValidDocumentStatus(d.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDocument, d.Status)
	}
	if d.EntityID == "" {
		return fmt.Errorf("%w: entity_id is required", ErrInvalidDocument)
	}
	if d.Client.ID == "" {
		return fmt.Errorf("%w: client is required", ErrInvalidDocument)
	}
	if d.Date.IsZero() {
		return fmt.Errorf("%w: issue date is required", ErrInvalidDocument)
	}
	if d.DueDate != nil && d.DueDate.Before(d.Date) {
		return fmt.Errorf("%w: due date precedes issue date", ErrInvalidDocument)
	}
	if d.TotalHT.IsNegative() || d.TotalTVA.IsNegative() || d.TotalTTC.IsNegative() {
		return fmt.Errorf("%w: totals cannot be negative", ErrInvalidDocument)
	}
	return nil
}

// Validate checks a payment before it is recorded.
func (p *Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if !ValidPaymentMethod(p.Method) {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidPayment, p.Method)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: payment date is required", ErrInvalidPayment)
	}
	return nil
}

func (e *Entity) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntity)
	}
	if strings.TrimSpace(e.SIRET) == "" {
		return fmt.Errorf("%w: siret is required", ErrInvalidEntity)
	}
	return nil
}

func (c *Client) Validate() error {
	if c.EntityID == "" {
		return fmt.Errorf("%w: entity_id is required", ErrInvalidClient)
	}
	if strings.TrimSpace(c.Nom) == "" {
		return fmt.Errorf("%w: nom is required", ErrInvalidClient)
	}
	if strings.Contains(c.Nom, "|") {
		return fmt.Errorf("%w: nom cannot contain '|'", ErrInvalidClient)
	}
	return nil
}

// ValidatePeriod rejects empty bounds and periods ending before they start.
func ValidatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidPeriod)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidPeriod,
			start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}

// DateLayout is the calendar-date layout used by the API and the store.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
