package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// EntryLine is one debit or credit movement of an FEC entry. Lines sharing
// an EntryNumber form a balanced entry. Lettering and foreign-currency
// columns are not modelled and serialize empty.
type EntryLine struct {
	JournalCode      string          `json:"journal_code"`
	JournalLabel     string          `json:"journal_label"`
	EntryNumber      string          `json:"entry_number"`
	EntryDate        time.Time       `json:"entry_date"`
	AccountNumber    string          `json:"account_number"`
	AccountLabel     string          `json:"account_label"`
	AuxAccountNumber string          `json:"aux_account_number,omitempty"`
	AuxAccountLabel  string          `json:"aux_account_label,omitempty"`
	PieceRef         string          `json:"piece_ref"`
	PieceDate        time.Time       `json:"piece_date"`
	Label            string          `json:"label"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	ValidDate        time.Time       `json:"valid_date"`
}

// IsDebit reports whether the line sits on the debit side. A zero-amount
// line is on neither side.
func (l *EntryLine) IsDebit() bool {
	return !l.Debit.IsZero()
}

// Synthesize derives the ordered FEC entry lines for a set of documents.
// Documents are taken in ascending issue date, ties keeping input order.
// Each document yields its sales entry (receivable, revenue, optional VAT)
// followed by one treasury entry per payment, in payment order.
func Synthesize(docs []Document) []EntryLine {
	postable := make([]*Document, 0, len(docs))
	for i := range docs {
		if docs[i].Postable() {
			postable = append(postable, &docs[i])
		}
	}
	sort.SliceStable(postable, func(i, j int) bool {
		return postable[i].Date.Before(postable[j].Date)
	})

	lines := make([]EntryLine, 0, len(postable)*5)
	for _, doc := range postable {
		lines = appendSalesEntry(lines, doc)
		for i := range doc.Payments {
			lines = appendPaymentEntry(lines, doc, &doc.Payments[i])
		}
	}
	return lines
}

func appendSalesEntry(lines []EntryLine, doc *Document) []EntryLine {
	journal := JournalFor(JournalSales)
	number := journal.Code + doc.Numero
	label := documentLabel(doc)
	credit := doc.IsCreditNote()

	base := EntryLine{
		JournalCode:  journal.Code,
		JournalLabel: journal.Label,
		EntryNumber:  number,
		EntryDate:    doc.Date,
		PieceRef:     doc.Numero,
		PieceDate:    doc.Date,
		Label:        label,
		ValidDate:    doc.Date,
	}

	// Receivable is always written, even at zero, so every document keeps
	// exactly one client line.
	receivable := base
	setAccount(&receivable, AccountFor(AccountClientReceivable))
	receivable.AuxAccountNumber = auxAccountNumber(doc.Client)
	receivable.AuxAccountLabel = doc.Client.Nom
	setAmount(&receivable, doc.TotalTTC, !credit)
	lines = append(lines, receivable)

	revenueKey := AccountServiceRevenue
	if credit {
		revenueKey = AccountCreditNoteRevenue
	}
	revenue := base
	setAccount(&revenue, AccountFor(revenueKey))
	setAmount(&revenue, doc.TotalHT, credit)
	lines = append(lines, revenue)

	if doc.TotalTVA.IsPositive() {
		vat := base
		setAccount(&vat, AccountFor(AccountVATCollected))
		setAmount(&vat, doc.TotalTVA, credit)
		lines = append(lines, vat)
	}
	return lines
}

func appendPaymentEntry(lines []EntryLine, doc *Document, p *Payment) []EntryLine {
	journal := JournalForPayment(p.Method)
	base := EntryLine{
		JournalCode:  journal.Code,
		JournalLabel: journal.Label,
		EntryNumber:  journal.Code + doc.Numero + "-" + prefix(p.ID, 4),
		EntryDate:    p.Date,
		PieceRef:     doc.Numero,
		PieceDate:    doc.Date,
		Label:        "Règlement " + doc.Numero + " - " + doc.Client.Nom,
		ValidDate:    p.Date,
	}

	treasury := base
	setAccount(&treasury, TreasuryAccountFor(p.Method))
	treasury.Debit = p.Amount

	receivable := base
	setAccount(&receivable, AccountFor(AccountClientReceivable))
	receivable.AuxAccountNumber = auxAccountNumber(doc.Client)
	receivable.AuxAccountLabel = doc.Client.Nom
	receivable.Credit = p.Amount

	return append(lines, treasury, receivable)
}

func setAccount(l *EntryLine, acct Account) {
	l.AccountNumber = acct.Number
	l.AccountLabel = acct.Label
}

func setAmount(l *EntryLine, amount decimal.Decimal, debit bool) {
	if debit {
		l.Debit = amount
	} else {
		l.Credit = amount
	}
}

func documentLabel(doc *Document) string {
	kind := "Facture"
	if doc.IsCreditNote() {
		kind = "Avoir"
	}
	return kind + " " + doc.Numero + " - " + doc.Client.Nom
}

// auxAccountNumber is the client sub-ledger code: "C" and the first six
// characters of the client id.
func auxAccountNumber(c Client) string {
	return "C" + prefix(c.ID, 6)
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
