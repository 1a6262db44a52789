package ledger

import "fmt"

// JournalKey names a ledger partition independently of its FEC code.
type JournalKey string

const (
	JournalSales   JournalKey = "SALES"
	JournalBank    JournalKey = "BANK"
	JournalCash    JournalKey = "CASH"
	JournalGeneral JournalKey = "GENERAL"
)

// Journal is a ledger partition as written to the JournalCode/JournalLib columns.
type Journal struct {
	Key   JournalKey `json:"key"`
	Code  string     `json:"code"`
	Label string     `json:"label"`
}

var journals = map[JournalKey]Journal{
	JournalSales:   {Key: JournalSales, Code: "VE", Label: "Journal des ventes"},
	JournalBank:    {Key: JournalBank, Code: "BQ", Label: "Journal de banque"},
	JournalCash:    {Key: JournalCash, Code: "CA", Label: "Journal de caisse"},
	JournalGeneral: {Key: JournalGeneral, Code: "OD", Label: "Opérations diverses"},
}

var journalOrder = []JournalKey{JournalSales, JournalBank, JournalCash, JournalGeneral}

// JournalFor resolves a registry key, panicking on unknown keys.
func JournalFor(key JournalKey) Journal {
	j, ok := journals[key]
	if !ok {
		panic(fmt.Sprintf("ledger: no journal registered for %q", key))
	}
	return j
}

// AllJournals returns every registered journal.
func AllJournals() []Journal {
	all := make([]Journal, 0, len(journalOrder))
	for _, key := range journalOrder {
		all = append(all, journals[key])
	}
	return all
}

// JournalForPayment picks the cash journal for cash payments and the bank
// journal for every other method.
func JournalForPayment(method PaymentMethod) Journal {
	if method == PaymentCash {
		return JournalFor(JournalCash)
	}
	return JournalFor(JournalBank)
}

// TreasuryAccountFor is the account debited when a payment is received.
func TreasuryAccountFor(method PaymentMethod) Account {
	if method == PaymentCash {
		return AccountFor(AccountCash)
	}
	return AccountFor(AccountBank)
}
