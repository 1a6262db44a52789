package ledger

import "fmt"

// AccountKey names a business concept mapped onto the French general chart
// of accounts (PCG).
type AccountKey string

const (
	AccountClientReceivable  AccountKey = "CLIENT_RECEIVABLE"
	AccountServiceRevenue    AccountKey = "SERVICE_REVENUE"
	AccountGoodsRevenue      AccountKey = "GOODS_REVENUE"
	AccountVATCollected      AccountKey = "VAT_COLLECTED"
	AccountBank              AccountKey = "BANK"
	AccountCash              AccountKey = "CASH"
	AccountCreditNoteRevenue AccountKey = "CREDIT_NOTE_REVENUE"
)

// Account is a chart entry as written to the CompteNum/CompteLib columns.
type Account struct {
	Key    AccountKey `json:"key"`
	Number string     `json:"number"`
	Label  string     `json:"label"`
}

var accounts = map[AccountKey]Account{
	AccountClientReceivable:  {Key: AccountClientReceivable, Number: "411000", Label: "Clients"},
	AccountServiceRevenue:    {Key: AccountServiceRevenue, Number: "706000", Label: "Prestations de services"},
	AccountGoodsRevenue:      {Key: AccountGoodsRevenue, Number: "707000", Label: "Ventes de marchandises"},
	AccountVATCollected:      {Key: AccountVATCollected, Number: "445710", Label: "TVA collectée"},
	AccountBank:              {Key: AccountBank, Number: "512000", Label: "Banque"},
	AccountCash:              {Key: AccountCash, Number: "530000", Label: "Caisse"},
	AccountCreditNoteRevenue: {Key: AccountCreditNoteRevenue, Number: "709000", Label: "Rabais, remises et ristournes accordés"},
}

// accountOrder is the listing order used by ChartOfAccounts.
var accountOrder = []AccountKey{
	AccountBank,
	AccountCash,
	AccountClientReceivable,
	AccountVATCollected,
	AccountServiceRevenue,
	AccountGoodsRevenue,
	AccountCreditNoteRevenue,
}

// AccountFor resolves a registry key. The registry is closed, so an unknown
// key is a programming error and panics.
func AccountFor(key AccountKey) Account {
	acct, ok := accounts[key]
	if !ok {
		panic(fmt.Sprintf("ledger: no account registered for %q", key))
	}
	return acct
}

// ChartOfAccounts returns every registered account.
func ChartOfAccounts() []Account {
	all := make([]Account, 0, len(accountOrder))
	for _, key := range accountOrder {
		all = append(all, accounts[key])
	}
	return all
}
