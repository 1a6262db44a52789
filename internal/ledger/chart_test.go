package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountRegistry(t *testing.T) {
	keys := []AccountKey{
		AccountClientReceivable,
		AccountServiceRevenue,
		AccountGoodsRevenue,
		AccountVATCollected,
		AccountBank,
		AccountCash,
		AccountCreditNoteRevenue,
	}
	for _, k := range keys {
		acct := AccountFor(k)
		assert.Equal(t, k, acct.Key)
		assert.Len(t, acct.Number, 6, "account %s", k)
		assert.NotEmpty(t, acct.Label)
	}
	assert.Len(t, ChartOfAccounts(), len(keys))

	assert.Panics(t, func() { AccountFor("UNKNOWN") })
}

func TestJournalRegistry(t *testing.T) {
	assert.Equal(t, "VE", JournalFor(JournalSales).Code)
	assert.Equal(t, "BQ", JournalFor(JournalBank).Code)
	assert.Equal(t, "CA", JournalFor(JournalCash).Code)
	assert.Equal(t, "OD", JournalFor(JournalGeneral).Code)
	assert.Len(t, AllJournals(), 4)
	assert.Panics(t, func() { JournalFor("UNKNOWN") })
}

func TestJournalForPayment(t *testing.T) {
	assert.Equal(t, "CA", JournalForPayment(PaymentCash).Code)
	assert.Equal(t, "530000", TreasuryAccountFor(PaymentCash).Number)
	for _, m := range []PaymentMethod{PaymentCheck, PaymentCard, PaymentBankTransfer, PaymentDirectDebit, PaymentOther} {
		assert.Equal(t, "BQ", JournalForPayment(m).Code, "method %s", m)
		assert.Equal(t, "512000", TreasuryAccountFor(m).Number, "method %s", m)
	}
}
