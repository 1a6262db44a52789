package fec

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "20060102"

// FormatDate renders t as YYYYMMDD, the only date form the FEC accepts.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatAmount renders a monetary amount with two decimals and a comma
// separator. Zero renders as the empty string: an empty Debit or Credit
// column means "not applicable", whereas "0,00" would be read as a movement.
func FormatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// parseAmount reads a Debit/Credit column back. Empty and unparseable
// values count as zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatTotal is FormatAmount without the zero special case, for reports
// and messages.
func FormatTotal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
