package fec

import (
	"strings"
	"time"
	"unicode"
)

// FileName builds the regulatory file name {SIREN/SIRET}FEC{YYYYMMDD}.txt
// for a period closing on periodEnd. Only whitespace is stripped from siret.
func FileName(siret string, periodEnd time.Time) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, siret)
	return clean + "FEC" + FormatDate(periodEnd) + ".txt"
}
