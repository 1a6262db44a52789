package fec

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// sampledRows is how many data rows get per-row structural checks. The
// balance check always covers the whole file.
const sampledRows = 9

var (
	datePattern      = regexp.MustCompile(`^\d{8}$`)
	balanceTolerance = decimal.New(1, -2)
)

// Report is the outcome of Validate. Valid is true iff Errors is empty.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks an FEC payload for structure and debit/credit balance.
// All findings are collected; only a payload without at least a header and
// one data row stops early.
func Validate(content string) Report {
	rows := Parse(content)
	if len(rows) < 2 {
		return Report{Errors: []string{
			"Le fichier doit contenir au moins une ligne d'en-tête et une ligne de données",
		}}
	}

	errs := []string{}
	if n := len(rows[0]); n != ColumnCount {
		errs = append(errs, fmt.Sprintf("En-tête invalide : %d colonnes au lieu de %d", n, ColumnCount))
	}

	for i := 1; i < len(rows) && i <= sampledRows; i++ {
		cols := rows[i]
		lineNo := i + 1
		if len(cols) != ColumnCount {
			errs = append(errs, fmt.Sprintf("Ligne %d : %d colonnes au lieu de %d", lineNo, len(cols), ColumnCount))
		}
		date := column(cols, colEcritureDate)
		if !datePattern.MatchString(date) {
			errs = append(errs, fmt.Sprintf("Ligne %d : date d'écriture invalide %q (format AAAAMMJJ attendu)", lineNo, date))
		}
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, cols := range rows[1:] {
		totalDebit = totalDebit.Add(parseAmount(column(cols, colDebit)))
		totalCredit = totalCredit.Add(parseAmount(column(cols, colCredit)))
	}
	if delta := totalDebit.Sub(totalCredit).Abs(); delta.GreaterThan(balanceTolerance) {
		errs = append(errs, fmt.Sprintf(
			"Déséquilibre débit/crédit : total débit %s, total crédit %s, écart %s",
			FormatTotal(totalDebit), FormatTotal(totalCredit), FormatTotal(delta)))
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}

func column(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}
