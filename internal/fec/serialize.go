package fec

import (
	"strings"

	"github.com/simonvc/fecledger/internal/ledger"
)

const Separator = "|"

// Header lists the 18 columns mandated by article A47 A-1 of the LPF, in order.
var Header = []string{
	"JournalCode",
	"JournalLib",
	"EcritureNum",
	"EcritureDate",
	"CompteNum",
	"CompteLib",
	"CompAuxNum",
	"CompAuxLib",
	"PieceRef",
	"PieceDate",
	"EcritureLib",
	"Debit",
	"Credit",
	"EcritureLet",
	"DateLet",
	"ValidDate",
	"Montantdevise",
	"Idevise",
}

// ColumnCount is the number of columns in every FEC row.
const ColumnCount = 18

const (
	colEcritureDate = 3
	colDebit        = 11
	colCredit       = 12
)

// Row renders one entry line as its 18 column values.
func Row(l ledger.EntryLine) []string {
	return []string{
		l.JournalCode,
		l.JournalLabel,
		l.EntryNumber,
		FormatDate(l.EntryDate),
		l.AccountNumber,
		l.AccountLabel,
		l.AuxAccountNumber,
		l.AuxAccountLabel,
		l.PieceRef,
		FormatDate(l.PieceDate),
		l.Label,
		FormatAmount(l.Debit),
		FormatAmount(l.Credit),
		"", // EcritureLet
		"", // DateLet
		FormatDate(l.ValidDate),
		"", // Montantdevise
		"", // Idevise
	}
}

// Rows renders every line in order.
func Rows(lines []ledger.EntryLine) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, Row(l))
	}
	return rows
}

// Serialize produces the FEC payload: the header row then one row per line,
// joined by "\n" without a trailing newline. Values are not escaped.
func Serialize(lines []ledger.EntryLine) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, Separator))
	for _, l := range lines {
		b.WriteByte('\n')
		b.WriteString(strings.Join(Row(l), Separator))
	}
	return b.String()
}

// Parse splits an FEC payload into rows of columns, header included.
// Carriage returns are dropped and trailing blank lines ignored.
func Parse(content string) [][]string {
	lines := splitLines(content)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(line, Separator))
	}
	return rows
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
