package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/fec"
)

type exportLoadedMsg struct {
	file *client.FECFile
	err  error
}

// Column positions within an FEC row.
const (
	colJournalCode = 0
	colEntryNum    = 2
	colEntryDate   = 3
	colAccount     = 4
	colAuxAccount  = 6
	colLabel       = 10
	colDebit       = 11
	colCredit      = 12
)

type entriesModel struct {
	rows    [][]string
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

func (m *entriesModel) init(c *client.Client, p Period) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		f, err := c.ExportFEC(context.Background(), p.EntityID, p.Start, p.End)
		return exportLoadedMsg{file: f, err: err}
	}
}

func (m entriesModel) update(msg tea.Msg) (entriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case exportLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rows = nil
		if msg.err == nil {
			if rows := fec.Parse(msg.file.Content); len(rows) > 1 {
				m.rows = rows[1:]
			}
		}
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.PageUp):
			m.cursor = max(m.cursor-m.pageSize(), 0)
		case key.Matches(msg, keys.PageDown):
			m.cursor = max(min(m.cursor+m.pageSize(), len(m.rows)-1), 0)
		}
	}
	return m, nil
}

func (m *entriesModel) pageSize() int {
	if m.height-4 < 1 {
		return 10
	}
	return m.height - 4
}

// selected returns the parsed columns of the row under the cursor.
func (m *entriesModel) selected() []string {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor]
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func (m *entriesModel) view() string {
	if m.loading {
		return "Loading export..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.rows) == 0 {
		return dimStyle.Render("No entries for this period.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Écritures"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-3s %-16s %-8s %-7s %-8s %12s %12s  %s",
		"JNL", "ÉCRITURE", "DATE", "COMPTE", "AUX", "DÉBIT", "CRÉDIT", "LIBELLÉ")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.pageSize()
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.rows) && i < start+maxRows; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("  %-3s %-16s %-8s %-7s %-8s %12s %12s  %s",
			cell(r, colJournalCode),
			truncate(cell(r, colEntryNum), 16),
			cell(r, colEntryDate),
			cell(r, colAccount),
			cell(r, colAuxAccount),
			cell(r, colDebit),
			cell(r, colCredit),
			truncate(cell(r, colLabel), 40),
		)
		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		case cell(r, colDebit) != "":
			b.WriteString(debitStyle.Render(line))
		default:
			b.WriteString(creditStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d lines", len(m.rows)))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}
