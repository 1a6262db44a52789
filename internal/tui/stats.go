package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
)

type statsLoadedMsg struct {
	stats *ledger.Stats
	err   error
}

type statsModel struct {
	stats   *ledger.Stats
	loading bool
	err     error
	width   int
}

func (m *statsModel) init(c *client.Client, p Period) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		st, err := c.Stats(context.Background(), p.EntityID, p.Start, p.End)
		return statsLoadedMsg{stats: st, err: err}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.loading = false
		m.stats = msg.stats
		m.err = msg.err
	}
	return m, nil
}

func (m *statsModel) view() string {
	if m.loading {
		return "Loading statistics..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.stats == nil {
		return dimStyle.Render("No data available.")
	}

	s := m.stats
	var b strings.Builder

	b.WriteString(titleStyle.Render("Statistiques"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(label), value))
	}
	row("Période", s.Period.Start+" → "+s.Period.End)
	row("Factures", fmt.Sprint(s.Documents.Invoices))
	row("Avoirs", fmt.Sprint(s.Documents.CreditNotes))
	row("Documents", fmt.Sprint(s.Documents.Total))
	row("Paiements", fmt.Sprint(s.Payments))
	row("Écritures", fmt.Sprintf("~%d", s.Entries))

	amounts := fmt.Sprintf("%s %15s\n%s %15s\n%s %15s",
		labelStyle.Render("Ventes HT"), fec.FormatTotal(s.Amounts.SalesHT),
		labelStyle.Render("TVA"), fec.FormatTotal(s.Amounts.VAT),
		labelStyle.Render("Ventes TTC"), fec.FormatTotal(s.Amounts.SalesTTC))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(amounts))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Amounts cover invoices only. The entry count is an estimate."))
	return b.String()
}
