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

type reportLoadedMsg struct {
	report *fec.Report
	err    error
}

type checkModel struct {
	report  *fec.Report
	offset  int
	loading bool
	err     error
	width   int
	height  int
}

// init validates content server-side, as an operator uploading the file would.
func (m *checkModel) init(c *client.Client, content string) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		r, err := c.Validate(context.Background(), content)
		return reportLoadedMsg{report: r, err: err}
	}
}

func (m checkModel) update(msg tea.Msg) (checkModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		m.report = msg.report
		m.err = msg.err
		m.offset = 0

	case tea.KeyMsg:
		if m.report == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.Down):
			if m.offset < len(m.report.Errors)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m *checkModel) view() string {
	if m.loading {
		return "Validating..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.report == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Contrôle"))
	b.WriteString("\n")

	if m.report.Valid {
		b.WriteString(successStyle.Render("  ✓ FEC valide"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Structure, dates and debit/credit balance check out."))
		return b.String()
	}

	b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ FEC invalide (%d)", len(m.report.Errors))))
	b.WriteString("\n\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}
	for i := m.offset; i < len(m.report.Errors) && i < m.offset+maxRows; i++ {
		b.WriteString("  - " + m.report.Errors[i] + "\n")
	}
	return b.String()
}
