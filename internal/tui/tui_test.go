package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFEC = "JournalCode|JournalLib|EcritureNum|EcritureDate|CompteNum|CompteLib|CompAuxNum|CompAuxLib|PieceRef|PieceDate|EcritureLib|Debit|Credit|EcritureLet|DateLet|ValidDate|Montantdevise|Idevise\n" +
	"VE|Journal des ventes|VEF001|20240305|411000|Clients|C0190a1|Martin|F001|20240305|Facture F001 - Martin|120,00||||20240305||\n" +
	"VE|Journal des ventes|VEF001|20240305|706000|Prestations de services|||F001|20240305|Facture F001 - Martin||100,00|||20240305||\n" +
	"VE|Journal des ventes|VEF001|20240305|445710|TVA collectée|||F001|20240305|Facture F001 - Martin||20,00|||20240305||"

func loadedApp(t *testing.T) *App {
	t.Helper()
	a := NewApp(client.New("http://127.0.0.1:0"), Period{EntityID: "e1", Start: mustDate("2024-03-01"), End: mustDate("2024-03-31")})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a.entries.loading = true
	a.Update(exportLoadedMsg{file: &client.FECFile{Name: "123FEC20240331.txt", Content: sampleFEC, Lines: 3}})
	return a
}

func mustDate(s string) time.Time {
	v, err := ledger.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestEntriesView(t *testing.T) {
	a := loadedApp(t)
	require.Len(t, a.entries.rows, 3)
	assert.False(t, a.entries.loading)

	view := a.View()
	assert.Contains(t, view, "Écritures")
	assert.Contains(t, view, "VEF001")
	assert.Contains(t, view, "445710")
	assert.Contains(t, view, "3 lines")
	assert.Contains(t, view, "123FEC20240331.txt")
}

func TestEntryNavigationAndDetail(t *testing.T) {
	a := loadedApp(t)

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, a.entries.cursor, "cursor stops at the last row")

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeEntryDetail, a.mode)
	view := a.entryDetail.view()
	for _, name := range fec.Header {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "TVA collectée")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeEntries, a.mode)
}

func TestTabsCycle(t *testing.T) {
	a := loadedApp(t)

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeStats, a.mode)
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeCheck, a.mode)
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeEntries, a.mode)
	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, modeCheck, a.mode)
}

func TestCheckView(t *testing.T) {
	a := loadedApp(t)
	a.Update(reportLoadedMsg{report: &fec.Report{Valid: false, Errors: []string{"Déséquilibre débit/crédit"}}})
	assert.Contains(t, a.check.view(), "FEC invalide (1)")
	assert.Contains(t, a.check.view(), "Déséquilibre")

	valid := fec.Validate(sampleFEC)
	a.Update(reportLoadedMsg{report: &valid})
	assert.Contains(t, a.check.view(), "FEC valide")
}

func TestStatsView(t *testing.T) {
	a := loadedApp(t)
	docs := []ledger.Document{{
		Numero: "F001", Type: ledger.DocumentInvoice, Status: ledger.StatusIssued,
		Date: mustDate("2024-03-05"),
	}}
	st := ledger.ComputeStats(docs, mustDate("2024-03-01"), mustDate("2024-03-31"))
	a.Update(statsLoadedMsg{stats: &st})

	view := a.stats.view()
	assert.Contains(t, view, "2024-03-01 → 2024-03-31")
	assert.Contains(t, view, "0,00")
	assert.Contains(t, view, "Factures")
}
