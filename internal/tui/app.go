package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/ledger"
)

type mode int

const (
	modeEntries mode = iota
	modeEntryDetail
	modeStats
	modeCheck
)

var tabModes = []mode{modeEntries, modeStats, modeCheck}

func tabLabel(m mode) string {
	switch m {
	case modeEntries:
		return "Écritures"
	case modeStats:
		return "Statistiques"
	case modeCheck:
		return "Contrôle"
	default:
		return ""
	}
}

// Period selects the export being previewed.
type Period struct {
	EntityID string
	Start    time.Time
	End      time.Time
}

type savedMsg struct {
	path string
	err  error
}

type App struct {
	client        *client.Client
	period        Period
	mode          mode
	tabIndex      int
	width, height int
	statusMsg     string
	err           error

	file *client.FECFile

	entries     entriesModel
	entryDetail entryDetailModel
	stats       statsModel
	check       checkModel
}

func NewApp(c *client.Client, p Period) *App {
	return &App{
		client: c,
		period: p,
		mode:   modeEntries,
	}
}

func (a *App) Init() tea.Cmd {
	return a.reload()
}

// reload fetches the export and its stats; the validation report follows
// once the export arrives.
func (a *App) reload() tea.Cmd {
	a.file = nil
	a.check.loading = true
	return tea.Batch(
		a.entries.init(a.client, a.period),
		a.stats.init(a.client, a.period),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.entries.width = msg.Width
		a.entries.height = msg.Height - 6
		a.entryDetail.width = msg.Width
		a.stats.width = msg.Width
		a.check.width = msg.Width
		a.check.height = msg.Height - 6
		return a, nil
	}

	// Loaded data goes to its model whatever tab is active.
	switch typedMsg := msg.(type) {
	case exportLoadedMsg:
		var cmd tea.Cmd
		a.entries, cmd = a.entries.update(msg)
		if typedMsg.err != nil {
			a.check.loading = false
			a.check.err = typedMsg.err
			return a, cmd
		}
		a.file = typedMsg.file
		return a, tea.Batch(cmd, a.check.init(a.client, typedMsg.file.Content))
	case statsLoadedMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd
	case reportLoadedMsg:
		var cmd tea.Cmd
		a.check, cmd = a.check.update(msg)
		return a, cmd
	case savedMsg:
		if typedMsg.err != nil {
			a.err = typedMsg.err
			a.statusMsg = ""
		} else {
			a.err = nil
			a.statusMsg = "Saved " + typedMsg.path
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, nil

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, nil

		case key.Matches(msg, keys.Escape):
			if a.mode == modeEntryDetail {
				a.mode = modeEntries
			}
			return a, nil

		case key.Matches(msg, keys.Refresh):
			a.statusMsg = ""
			a.err = nil
			return a, a.reload()

		case key.Matches(msg, keys.Save):
			if a.file == nil {
				return a, nil
			}
			f := a.file
			return a, func() tea.Msg {
				err := os.WriteFile(f.Name, []byte(f.Content), 0o644)
				return savedMsg{path: f.Name, err: err}
			}

		case key.Matches(msg, keys.Enter):
			if a.mode == modeEntries {
				if row := a.entries.selected(); row != nil {
					a.entryDetail.row = row
					a.mode = modeEntryDetail
				}
				return a, nil
			}
		}
	}

	// Delegate update to active sub-model
	var cmd tea.Cmd
	switch a.mode {
	case modeEntries:
		a.entries, cmd = a.entries.update(msg)
	case modeCheck:
		a.check, cmd = a.check.update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	// Tab bar
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}
	period := subtitleStyle.Render(fmt.Sprintf("  %s → %s",
		a.period.Start.Format(ledger.DateLayout), a.period.End.Format(ledger.DateLayout)))

	// Content
	var content string
	switch a.mode {
	case modeEntries:
		content = a.entries.view()
	case modeEntryDetail:
		content = a.entryDetail.view()
	case modeStats:
		content = a.stats.view()
	case modeCheck:
		content = a.check.view()
	}

	// Status bar
	status := ""
	if a.file != nil {
		status = dimStyle.Render(a.file.Name)
	}
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	helpText := dimStyle.Render("tab:switch  enter:detail  esc:back  r:reload  s:save  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs+period,
		"",
		content,
		"",
		status,
		helpText,
	)
}
