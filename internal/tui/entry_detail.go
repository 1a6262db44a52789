package tui

import (
	"fmt"
	"strings"

	"github.com/simonvc/fecledger/internal/fec"
)

type entryDetailModel struct {
	row   []string
	width int
}

func (m *entryDetailModel) view() string {
	if m.row == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Écriture %s", cell(m.row, colEntryNum))))
	b.WriteString("\n")

	for i, name := range fec.Header {
		v := cell(m.row, i)
		if v == "" {
			v = dimStyle.Render("-")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(name+":"), v))
	}

	b.WriteString("\n" + dimStyle.Render("  Press ESC to go back"))
	return b.String()
}
