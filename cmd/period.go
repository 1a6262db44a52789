package cmd

import (
	"fmt"
	"time"

	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/spf13/cobra"
)

// periodFlags are the --entity/--from/--to flags shared by export, stats and tui.
type periodFlags struct {
	entity string
	from   string
	to     string
}

func (p *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.entity, "entity", "", "Entity ID")
	cmd.Flags().StringVar(&p.from, "from", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.to, "to", "", "Period end (YYYY-MM-DD)")
	cmd.MarkFlagRequired("entity")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
}

func (p *periodFlags) parse() (time.Time, time.Time, error) {
	start, err := ledger.ParseDate(p.from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	end, err := ledger.ParseDate(p.to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	if err := ledger.ValidatePeriod(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
