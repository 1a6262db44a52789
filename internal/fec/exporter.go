package fec

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/simonvc/fecledger/internal/logger"
)

// DocumentSource supplies the non-draft invoices and credit notes of an
// entity issued within [start, end], ordered by issue date, with their
// client, lines and payments.
type DocumentSource interface {
	FetchDocuments(ctx context.Context, entityID string, start, end time.Time) ([]ledger.Document, error)
}

// Export is a generated FEC payload.
type Export struct {
	EntityID  string             `json:"entity_id"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Documents int                `json:"documents"`
	Lines     []ledger.EntryLine `json:"lines"`
	Content   string             `json:"content"`
}

// Exporter runs the fetch, synthesize and serialize pipeline. It holds no
// state between calls, so concurrent exports are independent.
type Exporter struct {
	source DocumentSource
	log    zerolog.Logger
}

func NewExporter(src DocumentSource) *Exporter {
	return &Exporter{source: src, log: logger.WithComponent("fec")}
}

// Generate builds the FEC for an entity and period. An empty period yields
// a header-only payload, not an error.
func (e *Exporter) Generate(ctx context.Context, entityID string, start, end time.Time) (*Export, error) {
	docs, err := e.fetch(ctx, entityID, start, end)
	if err != nil {
		return nil, err
	}
	began := time.Now()

	for i := range docs {
		if !docs[i].TotalsConsistent() {
			e.log.Warn().
				Str("entity", entityID).
				Str("numero", docs[i].Numero).
				Str("total_ht", docs[i].TotalHT.String()).
				Str("total_tva", docs[i].TotalTVA.String()).
				Str("total_ttc", docs[i].TotalTTC.String()).
				Msg("document totals inconsistent, exported as stored")
		}
	}

	lines := ledger.Synthesize(docs)
	exp := &Export{
		EntityID:  entityID,
		Start:     start,
		End:       end,
		Documents: len(docs),
		Lines:     lines,
		Content:   Serialize(lines),
	}

	e.log.Info().
		Str("entity", entityID).
		Str("start", start.Format(ledger.DateLayout)).
		Str("end", end.Format(ledger.DateLayout)).
		Int("documents", len(docs)).
		Int("lines", len(lines)).
		Dur("took", time.Since(began)).
		Msg("fec generated")
	return exp, nil
}

// Stats aggregates the same selection Generate would export.
func (e *Exporter) Stats(ctx context.Context, entityID string, start, end time.Time) (*ledger.Stats, error) {
	docs, err := e.fetch(ctx, entityID, start, end)
	if err != nil {
		return nil, err
	}
	st := ledger.ComputeStats(docs, start, end)
	return &st, nil
}

func (e *Exporter) fetch(ctx context.Context, entityID string, start, end time.Time) ([]ledger.Document, error) {
	if err := ledger.ValidatePeriod(start, end); err != nil {
		return nil, err
	}
	docs, err := e.source.FetchDocuments(ctx, entityID, start, end)
	if err != nil {
		e.log.Error().Err(err).Str("entity", entityID).Msg("fetch documents failed")
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	return docs, nil
}
