package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simonvc/fecledger/internal/ledger"
)

const documentColumns = `d.id, d.entity_id, d.numero, d.type, d.status, d.date_emission, d.date_echeance,
	d.total_ht, d.total_tva, d.total_ttc, d.created_at, c.id, c.entity_id, c.nom
	FROM documents d
	JOIN clients c ON c.id = d.client_id`

// CreateDocument stores a document and its lines atomically. The client must
// exist and belong to the document's entity.
func (s *Store) CreateDocument(ctx context.Context, doc *ledger.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	client, err := s.GetClient(ctx, doc.Client.ID)
	if err != nil {
		return err
	}
	if client.EntityID != doc.EntityID {
		return fmt.Errorf("%w: client %s, entity %s", ledger.ErrClientEntityMatch, client.ID, doc.EntityID)
	}
	doc.Client = *client

	if doc.ID == "" {
		doc.ID = uuid.Must(uuid.NewV7()).String()
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var dueDate any
	if doc.DueDate != nil {
		dueDate = doc.DueDate.Format(ledger.DateLayout)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, entity_id, client_id, numero, type, status, date_emission, date_echeance, total_ht, total_tva, total_ttc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.EntityID, doc.Client.ID, doc.Numero, string(doc.Type), string(doc.Status),
		doc.Date.Format(ledger.DateLayout), dueDate,
		doc.TotalHT.String(), doc.TotalTVA.String(), doc.TotalTTC.String(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s", ledger.ErrDuplicateNumber, doc.Type, doc.Numero)
	}
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	for i := range doc.Lines {
		l := &doc.Lines[i]
		if l.ID == "" {
			l.ID = uuid.Must(uuid.NewV7()).String()
		}
		if l.Position == 0 {
			l.Position = i + 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO document_lines (id, document_id, position, description, quantity, unit_price_ht, vat_rate, total_ht)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, doc.ID, l.Position, l.Description,
			l.Quantity.String(), l.UnitPriceHT.String(), l.VATRate.String(), l.TotalHT.String(),
		)
		if err != nil {
			return fmt.Errorf("insert line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (*ledger.Document, error) {
	docs, err := s.queryDocuments(ctx, `SELECT `+documentColumns+` WHERE d.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ledger.ErrDocumentNotFound
	}
	return &docs[0], nil
}

func (s *Store) ListDocuments(ctx context.Context, filter DocumentFilter) ([]ledger.Document, error) {
	query := `SELECT ` + documentColumns + ` WHERE 1=1`
	args := []any{}

	if filter.EntityID != "" {
		query += ` AND d.entity_id = ?`
		args = append(args, filter.EntityID)
	}
	if filter.Type != "" {
		query += ` AND d.type = ?`
		args = append(args, string(filter.Type))
	}
	query += ` ORDER BY d.date_emission DESC, d.numero DESC` + limitClause(filter.Limit, filter.Offset)

	return s.queryDocuments(ctx, query, args...)
}

// FetchDocuments returns the non-draft invoices and credit notes of an
// entity issued within [start, end], by ascending issue date, each with its
// client, lines and payments. Payments are only those of the returned
// documents, whatever their own date.
func (s *Store) FetchDocuments(ctx context.Context, entityID string, start, end time.Time) ([]ledger.Document, error) {
	query := `SELECT ` + documentColumns + `
		WHERE d.entity_id = ?
			AND d.type IN ('INVOICE', 'CREDIT_NOTE')
			AND d.status != 'DRAFT'
			AND d.date_emission BETWEEN ? AND ?
		ORDER BY d.date_emission, d.numero`

	docs, err := s.queryDocuments(ctx, query,
		entityID, start.Format(ledger.DateLayout), end.Format(ledger.DateLayout))
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("entity", entityID).
		Int("documents", len(docs)).
		Msg("fetched documents for period")
	return docs, nil
}

// queryDocuments scans document rows, then loads lines and payments once the
// row cursor is released.
func (s *Store) queryDocuments(ctx context.Context, query string, args ...any) ([]ledger.Document, error) {
	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	var docs []ledger.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	rows.Close()

	for i := range docs {
		if docs[i].Lines, err = s.getLines(ctx, docs[i].ID); err != nil {
			return nil, err
		}
		if docs[i].Payments, err = s.getPayments(ctx, docs[i].ID); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func scanDocument(rows *sql.Rows) (*ledger.Document, error) {
	var doc ledger.Document
	var date, createdAt string
	var dueDate sql.NullString
	err := rows.Scan(
		&doc.ID, &doc.EntityID, &doc.Numero, &doc.Type, &doc.Status, &date, &dueDate,
		&doc.TotalHT, &doc.TotalTVA, &doc.TotalTTC, &createdAt,
		&doc.Client.ID, &doc.Client.EntityID, &doc.Client.Nom,
	)
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	if doc.Date, err = ledger.ParseDate(date); err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	if dueDate.Valid {
		due, err := ledger.ParseDate(dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		doc.DueDate = &due
	}
	doc.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &doc, nil
}

func (s *Store) getLines(ctx context.Context, docID string) ([]ledger.LineItem, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, position, description, quantity, unit_price_ht, vat_rate, total_ht
		FROM document_lines WHERE document_id = ? ORDER BY position, id`, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.LineItem
	for rows.Next() {
		var l ledger.LineItem
		if err := rows.Scan(&l.ID, &l.Position, &l.Description, &l.Quantity, &l.UnitPriceHT, &l.VATRate, &l.TotalHT); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
