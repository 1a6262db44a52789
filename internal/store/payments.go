package store

import (
	"context"
	"fmt"
	"time"

	"github.com/simonvc/fecledger/internal/ledger"
)

// paymentIDPrefix is the number of id characters suffixed to a payment's
// entry number.
const paymentIDPrefix = 4

// RecordPayment stores a payment received against a document. Quotes cannot
// be paid. Payments are immutable once recorded.
func (s *Store) RecordPayment(ctx context.Context, p *ledger.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var docType ledger.DocumentType
	err := s.reader.QueryRowContext(ctx,
		`SELECT type FROM documents WHERE id = ?`, p.DocumentID).Scan(&docType)
	if err != nil {
		if isNoRows(err) {
			return ledger.ErrDocumentNotFound
		}
		return fmt.Errorf("get document type: %w", err)
	}
	if docType == ledger.DocumentQuote {
		return ledger.ErrQuoteNotPayable
	}

	if p.ID == "" {
		p.ID, err = newPrefixedID(paymentIDPrefix, func(prefix string) (bool, error) {
			return s.prefixTaken(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE document_id = ? AND substr(id, 1, 4) = ?)`,
				p.DocumentID, prefix)
		})
		if err != nil {
			return fmt.Errorf("payment id: %w", err)
		}
	}
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO payments (id, document_id, amount, method, paid_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.DocumentID, p.Amount.String(), string(p.Method), p.Date.Format(ledger.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *Store) getPayments(ctx context.Context, docID string) ([]ledger.Payment, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, document_id, amount, method, paid_at, created_at
		FROM payments WHERE document_id = ? ORDER BY paid_at, created_at, id`, docID)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	defer rows.Close()

	var payments []ledger.Payment
	for rows.Next() {
		var p ledger.Payment
		var paidAt, createdAt string
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.Amount, &p.Method, &paidAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.Date, err = ledger.ParseDate(paidAt); err != nil {
			return nil, fmt.Errorf("payment %s: %w", p.ID, err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// prefixTaken runs an EXISTS query on the writer so ids inserted by earlier
// writes are always visible.
func (s *Store) prefixTaken(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := s.writer.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check id prefix: %w", err)
	}
	return exists, nil
}
