package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			siret      TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,

		`CREATE TABLE IF NOT EXISTS clients (
			id         TEXT PRIMARY KEY,
			entity_id  TEXT NOT NULL REFERENCES entities(id),
			nom        TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_entity ON clients(entity_id)`,

		`CREATE TABLE IF NOT EXISTS documents (
			id            TEXT PRIMARY KEY,
			entity_id     TEXT NOT NULL REFERENCES entities(id),
			client_id     TEXT NOT NULL REFERENCES clients(id),
			numero        TEXT NOT NULL,
			type          TEXT NOT NULL CHECK (type IN ('QUOTE','INVOICE','CREDIT_NOTE')),
			status        TEXT NOT NULL CHECK (status IN ('DRAFT','ISSUED','PAID','CANCELLED')),
			date_emission TEXT NOT NULL,
			date_echeance TEXT,
			total_ht      TEXT NOT NULL DEFAULT '0',
			total_tva     TEXT NOT NULL DEFAULT '0',
			total_ttc     TEXT NOT NULL DEFAULT '0',
			created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			UNIQUE (entity_id, type, numero)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_period ON documents(entity_id, date_emission)`,

		`CREATE TABLE IF NOT EXISTS document_lines (
			id            TEXT PRIMARY KEY,
			document_id   TEXT NOT NULL REFERENCES documents(id),
			position      INTEGER NOT NULL,
			description   TEXT NOT NULL,
			quantity      TEXT NOT NULL,
			unit_price_ht TEXT NOT NULL,
			vat_rate      TEXT NOT NULL,
			total_ht      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_document_lines_doc ON document_lines(document_id)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id          TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id),
			amount      TEXT NOT NULL,
			method      TEXT NOT NULL CHECK (method IN ('CASH','CHECK','CARD','BANK_TRANSFER','DIRECT_DEBIT','OTHER')),
			paid_at     TEXT NOT NULL,
			created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_doc ON payments(document_id)`,

		// Recorded payments are immutable.
		`CREATE TRIGGER IF NOT EXISTS trg_immutable_payments_update
		BEFORE UPDATE ON payments
		BEGIN
			SELECT RAISE(ABORT, 'payments are immutable once recorded');
		END`,
		`CREATE TRIGGER IF NOT EXISTS trg_immutable_payments_delete
		BEFORE DELETE ON payments
		BEGIN
			SELECT RAISE(ABORT, 'payments are immutable once recorded');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}
