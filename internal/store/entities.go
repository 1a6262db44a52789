package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simonvc/fecledger/internal/ledger"
)

func (s *Store) CreateEntity(ctx context.Context, e *ledger.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO entities (id, name, siret) VALUES (?, ?, ?)`,
		e.ID, e.Name, e.SIRET,
	)
	if err != nil {
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

func (s *Store) GetEntity(ctx context.Context, id string) (*ledger.Entity, error) {
	var e ledger.Entity
	var createdAt string
	err := s.reader.QueryRowContext(ctx,
		`SELECT id, name, siret, created_at FROM entities WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.SIRET, &createdAt)
	if isNoRows(err) {
		return nil, ledger.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entity: %w", err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &e, nil
}

func (s *Store) ListEntities(ctx context.Context) ([]ledger.Entity, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, name, siret, created_at FROM entities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	var entities []ledger.Entity
	for rows.Next() {
		var e ledger.Entity
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.SIRET, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entities = append(entities, e)
	}
	return entities, rows.Err()
}
