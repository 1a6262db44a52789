package store

import (
	"context"
	"fmt"
	"time"

	"github.com/simonvc/fecledger/internal/ledger"
)

// clientIDPrefix is the number of id characters in a client's auxiliary
// account number.
const clientIDPrefix = 6

func (s *Store) CreateClient(ctx context.Context, c *ledger.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.GetEntity(ctx, c.EntityID); err != nil {
		return err
	}
	if c.ID == "" {
		id, err := newPrefixedID(clientIDPrefix, func(prefix string) (bool, error) {
			return s.prefixTaken(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE entity_id = ? AND substr(id, 1, 6) = ?)`,
				c.EntityID, prefix)
		})
		if err != nil {
			return fmt.Errorf("client id: %w", err)
		}
		c.ID = id
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO clients (id, entity_id, nom) VALUES (?, ?, ?)`,
		c.ID, c.EntityID, c.Nom,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, id string) (*ledger.Client, error) {
	var c ledger.Client
	var createdAt string
	err := s.reader.QueryRowContext(ctx,
		`SELECT id, entity_id, nom, created_at FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.EntityID, &c.Nom, &createdAt)
	if isNoRows(err) {
		return nil, ledger.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &c, nil
}

func (s *Store) ListClients(ctx context.Context, entityID string) ([]ledger.Client, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, entity_id, nom, created_at FROM clients WHERE entity_id = ? ORDER BY nom`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []ledger.Client
	for rows.Next() {
		var c ledger.Client
		var createdAt string
		if err := rows.Scan(&c.ID, &c.EntityID, &c.Nom, &createdAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
