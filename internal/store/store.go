package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simonvc/fecledger/internal/ledger"
	"github.com/simonvc/fecledger/internal/logger"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type DocumentFilter struct {
	EntityID string
	Type     ledger.DocumentType
	Limit    int
	Offset   int
}

// Store is the SQLite document store. Writes go through a single-connection
// pool; reads use a pool sized to the CPU count.
type Store struct {
	writer *sql.DB
	reader *sql.DB
	log    zerolog.Logger
}

func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := newStore(writer, reader)
	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Debug().Str("path", dbPath).Msg("document store opened")
	return s, nil
}

func newStore(writer, reader *sql.DB) *Store {
	return &Store{writer: writer, reader: reader, log: logger.WithComponent("store")}
}

func (s *Store) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func limitClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	if offset > 0 {
		return fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, offset)
	}
	return fmt.Sprintf(` LIMIT %d`, limit)
}

// maxIDAttempts bounds the redraws of newPrefixedID.
const maxIDAttempts = 16

// newPrefixedID returns a random (v4) id whose first n characters are not
// already used by a sibling row. taken reports whether a prefix is in use.
// Payment entry numbers and client sub-ledger accounts are derived from id
// prefixes, so time-ordered ids would collide.
func newPrefixedID(n int, taken func(prefix string) (bool, error)) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := uuid.New().String()
		used, err := taken(id[:n])
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free %d-character id prefix after %d attempts", n, maxIDAttempts)
}
