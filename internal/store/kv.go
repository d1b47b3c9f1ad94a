package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KV is the read/write surface the engine sees. Both Store (autocommit) and
// Txn (inside Update) implement it.
type KV interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes the value for key, inserting or replacing as needed.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Get reads a single key outside any transaction.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	return getRow(ctx, s.db, key)
}

// Set writes a single key outside any transaction.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return setRow(ctx, s.db, key, value)
}

// Delete removes a single key outside any transaction.
func (s *Store) Delete(ctx context.Context, key string) error {
	return deleteRow(ctx, s.db, key)
}

// Txn is a KV view bound to an open transaction.
type Txn struct {
	tx *sql.Tx
}

// Get reads a key inside the transaction.
func (t *Txn) Get(ctx context.Context, key string) (string, bool, error) {
	return getRow(ctx, t.tx, key)
}

// Set writes a key inside the transaction.
func (t *Txn) Set(ctx context.Context, key, value string) error {
	return setRow(ctx, t.tx, key, value)
}

// Delete removes a key inside the transaction.
func (t *Txn) Delete(ctx context.Context, key string) error {
	return deleteRow(ctx, t.tx, key)
}

// Update runs fn inside a single transaction. The whole read-modify-write
// commits or rolls back as one unit; fn returning an error rolls back.
func (s *Store) Update(ctx context.Context, fn func(kv KV) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}

	if err := fn(&Txn{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback update: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

// querier is the subset of sql.DB / sql.Tx the row helpers need.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getRow(ctx context.Context, q querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func setRow(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO state (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func deleteRow(ctx context.Context, q querier, key string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
