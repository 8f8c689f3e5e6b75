package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/eqsolve/internal/record"
	"github.com/roach88/eqsolve/internal/solver"
)

const selectColumns = `
	SELECT id, input, solved, value, error_code, error_message, steps, created_seq
	FROM evaluations
`

// ReadRecord returns the record with the given ID, or ErrNotFound.
func (s *Store) ReadRecord(ctx context.Context, id string) (*record.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+"WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", id, err)
	}
	return r, nil
}

// ListRecords returns the most recent evaluations, newest first.
// limit <= 0 returns all of them.
//
// Returns an empty slice (not nil) if the history is empty.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]*record.Record, error) {
	query := selectColumns + "ORDER BY created_seq DESC, id COLLATE BINARY ASC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryRecords(ctx, "list records", query, args...)
}

// FindByInput returns every evaluation of input, oldest first. Inputs are
// matched by record.InputKey, so whitespace differences are ignored.
func (s *Store) FindByInput(ctx context.Context, input string) ([]*record.Record, error) {
	query := selectColumns + "WHERE input_key = ? ORDER BY created_seq ASC, id COLLATE BINARY ASC"
	return s.queryRecords(ctx, "find by input", query, record.InputKey(input))
}

func (s *Store) queryRecords(ctx context.Context, op, query string, args ...any) ([]*record.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	records := []*record.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*record.Record, error) {
	var (
		r         record.Record
		stepsJSON string
	)
	err := row.Scan(&r.ID, &r.Input, &r.Solved, &r.Value, &r.ErrorCode, &r.ErrorMessage, &stepsJSON, &r.Seq)
	if err != nil {
		return nil, err
	}

	steps := []solver.Step{}
	if err := json.Unmarshal([]byte(stepsJSON), &steps); err != nil {
		return nil, fmt.Errorf("unmarshal steps of %s: %w", r.ID, err)
	}
	r.Steps = steps
	return &r, nil
}
