package store

import (
	"context"
	"fmt"

	"github.com/roach88/eqsolve/internal/record"
)

// WriteRecord appends r to the history.
//
// An empty r.ID is filled from the store's IDGenerator. r.Seq is always
// assigned by the store as one past the current maximum, inside the same
// transaction as the insert. Both are written back to r.
func (s *Store) WriteRecord(ctx context.Context, r *record.Record) error {
	stepsJSON, err := marshalSteps(r)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	if r.ID == "" {
		r.ID = s.ids.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write record: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(created_seq), 0) + 1 FROM evaluations").Scan(&seq); err != nil {
		return fmt.Errorf("write record: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, input_key, input, solved, value, error_code, error_message, steps, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		record.InputKey(r.Input),
		r.Input,
		r.Solved,
		r.Value,
		r.ErrorCode,
		r.ErrorMessage,
		stepsJSON,
		seq,
	)
	if err != nil {
		return fmt.Errorf("write record %s: %w", r.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write record: commit: %w", err)
	}

	r.Seq = seq
	s.logger.Debug("recorded evaluation", "id", r.ID, "seq", seq, "error_code", r.ErrorCode)
	return nil
}

func marshalSteps(r *record.Record) (string, error) {
	steps, ok := r.CanonicalMap()["steps"]
	if !ok {
		return "[]", nil
	}
	data, err := record.MarshalCanonical(steps)
	if err != nil {
		return "", fmt.Errorf("marshal steps: %w", err)
	}
	return string(data), nil
}
