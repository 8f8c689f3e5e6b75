// Package store provides SQLite-backed history of evaluations.
//
// Each call to WriteRecord appends one row to the evaluations table. Rows
// are keyed by a UUIDv7 ID and carry the content-addressed input key from
// record.InputKey, so repeated evaluations of the same equation (modulo
// whitespace) can be found with FindByInput.
//
// # Ordering
//
//   - created_seq is a logical clock assigned inside the insert transaction
//   - All queries order by created_seq, then id COLLATE BINARY
//   - Timestamps are never stored
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Steps are stored as canonical JSON (record.MarshalCanonical).
package store
