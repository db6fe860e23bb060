// Package store provides a SQLite-backed table to execute conditions against.
//
// It is the downstream executor for cond.Condition values: a condition's
// template becomes the WHERE clause of a prepared statement and its values are
// bound, never interpolated.
//
// # Tables
//
//   - customers: sample rows (id, name, postcode, ip)
//   - query_log: every executed condition with its canonical JSON bind values
//
// # Critical Patterns
//
// Deterministic Query Results
//   - All reads end in ORDER BY id ASC COLLATE BINARY (seq for the log)
//
// Identifier Safety
//   - Table and column names must match ^[A-Za-z_][A-Za-z0-9_]*$
//   - Values are always bound parameters
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
