// Package runlog provides SQLite-backed storage for launch records.
//
// Every launch writes one row before the child process starts; its completion
// updates the row with the exit status and duration. Rows are keyed by a
// UUIDv7 run ID and carry the content-addressed launch ID, so "has this exact
// command line run before" is a single indexed query.
//
// Database configuration mirrors the usual single-writer SQLite setup:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: tolerate lock contention
//   - foreign_keys=ON
//
// All list queries order by started_at, then run_id, for stable output.
package runlog
