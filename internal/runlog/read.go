package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a run ID has no row.
var ErrNotFound = errors.New("run not found")

// GetRun reads a single run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, launch_id, job_name, job_hash, argv, started_at,
		       exit_code, duration_ms, finished_at
		FROM runs
		WHERE run_id = ?
	`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}

// ListRuns reads runs, newest launches last, optionally filtered by job name.
// A limit of 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, jobName string, limit int) ([]Run, error) {
	query := `
		SELECT run_id, launch_id, job_name, job_hash, argv, started_at,
		       exit_code, duration_ms, finished_at
		FROM runs
	`
	var args []any
	if jobName != "" {
		query += " WHERE job_name = ?"
		args = append(args, jobName)
	}
	query += " ORDER BY started_at ASC, run_id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// CountLaunches reports how many times an exact command line has run.
func (s *Store) CountLaunches(ctx context.Context, launchID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE launch_id = ?`, launchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count launches: %w", err)
	}
	return n, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run        Run
		argvJSON   string
		startedAt  string
		exitCode   sql.NullInt64
		durationMS sql.NullInt64
		finishedAt sql.NullString
	)

	if err := sc.Scan(
		&run.RunID, &run.LaunchID, &run.JobName, &run.JobHash,
		&argvJSON, &startedAt, &exitCode, &durationMS, &finishedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(argvJSON), &run.Argv); err != nil {
		return nil, fmt.Errorf("unmarshal argv: %w", err)
	}

	started, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = started

	if exitCode.Valid {
		code := int(exitCode.Int64)
		run.ExitCode = &code
	}
	if durationMS.Valid {
		d := time.Duration(durationMS.Int64) * time.Millisecond
		run.Duration = &d
	}
	if finishedAt.Valid {
		finished, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		run.FinishedAt = &finished
	}

	return &run, nil
}
