package runlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// WriteLaunch inserts a launch record.
//
// Run IDs are unique; inserting the same run twice is a caller bug and
// surfaces as a constraint violation. The argv is stored as a JSON array so
// the exact command line survives verbatim.
func (s *Store) WriteLaunch(ctx context.Context, launch Launch) error {
	argvJSON, err := json.Marshal(launch.Argv)
	if err != nil {
		return fmt.Errorf("write launch: marshal argv: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, launch_id, job_name, job_hash, argv, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		launch.RunID,
		launch.LaunchID,
		launch.JobName,
		launch.JobHash,
		string(argvJSON),
		launch.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write launch: %w", err)
	}
	return nil
}

// WriteCompletion records a child's exit status against its launch row.
// Returns an error if the run is unknown.
func (s *Store) WriteCompletion(ctx context.Context, completion Completion) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET exit_code = ?, duration_ms = ?, finished_at = ?
		WHERE run_id = ?
	`,
		completion.ExitCode,
		completion.Duration.Milliseconds(),
		completion.FinishedAt.UTC().Format(time.RFC3339Nano),
		completion.RunID,
	)
	if err != nil {
		return fmt.Errorf("write completion: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write completion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("write completion: unknown run %s", completion.RunID)
	}
	return nil
}
