// Package store persists counting runs and their crossing events to SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/swdee/go-peoplecount/counter"
)

// ErrUnknownRun is returned when a run id has not been created
var ErrUnknownRun = errors.New("unknown run")

// Store is a SQLite backed record of runs and crossings
type Store struct {
	db *sql.DB
}

// Run describes a single pass over a video source
type Run struct {
	ID         string
	Source     string
	SkipFrames int
	Confidence float64
	Width      int
	Height     int
	Started    time.Time
	Ended      time.Time
	Frames     int
}

// Crossing is a persisted crossing event
type Crossing struct {
	RunID     string
	Frame     int
	ObjectID  int
	Direction counter.Direction
	X         int
	Y         int
	Recorded  time.Time
}

// Open opens the SQLite database at path, creating it if needed, and brings
// the schema up to date
func Open(path string) (*Store, error) {

	// pragmas are applied by the driver to every new connection
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// sqlite permits a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	s := &Store{db: db}

	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close the database
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun records the start of a run
func (s *Store) CreateRun(ctx context.Context, r Run) error {

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, source, skip_frames, confidence, width, height, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Source, r.SkipFrames, r.Confidence, r.Width, r.Height,
		r.Started.UnixNano(),
	)

	if err != nil {
		return fmt.Errorf("failed to create run %s: %w", r.ID, err)
	}

	return nil
}

// FinishRun records the end time and number of frames processed for a run
func (s *Store) FinishRun(ctx context.Context, runID string, frames int, ended time.Time) error {

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET ended_at = ?, frames = ? WHERE run_id = ?`,
		ended.UnixNano(), frames, runID,
	)

	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}

	return nil
}

// GetRun returns the run with the given id
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {

	var (
		r       Run
		started int64
		ended   sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT run_id, source, skip_frames, confidence, width, height,
		       started_at, ended_at, frames
		FROM runs WHERE run_id = ?`, runID,
	).Scan(&r.ID, &r.Source, &r.SkipFrames, &r.Confidence, &r.Width,
		&r.Height, &started, &ended, &r.Frames)

	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}

	if err != nil {
		return Run{}, fmt.Errorf("failed to read run %s: %w", runID, err)
	}

	r.Started = time.Unix(0, started)

	if ended.Valid {
		r.Ended = time.Unix(0, ended.Int64)
	}

	return r, nil
}

// RecordCrossing stores a crossing event
func (s *Store) RecordCrossing(ctx context.Context, c Crossing) error {

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crossings (run_id, frame, object_id, direction, x, y, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.Frame, c.ObjectID, int(c.Direction), c.X, c.Y,
		c.Recorded.UnixNano(),
	)

	if err != nil {
		return fmt.Errorf("failed to record crossing of object %d: %w", c.ObjectID, err)
	}

	return nil
}

// Totals returns the number of In and Out crossings recorded for a run
func (s *Store) Totals(ctx context.Context, runID string) (in, out int, err error) {

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN direction = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN direction = ? THEN 1 ELSE 0 END), 0)
		FROM crossings WHERE run_id = ?`,
		int(counter.In), int(counter.Out), runID,
	).Scan(&in, &out)

	if err != nil {
		return 0, 0, fmt.Errorf("failed to total run %s: %w", runID, err)
	}

	return in, out, nil
}

// Crossings returns the crossings of a run ordered by frame then object id
func (s *Store) Crossings(ctx context.Context, runID string) ([]Crossing, error) {

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, frame, object_id, direction, x, y, recorded_at
		FROM crossings WHERE run_id = ?
		ORDER BY frame, object_id`, runID,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query crossings: %w", err)
	}

	defer rows.Close()

	var res []Crossing

	for rows.Next() {
		var (
			c        Crossing
			dir      int
			recorded int64
		)

		if err := rows.Scan(&c.RunID, &c.Frame, &c.ObjectID, &dir, &c.X,
			&c.Y, &recorded); err != nil {
			return nil, fmt.Errorf("failed to scan crossing: %w", err)
		}

		c.Direction = counter.Direction(dir)
		c.Recorded = time.Unix(0, recorded)
		res = append(res, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crossings: %w", err)
	}

	return res, nil
}
