package store

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordRun stores a run and its projects in one transaction and returns
// the run ID.
func (db *DB) RecordRun(run *Run, projects []RunProject) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(
		`INSERT INTO runs
		(generated_at, version, output_path, total_projects, total_lines, avg_lines_per_day, failures)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.GeneratedAt.UTC().Format(time.RFC3339), run.Version, run.OutputPath,
		run.TotalProjects, run.TotalLines, run.AvgLinesPerDay, run.Failures,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_projects (run_id, day_index, name, folder, lines, score, measured)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range projects {
		if _, err := stmt.Exec(id, p.DayIndex, p.Name, p.Folder, p.Lines, p.Score, p.Measured); err != nil {
			return 0, fmt.Errorf("inserting project day %d: %w", p.DayIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	run.ID = id
	return id, nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 or less
// returns every run.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		`SELECT id, generated_at, version, output_path, total_projects, total_lines, avg_lines_per_day, failures
		FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetLatestRun returns the most recent run, or nil if none exist.
func (db *DB) GetLatestRun() (*Run, error) {
	row := db.conn.QueryRow(
		`SELECT id, generated_at, version, output_path, total_projects, total_lines, avg_lines_per_day, failures
		FROM runs ORDER BY id DESC LIMIT 1`,
	)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// GetRunProjects returns the projects recorded for a run in day order.
func (db *DB) GetRunProjects(runID int64) ([]RunProject, error) {
	rows, err := db.conn.Query(
		`SELECT run_id, day_index, name, folder, lines, score, measured
		FROM run_projects WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RunProject
	for rows.Next() {
		var p RunProject
		if err := rows.Scan(&p.RunID, &p.DayIndex, &p.Name, &p.Folder, &p.Lines, &p.Score, &p.Measured); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var generatedAt string
	err := row.Scan(&r.ID, &generatedAt, &r.Version, &r.OutputPath,
		&r.TotalProjects, &r.TotalLines, &r.AvgLinesPerDay, &r.Failures)
	if err != nil {
		return nil, err
	}
	r.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	return &r, nil
}
