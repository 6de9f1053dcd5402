// Package store provides SQLite access to the history of generated reports.
package store

import "time"

// Run is one successful report generation.
type Run struct {
	ID             int64     `json:"id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Version        string    `json:"version"`
	OutputPath     string    `json:"output_path"`
	TotalProjects  int       `json:"total_projects"`
	TotalLines     int       `json:"total_lines"`
	AvgLinesPerDay int       `json:"avg_lines_per_day"`
	Failures       int       `json:"failures"`
}

// RunProject is a project's contribution to a run.
type RunProject struct {
	RunID    int64  `json:"run_id"`
	DayIndex int    `json:"day_index"`
	Name     string `json:"name"`
	Folder   string `json:"folder"`
	Lines    int    `json:"lines"`
	Score    int    `json:"score"`
	Measured bool   `json:"measured"`
}
