// Package scanner locates project folders and scores projects for the
// highlights ranking.
package scanner

import (
	"github.com/muripo/wrapstats/internal/cloc"
	"github.com/muripo/wrapstats/internal/registry"
)

// Record is the per-project result of one generation pass.
type Record struct {
	// Project is the registry entry the record was built from.
	Project registry.Project `json:"project"`

	// FolderName is the resolved directory name under the root.
	FolderName string `json:"folder_name"`

	// Measurement is the parsed cloc report, nil when measuring failed.
	Measurement *cloc.Result `json:"-"`

	// Score is the highlight score.
	Score int `json:"score"`
}

// Lines returns the measured code lines, 0 when measurement failed.
func (r Record) Lines() int {
	return r.Measurement.Lines()
}

// NewRecord scores p against its measurement and returns the record.
func NewRecord(p registry.Project, folder string, m *cloc.Result) Record {
	return Record{
		Project:     p,
		FolderName:  folder,
		Measurement: m,
		Score:       HighlightScore(p, m),
	}
}
