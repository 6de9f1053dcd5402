// Package analyzer aggregates per-project records into the yearly report.
package analyzer

import "time"

// Fixed sizes of the ranked and bucketed report sections.
const (
	TopTagsLimit    = 10
	HighlightsLimit = 4
	WeekBuckets     = 5
	// DefaultType counts projects with no type in the registry.
	DefaultType = "other"
)

// Report is the structured yearly report written to the artifact. Field
// names are the contract with the presentation layer.
type Report struct {
	GeneratedAt    time.Time `json:"generatedAt"`
	TotalProjects  int       `json:"totalProjects"`
	TotalLines     int       `json:"totalLines"`
	AvgLinesPerDay int       `json:"avgLinesPerDay"`

	// MaxLinesDay is nil when no project has any measured lines.
	MaxLinesDay *MaxLinesDay `json:"maxLinesDay"`

	// TypeDistribution maps project type to count, in first-seen order.
	TypeDistribution Counts `json:"typeDistribution"`

	// TopTags holds at most TopTagsLimit lower-cased tags by count.
	TopTags []TagCount `json:"topTags"`

	// LanguageDistribution maps language to code lines, largest first.
	LanguageDistribution Counts `json:"languageDistribution"`

	// Highlights holds at most HighlightsLimit projects by score.
	Highlights []Highlight `json:"highlights"`

	Infrastructure []Infrastructure `json:"infrastructure"`

	// WeeklyProgress always has WeekBuckets entries.
	WeeklyProgress []WeekBucket `json:"weeklyProgress"`

	// ProjectDetails lists every aggregated project in registry order.
	ProjectDetails []ProjectDetail `json:"projectDetails"`
}

// MaxLinesDay identifies the largest project.
type MaxLinesDay struct {
	Day   int    `json:"day"`
	Name  string `json:"name"`
	Lines int    `json:"lines"`
}

// TagCount is one entry of the tag ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Highlight is one showcased project.
type Highlight struct {
	DayIndex int    `json:"dayIndex"`
	Name     string `json:"name"`
	Lines    int    `json:"lines"`
	Score    int    `json:"score"`
}

// Infrastructure is a fixed supporting project.
type Infrastructure struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// WeekBucket counts projects in one seven-day cohort.
type WeekBucket struct {
	Week     int    `json:"week"`
	Projects int    `json:"projects"`
	Label    string `json:"label"`
}

// ProjectDetail is the per-project line count kept in the report.
type ProjectDetail struct {
	DayIndex int    `json:"dayIndex"`
	Name     string `json:"name"`
	Lines    int    `json:"lines"`
}
