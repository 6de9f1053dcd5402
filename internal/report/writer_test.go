package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muripo/wrapstats/internal/analyzer"
	"github.com/muripo/wrapstats/internal/output"
)

func sampleReport() *analyzer.Report {
	return &analyzer.Report{
		GeneratedAt:    time.Date(2025, 12, 31, 9, 30, 0, 0, time.UTC),
		TotalProjects:  2,
		TotalLines:     12345,
		AvgLinesPerDay: 6173,
		MaxLinesDay:    &analyzer.MaxLinesDay{Day: 5, Name: "Galaxy", Lines: 12000},
		TypeDistribution: analyzer.Counts{
			{Key: "tool", Value: 1},
			{Key: "action", Value: 1},
		},
		TopTags: []analyzer.TagCount{{Tag: "d3", Count: 2}},
		LanguageDistribution: analyzer.Counts{
			{Key: "TypeScript", Value: 12000},
			{Key: "CSS", Value: 345},
		},
		Highlights:     []analyzer.Highlight{{DayIndex: 5, Name: "Galaxy", Lines: 12000, Score: 11}},
		Infrastructure: []analyzer.Infrastructure{{Name: "HQ", Desc: "calendar"}},
		WeeklyProgress: []analyzer.WeekBucket{
			{Week: 1, Projects: 2, Label: "Tools"},
			{Week: 2}, {Week: 3}, {Week: 4}, {Week: 5},
		},
		ProjectDetails: []analyzer.ProjectDetail{
			{DayIndex: 1, Name: "A", Lines: 345},
			{DayIndex: 5, Name: "Galaxy", Lines: 12000},
		},
	}
}

func TestWrite_CreatesDirectoryAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "stats.json")
	r := sampleReport()

	require.NoError(t, Write(path, r))

	back, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, r.TotalLines, back.TotalLines)
	assert.Equal(t, r.LanguageDistribution, back.LanguageDistribution)
	assert.True(t, r.GeneratedAt.Equal(back.GeneratedAt))
}

func TestWrite_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"old": true, "padding": "`+strings.Repeat("x", 4096)+`"}`), 0o644))

	require.NoError(t, Write(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"old"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMarshal_KeysAndOrder(t *testing.T) {
	data, err := Marshal(sampleReport())
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &generic))
	for _, key := range []string{
		"generatedAt", "totalProjects", "totalLines", "avgLinesPerDay", "maxLinesDay",
		"typeDistribution", "topTags", "languageDistribution", "highlights",
		"infrastructure", "weeklyProgress", "projectDetails",
	} {
		assert.Contains(t, generic, key)
	}

	s := string(data)
	assert.Less(t, strings.Index(s, `"TypeScript"`), strings.Index(s, `"CSS"`))
	assert.Contains(t, s, `"generatedAt": "2025-12-31T09:30:00Z"`)
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := Marshal(sampleReport())
	require.NoError(t, err)
	b, err := Marshal(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPrintSummary(t *testing.T) {
	output.SetNoColor(true)
	defer output.SetNoColor(false)

	var buf bytes.Buffer
	PrintSummary(&buf, sampleReport(), "/tmp/stats.json")

	out := buf.String()
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "Day 5 Galaxy (12,000 lines)")
	assert.Contains(t, out, "1. d3 (2)")
	assert.Contains(t, out, "TypeScript")
	assert.Contains(t, out, "(score: 11)")
	assert.Contains(t, out, "/tmp/stats.json")
}

func TestPrintSummary_LongValuesStayOnOneLine(t *testing.T) {
	output.SetNoColor(true)
	defer output.SetNoColor(false)

	r := sampleReport()
	r.MaxLinesDay = &analyzer.MaxLinesDay{Day: 27, Name: "Procedural Terrain Generator", Lines: 1234567}

	var buf bytes.Buffer
	PrintSummary(&buf, r, "")

	var largest string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Largest project") {
			largest = line
		}
	}
	assert.Contains(t, largest, "Day 27 Procedural Terrain Generator (1,234,567 lines)")
}

func TestPrintSummary_EmptyReport(t *testing.T) {
	output.SetNoColor(true)
	defer output.SetNoColor(false)

	r := analyzer.Aggregate(nil, analyzer.Options{WeekLabels: []string{"a", "b", "c", "d", "e"}})

	var buf bytes.Buffer
	PrintSummary(&buf, r, "")
	assert.Contains(t, buf.String(), "none")
	assert.NotContains(t, buf.String(), "Report written")
}
