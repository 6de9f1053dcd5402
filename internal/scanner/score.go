package scanner

import (
	"strings"

	"github.com/muripo/wrapstats/internal/cloc"
	"github.com/muripo/wrapstats/internal/registry"
)

// ActionType is the project type that earns a bonus point.
const ActionType = "action"

// Tag sets that earn a bonus when any project tag is a member.
var (
	VisualizationTags = tagSet("d3", "d3.js", "plotly", "leaflet", "three-js", "three.js", "canvas", "webgl", "svg", "chart")
	GenerativeArtTags = tagSet("generative-art", "generative", "fibonacci", "procedural")
	DataVizTags       = tagSet("data-visualization", "data-viz", "visualization")
)

func tagSet(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// HighlightScore ranks a project for the showcase.
//
// Scoring breakdown:
//   - 2 points per distinct tag
//   - 3 points for any visualization tag
//   - 2 points for any generative-art tag
//   - 2 points for any data-visualization tag
//   - 1 point for the action type
//   - 2 points above 500 code lines, 2 more above 1000
//
// The three tag bonuses are independent of each other. A nil measurement
// only removes the line bonuses.
func HighlightScore(p registry.Project, m *cloc.Result) int {
	score := 0

	distinct := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		distinct[strings.ToLower(t)] = true
	}
	score += 2 * len(distinct)

	if anyIn(distinct, VisualizationTags) {
		score += 3
	}
	if anyIn(distinct, GenerativeArtTags) {
		score += 2
	}
	if anyIn(distinct, DataVizTags) {
		score += 2
	}

	if p.Type == ActionType {
		score++
	}

	lines := m.Lines()
	if lines > 500 {
		score += 2
	}
	if lines > 1000 {
		score += 2
	}

	return score
}

func anyIn(tags, set map[string]bool) bool {
	for t := range tags {
		if set[t] {
			return true
		}
	}
	return false
}
