package analyzer

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/muripo/wrapstats/internal/cloc"
	"github.com/muripo/wrapstats/internal/scanner"
)

// Options carries the fixed, non-computed parts of the report.
type Options struct {
	GeneratedAt    time.Time
	WeekLabels     []string
	Infrastructure []Infrastructure
}

// WeekIndex returns the zero-based weekly bucket for a day: days 1-7 are
// bucket 0, and everything past day 28 lands in the last bucket.
func WeekIndex(day int) int {
	idx := (day - 1) / 7
	if idx < 0 {
		return 0
	}
	if idx > WeekBuckets-1 {
		return WeekBuckets - 1
	}
	return idx
}

// Aggregate builds the report in a single pass over records. Record order
// breaks every tie in the ranked sections.
func Aggregate(records []scanner.Record, opts Options) *Report {
	r := &Report{
		GeneratedAt:    opts.GeneratedAt.UTC(),
		TotalProjects:  len(records),
		TopTags:        []TagCount{},
		Highlights:     []Highlight{},
		Infrastructure: opts.Infrastructure,
		ProjectDetails: make([]ProjectDetail, 0, len(records)),
	}
	if r.Infrastructure == nil {
		r.Infrastructure = []Infrastructure{}
	}

	types := newCounter()
	tags := newCounter()
	langs := newCounter()
	var weeks [WeekBuckets]int

	for _, rec := range records {
		lines := rec.Lines()
		r.TotalLines += lines

		r.ProjectDetails = append(r.ProjectDetails, ProjectDetail{
			DayIndex: rec.Project.DayIndex,
			Name:     rec.Project.Name,
			Lines:    lines,
		})

		// Strictly greater keeps the first project on ties.
		if lines > 0 && (r.MaxLinesDay == nil || lines > r.MaxLinesDay.Lines) {
			r.MaxLinesDay = &MaxLinesDay{Day: rec.Project.DayIndex, Name: rec.Project.Name, Lines: lines}
		}

		typ := rec.Project.Type
		if typ == "" {
			typ = DefaultType
		}
		types.add(typ, 1)

		seen := make(map[string]bool, len(rec.Project.Tags))
		for _, t := range rec.Project.Tags {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags.add(key, 1)
		}

		if rec.Measurement != nil {
			for _, l := range rec.Measurement.Languages {
				if l.Language == cloc.HeaderKey || l.Language == cloc.SumKey || l.Code <= 0 {
					continue
				}
				langs.add(l.Language, l.Code)
			}
		}

		weeks[WeekIndex(rec.Project.DayIndex)]++
	}

	r.AvgLinesPerDay = averageLines(r.TotalLines, r.TotalProjects)
	r.TypeDistribution = types.items

	tagRank := tags.items
	tagRank.SortDesc()
	for i, t := range tagRank {
		if i == TopTagsLimit {
			break
		}
		r.TopTags = append(r.TopTags, TagCount{Tag: t.Key, Count: t.Value})
	}

	langs.items.SortDesc()
	r.LanguageDistribution = langs.items

	r.Highlights = highlights(records)

	r.WeeklyProgress = make([]WeekBucket, WeekBuckets)
	for i := range weeks {
		label := ""
		if i < len(opts.WeekLabels) {
			label = opts.WeekLabels[i]
		}
		r.WeeklyProgress[i] = WeekBucket{Week: i + 1, Projects: weeks[i], Label: label}
	}

	return r
}

// averageLines rounds half away from zero; an empty run averages 0.
func averageLines(total, projects int) int {
	if projects == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(projects)))
}

// highlights picks the top-scoring records, keeping record order on ties.
func highlights(records []scanner.Record) []Highlight {
	ranked := make([]scanner.Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	out := make([]Highlight, 0, HighlightsLimit)
	for i, rec := range ranked {
		if i == HighlightsLimit {
			break
		}
		out = append(out, Highlight{
			DayIndex: rec.Project.DayIndex,
			Name:     rec.Project.Name,
			Lines:    rec.Lines(),
			Score:    rec.Score,
		})
	}
	return out
}
