package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/muripo/wrapstats/internal/analyzer"
	"github.com/muripo/wrapstats/internal/output"
)

// summaryTags is how many of the top tags the summary shows.
const summaryTags = 5

// summaryLanguages is how many languages get a bar in the summary.
const summaryLanguages = 6

// PrintSummary writes a condensed, human-readable view of r to w.
func PrintSummary(w io.Writer, r *analyzer.Report, path string) {
	fmt.Fprintln(w, output.Section("Wrapped summary"))
	fmt.Fprintln(w)

	row := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", output.StyleLabel.Render(label), output.StyleValue.Render(value))
	}
	row("Projects", humanize.Comma(int64(r.TotalProjects)))
	row("Lines of code", humanize.Comma(int64(r.TotalLines)))
	row("Average per day", humanize.Comma(int64(r.AvgLinesPerDay)))
	if r.MaxLinesDay != nil {
		row("Largest project", fmt.Sprintf("Day %d %s (%s lines)",
			r.MaxLinesDay.Day, r.MaxLinesDay.Name, humanize.Comma(int64(r.MaxLinesDay.Lines))))
	} else {
		row("Largest project", output.StyleMuted.Render("none"))
	}

	if len(r.TypeDistribution) > 0 {
		fmt.Fprintln(w, output.Section("Project types"))
		for _, c := range r.TypeDistribution {
			fmt.Fprintf(w, "  %-20s %d\n", c.Key, c.Value)
		}
	}

	if len(r.TopTags) > 0 {
		fmt.Fprintln(w, output.Section(fmt.Sprintf("Top %d tags", summaryTags)))
		for i, t := range r.TopTags {
			if i == summaryTags {
				break
			}
			fmt.Fprintf(w, "  %d. %s %s\n", i+1, t.Tag, output.StyleMuted.Render(fmt.Sprintf("(%d)", t.Count)))
		}
	}

	if len(r.LanguageDistribution) > 0 {
		fmt.Fprintln(w, output.Section("Languages"))
		top := r.LanguageDistribution[0].Value
		tbl := output.NewTable("Language", "Lines", "")
		for i, l := range r.LanguageDistribution {
			if i == summaryLanguages {
				break
			}
			tbl.AddRow(l.Key, humanize.Comma(int64(l.Value)), output.Bar(l.Value, top, 20))
		}
		tbl.Fprint(w)
	}

	if len(r.Highlights) > 0 {
		fmt.Fprintln(w, output.Section("Highlights"))
		for _, h := range r.Highlights {
			fmt.Fprintf(w, "  Day %-3d %s %s\n", h.DayIndex, h.Name,
				output.StyleAccent.Render(fmt.Sprintf("(score: %d)", h.Score)))
		}
	}

	fmt.Fprintln(w, output.Section("Weekly progress"))
	for _, b := range r.WeeklyProgress {
		fmt.Fprintf(w, "  Week %d %-16s %d\n", b.Week, b.Label, b.Projects)
	}

	if path != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %s %s\n\n", output.StyleSuccess.Render("✓ Report written to"), path)
	}
}
