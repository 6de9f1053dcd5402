package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/muripo/wrapstats/internal/output"
	"github.com/muripo/wrapstats/internal/store"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous report generations",
	Long: `Show recent runs recorded in the history database with totals and the
change in lines against the run before each one.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.History.DB)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// One extra run gives the oldest shown row something to compare with.
	fetch := historyLimit
	if fetch > 0 {
		fetch++
	}
	runs, err := db.ListRuns(fetch)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	shown := runs
	if historyLimit > 0 && len(shown) > historyLimit {
		shown = shown[:historyLimit]
	}

	if historyJSON {
		if shown == nil {
			shown = []store.Run{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(shown)
	}

	fmt.Println(output.Section("History"))
	fmt.Println()
	if len(shown) == 0 {
		fmt.Println("  " + output.StyleMuted.Render("No runs recorded yet. Run 'wrapstats generate' first."))
		fmt.Println()
		return nil
	}

	tbl := output.NewTable("Run", "Generated", "Projects", "Lines", "Change", "Avg/day", "Issues")
	for i, r := range shown {
		change := output.StyleMuted.Render("─")
		if i+1 < len(runs) {
			change = output.TrendArrow(r.TotalLines-runs[i+1].TotalLines, true)
		}
		issues := output.StyleMuted.Render("0")
		if r.Failures > 0 {
			issues = output.StyleWarning.Render(fmt.Sprintf("%d", r.Failures))
		}
		tbl.AddRow(
			fmt.Sprintf("#%d", r.ID),
			r.GeneratedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.TotalProjects),
			humanize.Comma(int64(r.TotalLines)),
			change,
			humanize.Comma(int64(r.AvgLinesPerDay)),
			issues,
		)
	}
	tbl.Print()
	fmt.Println()
	return nil
}
