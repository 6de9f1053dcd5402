package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/muripo/wrapstats/internal/analyzer"
	"github.com/muripo/wrapstats/internal/cloc"
	"github.com/muripo/wrapstats/internal/config"
	"github.com/muripo/wrapstats/internal/pipeline"
	"github.com/muripo/wrapstats/internal/report"
	"github.com/muripo/wrapstats/internal/store"
)

type generateFlags struct {
	root      string
	registry  string
	out       string
	jobs      int
	noHistory bool
	json      bool
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Measure all finished projects and write the report",
	Long: `Generate validates the registry, resolves each finished project's
day-NN-* folder, measures it with cloc, scores highlights and writes the
aggregate report. A project whose folder is missing or whose measurement
fails is logged and counted as zero; an invalid registry or a missing cloc
aborts before anything is written.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// addGenerateFlags registers the generate flags on cmd. The root command
// carries them too so a bare `wrapstats` behaves like `wrapstats generate`.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genFlags.root, "root", "", "Directory containing the day-NN-* project folders")
	cmd.Flags().StringVar(&genFlags.registry, "registry", "", "Project registry file (JSON or YAML)")
	cmd.Flags().StringVar(&genFlags.out, "out", "", "Report output path")
	cmd.Flags().IntVar(&genFlags.jobs, "jobs", 0, "Concurrent cloc runs (default from config, 1 = sequential)")
	cmd.Flags().BoolVar(&genFlags.noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().BoolVar(&genFlags.json, "json", false, "Print the report JSON instead of the summary")
}

// applyGenerateFlags overrides config values with explicitly set flags.
// Path flags are taken relative to the working directory.
func applyGenerateFlags(cfg *config.Config) error {
	abs := func(p string) (string, error) {
		if p == "" {
			return "", nil
		}
		return filepath.Abs(p)
	}

	var err error
	if genFlags.root != "" {
		if cfg.RootDir, err = abs(genFlags.root); err != nil {
			return err
		}
	}
	if genFlags.registry != "" {
		if cfg.Registry, err = abs(genFlags.registry); err != nil {
			return err
		}
	}
	if genFlags.out != "" {
		if cfg.Output, err = abs(genFlags.out); err != nil {
			return err
		}
	}
	if genFlags.jobs > 0 {
		cfg.Jobs = genFlags.jobs
	}
	if genFlags.noHistory {
		cfg.History.Enabled = false
	}
	return nil
}

func newCounter(cfg *config.Config) *cloc.Counter {
	return cloc.New(cfg.Cloc.Binary, cfg.Cloc.Timeout, cfg.Cloc.ExcludeDirs)
}

func infrastructure(cfg *config.Config) []analyzer.Infrastructure {
	out := make([]analyzer.Infrastructure, len(cfg.Infrastructure))
	for i, inf := range cfg.Infrastructure {
		out[i] = analyzer.Infrastructure{Name: inf.Name, Desc: inf.Desc}
	}
	return out
}

func pipelineOptions(cfg *config.Config, log zerolog.Logger) pipeline.Options {
	return pipeline.Options{
		RootDir:        cfg.RootDir,
		RegistryPath:   cfg.RegistryPath(),
		FolderPrefix:   cfg.FolderPrefix,
		DoneStatus:     cfg.DoneStatus,
		SelfDay:        cfg.SelfDay,
		Jobs:           cfg.Jobs,
		WeekLabels:     cfg.WeekLabels,
		Infrastructure: infrastructure(cfg),
		Measurer:       newCounter(cfg),
		Logger:         log,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cfg); err != nil {
		return fmt.Errorf("resolving flags: %w", err)
	}

	res, err := pipeline.Run(cmd.Context(), pipelineOptions(cfg, log))
	if err != nil {
		return err
	}

	outPath := cfg.OutputPath()
	if err := report.Write(outPath, res.Report); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Int("projects", res.Report.TotalProjects).
		Int("lines", res.Report.TotalLines).Msg("report written")

	if cfg.History.Enabled {
		recordHistory(cfg.History.DB, outPath, res, log)
	}

	if genFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Report)
	}

	report.PrintSummary(os.Stdout, res.Report, outPath)
	return nil
}

// recordHistory stores the run. Failures are logged; the report is already
// written and stays the result of the command.
func recordHistory(dbPath, outPath string, res *pipeline.Result, log zerolog.Logger) {
	db, err := store.Open(dbPath)
	if err != nil {
		log.Warn().Err(err).Str("db", dbPath).Msg("history unavailable, run not recorded")
		return
	}
	defer func() { _ = db.Close() }()

	failed := make(map[int]bool, len(res.Failed))
	for _, d := range res.Failed {
		failed[d] = true
	}

	projects := make([]store.RunProject, 0, len(res.Records))
	for _, r := range res.Records {
		projects = append(projects, store.RunProject{
			DayIndex: r.Project.DayIndex,
			Name:     r.Project.Name,
			Folder:   r.FolderName,
			Lines:    r.Lines(),
			Score:    r.Score,
			Measured: !failed[r.Project.DayIndex],
		})
	}

	run := &store.Run{
		GeneratedAt:    res.Report.GeneratedAt,
		Version:        appVersion,
		OutputPath:     outPath,
		TotalProjects:  res.Report.TotalProjects,
		TotalLines:     res.Report.TotalLines,
		AvgLinesPerDay: res.Report.AvgLinesPerDay,
		Failures:       len(res.Failed) + len(res.Unresolved),
	}
	if _, err := db.RecordRun(run, projects); err != nil {
		log.Warn().Err(err).Msg("recording run history failed")
		return
	}
	log.Debug().Int64("run", run.ID).Msg("run recorded")
}
