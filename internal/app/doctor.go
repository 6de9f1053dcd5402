package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/muripo/wrapstats/internal/cloc"
	"github.com/muripo/wrapstats/internal/config"
	"github.com/muripo/wrapstats/internal/output"
	"github.com/muripo/wrapstats/internal/registry"
	"github.com/muripo/wrapstats/internal/scanner"
	"github.com/muripo/wrapstats/internal/store"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether a report can be generated",
	Long: `Run the pre-flight checks of 'generate' without measuring anything: cloc
installation, project root, registry validity, folder resolution, output
directory and history database. Prints a pass/fail line for each check.
Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	checks := doctorChecks(cmd.Context(), cfg, newCounter(cfg))

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if doctorJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Println(output.Section("Doctor"))
		fmt.Println()

		for _, c := range checks {
			renderDoctorCheck(c)
		}

		fmt.Println()
		summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
		if passed == len(checks) {
			fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
		} else {
			fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
		}
	}

	if passed != len(checks) {
		return fmt.Errorf("%d of %d checks failed", len(checks)-passed, len(checks))
	}
	return nil
}

// doctorChecks runs every check in order. Later checks that need an earlier
// one to pass are skipped and reported as failed.
func doctorChecks(ctx context.Context, cfg *config.Config, counter *cloc.Counter) []doctorCheck {
	var checks []doctorCheck

	checks = append(checks, checkCloc(ctx, counter))

	rootCheck, resolver := checkRoot(cfg)
	checks = append(checks, rootCheck)

	regCheck, projects := checkRegistry(cfg.RegistryPath())
	checks = append(checks, regCheck)

	if resolver != nil && projects != nil {
		checks = append(checks, checkFolders(resolver, registry.FilterCompleted(projects, cfg.DoneStatus, cfg.SelfDay)))
	}

	checks = append(checks, checkOutputDir(cfg.OutputPath()))

	if cfg.History.Enabled {
		checks = append(checks, checkHistory(cfg.History.DB))
	}
	return checks
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkCloc verifies that the measurement tool runs.
func checkCloc(ctx context.Context, counter *cloc.Counter) doctorCheck {
	if err := counter.CheckInstalled(ctx); err != nil {
		return doctorCheck{
			Name:    "cloc",
			Passed:  false,
			Message: fmt.Sprintf("%s not runnable (brew/apt/choco install cloc)", counter.Binary),
		}
	}
	return doctorCheck{
		Name:    "cloc",
		Passed:  true,
		Message: counter.Binary,
	}
}

// checkRoot verifies that the project root can be listed.
func checkRoot(cfg *config.Config) (doctorCheck, *scanner.Resolver) {
	resolver, err := scanner.NewResolver(cfg.RootDir, cfg.FolderPrefix)
	if err != nil {
		return doctorCheck{
			Name:    "Project root",
			Passed:  false,
			Message: fmt.Sprintf("cannot list %s: %v", cfg.RootDir, err),
		}, nil
	}
	return doctorCheck{
		Name:    "Project root",
		Passed:  true,
		Message: cfg.RootDir,
	}, resolver
}

// checkRegistry verifies that the registry loads and validates.
func checkRegistry(path string) (doctorCheck, []registry.Project) {
	projects, err := registry.Load(path)
	if err != nil {
		return doctorCheck{
			Name:    "Registry",
			Passed:  false,
			Message: err.Error(),
		}, nil
	}
	if projects == nil {
		projects = []registry.Project{}
	}
	return doctorCheck{
		Name:    "Registry",
		Passed:  true,
		Message: fmt.Sprintf("%d projects in %s", len(projects), path),
	}, projects
}

// checkFolders reports how many finished projects resolve to a folder.
// Missing folders are tolerated by generate, so they only fail the check
// when no project resolves at all or a day is ambiguous.
func checkFolders(resolver *scanner.Resolver, completed []registry.Project) doctorCheck {
	found := 0
	var ambiguous []int
	for _, p := range completed {
		if resolver.Resolve(p.DayIndex) != "" {
			found++
		}
		if len(resolver.Matches(p.DayIndex)) > 1 {
			ambiguous = append(ambiguous, p.DayIndex)
		}
	}

	msg := fmt.Sprintf("%d/%d finished projects have a folder", found, len(completed))
	if len(ambiguous) > 0 {
		msg += fmt.Sprintf("; ambiguous days %v", ambiguous)
	}
	return doctorCheck{
		Name:    "Project folders",
		Passed:  len(ambiguous) == 0 && (found > 0 || len(completed) == 0),
		Message: msg,
	}
}

// checkOutputDir verifies that the report directory exists or can be made.
func checkOutputDir(path string) doctorCheck {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return doctorCheck{
			Name:    "Output directory",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}
	probe, err := os.CreateTemp(dir, ".wrapstats-doctor-*")
	if err != nil {
		return doctorCheck{
			Name:    "Output directory",
			Passed:  false,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
	return doctorCheck{
		Name:    "Output directory",
		Passed:  true,
		Message: path,
	}
}

// checkHistory verifies that the history database opens and migrates.
func checkHistory(dbPath string) doctorCheck {
	db, err := store.Open(dbPath)
	if err != nil {
		return doctorCheck{
			Name:    "History database",
			Passed:  false,
			Message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}
	}
	defer func() { _ = db.Close() }()

	latest, err := db.GetLatestRun()
	if err != nil {
		return doctorCheck{
			Name:    "History database",
			Passed:  false,
			Message: err.Error(),
		}
	}
	msg := dbPath + " (no runs yet)"
	if latest != nil {
		msg = fmt.Sprintf("%s (last run #%d)", dbPath, latest.ID)
	}
	return doctorCheck{
		Name:    "History database",
		Passed:  true,
		Message: msg,
	}
}
