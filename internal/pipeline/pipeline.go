// Package pipeline runs one report generation: pre-flight checks, the
// per-project resolve/measure/score pass, and aggregation.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/muripo/wrapstats/internal/analyzer"
	"github.com/muripo/wrapstats/internal/cloc"
	"github.com/muripo/wrapstats/internal/registry"
	"github.com/muripo/wrapstats/internal/scanner"
)

// Measurer counts lines for a project directory.
type Measurer interface {
	CheckInstalled(ctx context.Context) error
	Measure(ctx context.Context, dir string) (*cloc.Result, error)
}

// Options configures a run.
type Options struct {
	RootDir      string
	RegistryPath string
	FolderPrefix string
	DoneStatus   string
	SelfDay      int

	// Jobs bounds concurrent measurements. 1 keeps the pass sequential.
	Jobs int

	WeekLabels     []string
	Infrastructure []analyzer.Infrastructure

	Measurer Measurer
	Logger   zerolog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Result is everything a run produced.
type Result struct {
	Report *analyzer.Report

	// Records are the aggregated projects in registry order.
	Records []scanner.Record

	// Completed is the number of finished projects considered.
	Completed int

	// Unresolved lists finished projects without a folder.
	Unresolved []registry.Project

	// Failed holds the day indexes whose measurement failed.
	Failed []int
}

// Preflight verifies the measurement tool, the project root and the
// registry. Nothing is measured or written when it fails.
func Preflight(ctx context.Context, opts Options) ([]registry.Project, *scanner.Resolver, error) {
	if err := opts.Measurer.CheckInstalled(ctx); err != nil {
		return nil, nil, err
	}

	resolver, err := scanner.NewResolver(opts.RootDir, opts.FolderPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("reading project root: %w", err)
	}

	projects, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return nil, nil, err
	}
	return projects, resolver, nil
}

// slot is one resolved project awaiting measurement.
type slot struct {
	project registry.Project
	folder  string
	record  scanner.Record
	failed  bool
}

// Run executes the whole pipeline and returns the aggregated report. Soft
// per-project failures are logged and degrade that project to zero lines;
// only pre-flight failures and cancellation return an error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	projects, resolver, err := Preflight(ctx, opts)
	if err != nil {
		return nil, err
	}

	completed := registry.FilterCompleted(projects, opts.DoneStatus, opts.SelfDay)
	log.Info().Int("completed", len(completed)).Int("registered", len(projects)).Msg("registry loaded")

	res := &Result{Completed: len(completed)}

	var slots []*slot
	for _, p := range completed {
		folder := resolver.Resolve(p.DayIndex)
		if folder == "" {
			log.Warn().Int("day", p.DayIndex).Str("name", p.Name).
				Str("pattern", scanner.FolderPattern(opts.FolderPrefix, p.DayIndex)+"*").
				Msg("project folder not found, skipping")
			res.Unresolved = append(res.Unresolved, p)
			continue
		}
		if matches := resolver.Matches(p.DayIndex); len(matches) > 1 {
			log.Warn().Int("day", p.DayIndex).Strs("candidates", matches).Str("using", folder).
				Msg("several folders match, using the first by name")
		}
		slots = append(slots, &slot{project: p, folder: folder})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, s := range slots {
		s := s
		g.Go(func() error {
			dir := filepath.Join(resolver.Root(), s.folder)
			m, err := opts.Measurer.Measure(gctx, dir)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn().Err(err).Int("day", s.project.DayIndex).Str("folder", s.folder).
					Msg("measurement failed, counting 0 lines")
				s.failed = true
				m = nil
			} else {
				log.Info().Int("day", s.project.DayIndex).Str("folder", s.folder).Int("lines", m.Lines()).
					Msg("measured")
			}
			s.record = scanner.NewRecord(s.project, s.folder, m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("measuring projects: %w", err)
	}

	res.Records = make([]scanner.Record, 0, len(slots))
	for _, s := range slots {
		res.Records = append(res.Records, s.record)
		if s.failed {
			res.Failed = append(res.Failed, s.project.DayIndex)
		}
	}

	res.Report = analyzer.Aggregate(res.Records, analyzer.Options{
		GeneratedAt:    now(),
		WeekLabels:     opts.WeekLabels,
		Infrastructure: opts.Infrastructure,
	})
	return res, nil
}
