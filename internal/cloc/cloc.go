// Package cloc runs the external cloc tool and parses its JSON report.
package cloc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrNotInstalled is returned by CheckInstalled when the cloc binary cannot
// be run.
var ErrNotInstalled = errors.New("cloc is not installed")

// InstallHint lists the usual ways to install cloc.
const InstallHint = `Install cloc first:
  macOS:   brew install cloc
  Ubuntu:  sudo apt install cloc
  Windows: choco install cloc`

// DefaultExcludeDirs are directory names never worth counting.
var DefaultExcludeDirs = []string{
	"node_modules", "dist", "build", ".git", "coverage",
	"__pycache__", ".venv", "venv",
}

// RunFunc executes a command and returns its standard output.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRun is the RunFunc backed by os/exec.
func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, err
	}
	return out, nil
}

// Counter invokes cloc for a project directory.
type Counter struct {
	Binary      string
	Timeout     time.Duration
	ExcludeDirs []string

	// Run defaults to os/exec; tests replace it.
	Run RunFunc
}

// New returns a Counter for the given binary with defaults for everything
// left empty.
func New(binary string, timeout time.Duration, excludeDirs []string) *Counter {
	if binary == "" {
		binary = "cloc"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if len(excludeDirs) == 0 {
		excludeDirs = DefaultExcludeDirs
	}
	return &Counter{
		Binary:      binary,
		Timeout:     timeout,
		ExcludeDirs: excludeDirs,
		Run:         execRun,
	}
}

func (c *Counter) run(ctx context.Context, args ...string) ([]byte, error) {
	run := c.Run
	if run == nil {
		run = execRun
	}
	return run(ctx, c.Binary, args...)
}

// CheckInstalled runs `cloc --version` once. A failure wraps ErrNotInstalled
// and carries installation instructions.
func (c *Counter) CheckInstalled(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	if _, err := c.run(ctx, "--version"); err != nil {
		return fmt.Errorf("%w (%s: %v)\n\n%s", ErrNotInstalled, c.Binary, err, InstallHint)
	}
	return nil
}

// Args returns the cloc arguments used to measure dir.
func (c *Counter) Args(dir string) []string {
	return []string{
		dir,
		"--json",
		"--exclude-dir=" + strings.Join(c.ExcludeDirs, ","),
	}
}

// Measure counts lines under dir. Every failure (missing directory, non-zero
// exit, timeout, unexpected output) is returned as an error; callers decide
// how to degrade. Nothing is retried.
func (c *Counter) Measure(ctx context.Context, dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	out, err := c.run(ctx, c.Args(dir)...)
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return nil, fmt.Errorf("cloc timed out after %s", c.Timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("running cloc: %w", err)
	}

	res, err := Parse(out)
	if err != nil {
		return nil, fmt.Errorf("reading cloc output: %w", err)
	}
	return res, nil
}
