// Package logging builds the zerolog logger used across wrapstats.
// Logs go to stderr so the summary on stdout stays clean; an optional file
// sink rotates through lumberjack.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level and sinks.
type Options struct {
	Level   string
	JSON    bool
	File    string
	Verbose bool
	Quiet   bool
	NoColor bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Console defaults to os.Stderr.
	Console io.Writer
}

// New returns a logger for opts. Quiet wins over Verbose, which wins over
// Level. When the log file cannot be prepared the returned logger still
// writes to the console and the error says why the file sink is missing.
func New(opts Options) (zerolog.Logger, error) {
	level := ParseLevel(opts.Level)
	switch {
	case opts.Quiet:
		level = zerolog.ErrorLevel
	case opts.Verbose:
		level = zerolog.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var writers []io.Writer
	if opts.JSON {
		writers = append(writers, console)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: "15:04:05",
			NoColor:    opts.NoColor,
		})
	}
	var fileErr error
	if opts.File != "" {
		fw, err := fileWriter(opts)
		if err != nil {
			fileErr = fmt.Errorf("log file %s: %w", opts.File, err)
		} else {
			writers = append(writers, fw)
		}
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), fileErr
}

// fileWriter returns a rotating file sink in a directory it creates.
func fileWriter(opts Options) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}, nil
}

// ParseLevel maps a level name to a zerolog level; unknown names are info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
