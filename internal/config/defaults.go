// Package config provides configuration loading and defaults for wrapstats.
package config

import "time"

// DefaultRootDir is the directory holding the day-NN-* project folders.
const DefaultRootDir = "."

// DefaultRegistry is the project registry location, relative to the root.
const DefaultRegistry = "hq/projects.json"

// DefaultOutput is the report artifact location, relative to the root.
const DefaultOutput = "wrapped/data/stats.json"

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "wrapstats.yaml"

// DefaultConfigDir holds the history database.
const DefaultConfigDir = "~/.config/wrapstats"

// DefaultDBName is the filename for the history database.
const DefaultDBName = "history.db"

// DefaultSelfDay is the day of the report generator itself, which never
// counts towards its own statistics.
const DefaultSelfDay = 32

// DefaultDoneStatus marks a finished project in the registry.
const DefaultDoneStatus = "done"

// DefaultFolderPrefix precedes the zero-padded day in project folder names.
const DefaultFolderPrefix = "day-"

// DefaultJobs keeps measurement sequential.
const DefaultJobs = 1

// DefaultCloc holds the external measurement tool settings.
var DefaultCloc = Cloc{
	Binary:  "cloc",
	Timeout: 30 * time.Second,
	ExcludeDirs: []string{
		"node_modules", "dist", "build", ".git", "coverage",
		"__pycache__", ".venv", "venv",
	},
}

// DefaultWeekLabels names the five weekly cohorts.
var DefaultWeekLabels = []string{"Tools", "Interactive", "Visualization", "Data Science", "Wrap-up"}

// DefaultInfrastructure is the fixed list of supporting projects shown
// alongside the daily ones.
var DefaultInfrastructure = []Infrastructure{
	{Name: "Muripo HQ", Desc: "Project calendar site"},
	{Name: "Scheduled Release", Desc: "Timed automatic publishing"},
	{Name: "Auto Blog Builder", Desc: "Automated blog pipeline"},
	{Name: "Gallery Indexer", Desc: "Automatic photo gallery index"},
	{Name: "Stargazer Galaxy", Desc: "Auto-updating star galaxy map"},
}

// DefaultHistory enables the run history database.
var DefaultHistory = History{
	Enabled: true,
	DB:      DefaultConfigDir + "/" + DefaultDBName,
}

// DefaultLog holds the default logging preferences.
var DefaultLog = Log{
	Level:      "info",
	MaxSizeMB:  10,
	MaxBackups: 3,
	MaxAgeDays: 28,
}

// DefaultTerminal holds the default output preferences.
var DefaultTerminal = Terminal{
	Color: true,
}
