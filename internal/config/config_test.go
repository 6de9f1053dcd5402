package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSelfDay, cfg.SelfDay)
	assert.Equal(t, DefaultDoneStatus, cfg.DoneStatus)
	assert.Equal(t, DefaultFolderPrefix, cfg.FolderPrefix)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Equal(t, "cloc", cfg.Cloc.Binary)
	assert.Equal(t, 30*time.Second, cfg.Cloc.Timeout)
	assert.Contains(t, cfg.Cloc.ExcludeDirs, "node_modules")
	assert.Len(t, cfg.WeekLabels, 5)
	assert.Len(t, cfg.Infrastructure, len(DefaultInfrastructure))
	assert.True(t, cfg.History.Enabled)
	assert.True(t, cfg.Terminal.Color)
	assert.Equal(t, filepath.Join(".", "hq", "projects.json"), cfg.RegistryPath())
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `root_dir: /srv/muripo
registry: data/registry.yaml
output: /tmp/stats.json
self_day: 40
jobs: 4
cloc:
  timeout: 5s
infrastructure:
  - name: Only One
    desc: single entry
history:
  enabled: false
output_style:
  color: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/muripo", cfg.RootDir)
	assert.Equal(t, "/srv/muripo/data/registry.yaml", cfg.RegistryPath())
	assert.Equal(t, "/tmp/stats.json", cfg.OutputPath())
	assert.Equal(t, 40, cfg.SelfDay)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, 5*time.Second, cfg.Cloc.Timeout)
	assert.Equal(t, []Infrastructure{{Name: "Only One", Desc: "single entry"}}, cfg.Infrastructure)
	assert.False(t, cfg.History.Enabled)
	assert.False(t, cfg.Terminal.Color)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsBadWeekLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("week_labels: [a, b]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week_labels")
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WRAPSTATS_SELF_DAY", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.SelfDay)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
