package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordRun_RoundTrip(t *testing.T) {
	db := openTest(t)

	at := time.Date(2025, 12, 31, 8, 0, 0, 0, time.UTC)
	run := &Run{GeneratedAt: at, Version: "1.0.0", OutputPath: "/tmp/stats.json", TotalProjects: 2, TotalLines: 300, AvgLinesPerDay: 150, Failures: 1}
	projects := []RunProject{
		{DayIndex: 1, Name: "A", Folder: "day-01-a", Lines: 300, Score: 4, Measured: true},
		{DayIndex: 2, Name: "B", Folder: "day-02-b", Lines: 0, Score: 2, Measured: false},
	}

	id, err := db.RecordRun(run, projects)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)

	latest, err := db.GetLatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 300, latest.TotalLines)
	assert.Equal(t, 1, latest.Failures)
	assert.True(t, at.Equal(latest.GeneratedAt))

	got, err := db.GetRunProjects(id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "day-01-a", got[0].Folder)
	assert.True(t, got[0].Measured)
	assert.False(t, got[1].Measured)
}

func TestGetLatestRun_Empty(t *testing.T) {
	db := openTest(t)
	r, err := db.GetLatestRun()
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	db := openTest(t)
	for i := 1; i <= 3; i++ {
		_, err := db.RecordRun(&Run{GeneratedAt: time.Now(), Version: "dev", TotalLines: i * 100}, nil)
		require.NoError(t, err)
	}

	runs, err := db.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 300, runs[0].TotalLines)
	assert.Equal(t, 200, runs[1].TotalLines)

	all, err := db.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOpen_CreatesFileAndIsReopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.RecordRun(&Run{GeneratedAt: time.Now(), Version: "dev"}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	runs, err := db.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
