package logging

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestInitWritesJSONToLogDir(t *testing.T) {
	Shutdown()
	dir := t.TempDir()
	Init(Config{LogDir: dir})
	defer Shutdown()

	Logger().Info("hello", "key", "value")

	records := readRecords(t, filepath.Join(dir, LogFileName))
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0]["msg"])
	assert.Equal(t, "value", records[0]["key"])
}

func TestInitWithoutDirDiscards(t *testing.T) {
	Shutdown()
	Init(Config{})
	defer Shutdown()

	assert.NotPanics(t, func() {
		Logger().Info("nowhere")
	})
}

func TestForComponentCreatedBeforeInit(t *testing.T) {
	Shutdown()
	early := ForComponent(CompExec)

	dir := t.TempDir()
	Init(Config{LogDir: dir, Level: "debug"})
	defer Shutdown()

	early.Debug("spawned", "pid", 42)

	records := readRecords(t, filepath.Join(dir, LogFileName))
	require.Len(t, records, 1)
	assert.Equal(t, CompExec, records[0]["component"])
	assert.Equal(t, float64(42), records[0]["pid"])
}

func TestLevelFiltersRecords(t *testing.T) {
	Shutdown()
	dir := t.TempDir()
	Init(Config{LogDir: dir, Level: "warn"})
	defer Shutdown()

	Logger().Info("dropped")
	Logger().Warn("kept")

	records := readRecords(t, filepath.Join(dir, LogFileName))
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0]["msg"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
