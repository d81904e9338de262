package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "nexusctl", cmd.Use)
	assert.Contains(t, cmd.Long, "MIR Nexus")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"seed", "export", "import", "wipe", "stats"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	storeFlag := cmd.PersistentFlags().Lookup("store")
	require.NotNil(t, storeFlag)
	assert.Equal(t, "", storeFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("sqlite-path"))
}

func TestSeedCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	seedCmd, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)

	for name, def := range map[string]string{"users": "12", "posts": "40", "meetings": "10", "children": "15", "seed": "0"} {
		flag := seedCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)

	outFlag := exportCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "o", outFlag.Shorthand)

	formatFlag := exportCmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "json", formatFlag.DefValue)
}

// run executes nexusctl against a sqlite file shared by every call in a test.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--store", "sqlite", "--sqlite-path", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func readStats(t *testing.T, dbPath string) service.DashboardStats {
	t.Helper()
	out, err := run(t, dbPath, "stats", "--json")
	require.NoError(t, err, out)
	var stats service.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats), out)
	return stats
}

func TestSeedExportWipeImport(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nexus.db")

	out, err := run(t, dbPath, "seed", "--users", "4", "--posts", "6", "--meetings", "3", "--children", "5", "--seed", "7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "seeded 4 users, 6 posts, 3 meetings, 5 children")

	stats := readStats(t, dbPath)
	assert.Equal(t, 4, stats.Servos)
	assert.Equal(t, 6, stats.Feed)
	assert.Equal(t, 3, stats.Pautas)
	assert.Equal(t, 5, stats.Kids)
	assert.Len(t, stats.Activity, service.ActivityDays)

	backup := filepath.Join(dir, "backup.yaml")
	out, err = run(t, dbPath, "export", "--format", "yaml", "--out", backup)
	require.NoError(t, err, out)
	raw, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "users:")

	_, err = run(t, dbPath, "wipe")
	require.ErrorIs(t, err, errWipeNotConfirmed)
	assert.Equal(t, 4, readStats(t, dbPath).Servos)

	out, err = run(t, dbPath, "wipe", "--yes")
	require.NoError(t, err, out)
	assert.Zero(t, readStats(t, dbPath).Servos)

	out, err = run(t, dbPath, "import", backup)
	require.NoError(t, err, out)
	assert.Contains(t, out, "imported 4 users")

	stats = readStats(t, dbPath)
	assert.Equal(t, 4, stats.Servos)
	assert.Equal(t, 5, stats.Kids)
}

func TestExportToStdout(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dbPath := filepath.Join(t.TempDir(), "nexus.db")

	_, err := run(t, dbPath, "seed", "--users", "2", "--posts", "1", "--meetings", "0", "--children", "0", "--seed", "3")
	require.NoError(t, err)

	out, err := run(t, dbPath, "export")
	require.NoError(t, err)
	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	assert.Len(t, doc.Users, 2)
	assert.Len(t, doc.Posts, 1)

	_, err = run(t, dbPath, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nexus.db")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"users": 3}`), 0o600))

	_, err := run(t, dbPath, "import", bad)
	assert.Error(t, err)

	_, err = run(t, dbPath, "import", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestStatsText(t *testing.T) {
	var b bytes.Buffer
	err := writeStats(&b, service.DashboardStats{
		Servos: 2, Kids: 1, Pautas: 3, Feed: 4,
		Activity: []service.ActivityPoint{{Label: "T-1d", Value: 2}, {Label: "T-0d", Value: 1}},
	}, false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "servos:   2", lines[0])
	assert.Equal(t, "activity: T-1d=2 T-0d=1", lines[4])
}
