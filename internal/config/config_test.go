package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/tmp/al")

	assert.Equal(t, "/tmp/al/schema.json", cfg.SchemaPath)
	assert.Equal(t, "/tmp/al/data.json", cfg.DataPath)
	assert.Equal(t, "/tmp/al/history.db", cfg.HistoryPath)
	assert.Equal(t, "options", cfg.OptionsKey)
	assert.Equal(t, "ROOT", cfg.RootLabel)
	assert.Equal(t, ReminderUnset, cfg.ReminderMinutes)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultTree(t *testing.T) {
	root := DefaultConfig("/x").DefaultTree()
	out, err := tree.Marshal(root, tree.StyleData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"options": {"default": 0}}`, string(out))
}

func TestCommand_Aliases(t *testing.T) {
	cfg := DefaultConfig("/x")

	cases := map[string]string{
		"c":     "CONFIRM",
		"H":     "HELP",
		"n":     "NO",
		"p":     "PRINT",
		" y ":   "YES",
		"undo":  "UNDO",
		"Yes":   "YES",
		"hello": "HELLO",
	}
	for in, want := range cases {
		assert.Equal(t, want, cfg.Command(in), "input %q", in)
	}
}

func TestReminderInterval(t *testing.T) {
	cfg := DefaultConfig("/x")
	assert.Zero(t, cfg.ReminderInterval())

	cfg.ReminderMinutes = 0
	assert.Zero(t, cfg.ReminderInterval())

	cfg.ReminderMinutes = 10
	assert.Equal(t, 10*time.Minute, cfg.ReminderInterval())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig("/x")
	cfg.OptionsKey = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig("/x")
	cfg.ReminderMinutes = -5
	assert.Error(t, cfg.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	yamlSrc := "data_path: /from/file.json\nreminder_minutes: 20\naliases:\n  u: undo\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlSrc), 0o644))

	t.Setenv("ACTLOG_REMIND", "15")
	t.Setenv("ACTLOG_LOG", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/from/file.json", cfg.DataPath)
	assert.Equal(t, filepath.Join(dir, "schema.json"), cfg.SchemaPath)
	assert.Equal(t, 15, cfg.ReminderMinutes, "env overrides file")
	assert.True(t, cfg.Log)
	assert.Equal(t, "UNDO", cfg.Command("u"))
	assert.Equal(t, "YES", cfg.Command("y"), "default aliases survive")
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "options", cfg.OptionsKey)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("reminder_minutes: [oops"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestApplyEnv_EmptyDBDisablesHistory(t *testing.T) {
	cfg := DefaultConfig("/x")
	t.Setenv("ACTLOG_DB", "")
	ApplyEnv(&cfg)
	assert.Empty(t, cfg.HistoryPath)
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig("/x")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"--data", "/tmp/d.json", "--remind", "0", "--log"}))
	assert.Equal(t, "/tmp/d.json", cfg.DataPath)
	assert.Equal(t, 0, cfg.ReminderMinutes)
	assert.True(t, cfg.Log)
	assert.Equal(t, "/x/schema.json", cfg.SchemaPath)
}
