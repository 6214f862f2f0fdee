package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(LoadInput{WorkDir: dir, Env: map[string]string{}})
	require.NoError(t, err)

	assert.True(t, cfg.UseAtomicSave())
	assert.True(t, cfg.UseHistory())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.NotesFile)
	assert.Equal(t, Sources{}, cfg.Sources)
}

func TestLoad_ProjectFileWithComments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{
		// where notes live
		"notes_file": "week.txt",
		"atomic_save": false, // trailing comma is fine
	}`)

	cfg, err := Load(LoadInput{WorkDir: dir, Env: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "week.txt"), cfg.NotesFile)
	assert.False(t, cfg.UseAtomicSave())
	assert.True(t, cfg.UseHistory(), "unset keys keep defaults")
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Sources.Project)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeFile(t, filepath.Join(xdg, "weeknotes", "config.json"), `{"notes_file": "global.txt", "log_level": "debug", "history": false}`)
	writeFile(t, filepath.Join(dir, FileName), `{"notes_file": "project.txt"}`)

	cfg, err := Load(LoadInput{
		WorkDir:   dir,
		Env:       map[string]string{"XDG_CONFIG_HOME": xdg},
		Overrides: Config{LogLevel: "warn"},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "project.txt"), cfg.NotesFile, "project beats global")
	assert.Equal(t, zerolog.WarnLevel, cfg.Level(), "flags beat files")
	assert.False(t, cfg.UseHistory(), "global value survives when nothing overrides it")
	assert.Equal(t, filepath.Join(xdg, "weeknotes", "config.json"), cfg.Sources.Global)
}

func TestLoad_HomeFallbackForGlobal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "weeknotes", "config.json"), `{"log_file": "/tmp/weeknotes.log"}`)

	cfg, err := Load(LoadInput{WorkDir: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/weeknotes.log", cfg.LogFile)
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(LoadInput{WorkDir: dir, ConfigPath: "nope.json", Env: map[string]string{}})
	require.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_ExplicitConfigReplacesProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"notes_file": "project.txt"}`)
	writeFile(t, filepath.Join(dir, "alt.json"), `{"log_level": "error"}`)

	cfg, err := Load(LoadInput{WorkDir: dir, ConfigPath: "alt.json", Env: map[string]string{}})
	require.NoError(t, err)

	assert.Empty(t, cfg.NotesFile)
	assert.Equal(t, zerolog.ErrorLevel, cfg.Level())
	assert.Equal(t, filepath.Join(dir, "alt.json"), cfg.Sources.Project)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"notes_file": 3}`)

	_, err := Load(LoadInput{WorkDir: dir, Env: map[string]string{}})
	require.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(LoadInput{WorkDir: dir, Env: map[string]string{}, Overrides: Config{LogLevel: "loud"}})
	require.ErrorIs(t, err, ErrLogLevelInvalid)
}

func TestMerge_NilBoolsDoNotOverride(t *testing.T) {
	t.Parallel()

	got := merge(Default(), Config{})

	assert.True(t, got.UseAtomicSave())
	assert.True(t, got.UseHistory())
	assert.Equal(t, "info", got.LogLevel)
}
