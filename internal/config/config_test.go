package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/blockkit/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, ".blockkit.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, path, err := config.Load(config.LoadOptions{SearchDirs: []string{t.TempDir()}})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, "lang: ja\nformat: json\nstrict: true\nmax_bytes: 2048\n")
	t.Setenv("BLOCKKIT_FORMAT", "text")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	cfg, path, err := config.Load(config.LoadOptions{SearchDirs: []string{dir}, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, "ja", cfg.Lang)
	assert.Equal(t, config.FormatText, cfg.Format, "environment overrides the file")
	assert.True(t, cfg.Strict)
	assert.EqualValues(t, 2048, cfg.MaxBytes)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoad_ExplicitPath(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "color: never\n")
	cfg, path, err := config.Load(config.LoadOptions{ConfigFilePath: p})
	require.NoError(t, err)
	assert.Equal(t, p, path)
	assert.Equal(t, config.ColorNever, cfg.Color)

	_, _, err = config.Load(config.LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"lang":      "lang: fr\n",
		"format":    "format: xml\n",
		"color":     "color: sometimes\n",
		"log_level": "log_level: loud\n",
		"max_bytes": "max_bytes: -1\n",
	}
	for key, body := range cases {
		t.Run(key, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, body)
			_, _, err := config.Load(config.LoadOptions{SearchDirs: []string{dir}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), key+":")
		})
	}
}
