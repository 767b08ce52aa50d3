package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{
		"-m", "mnist.hcl",
		"-weights", "mnist.ngw",
		"-phase", "test",
		"-stages", "deploy, lowmem",
		"-level", "2",
		"-log-level", "debug",
		"-trace",
	}, io.Discard)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "mnist.hcl", cfg.ModelPath)
	assert.Equal(t, "mnist.ngw", cfg.WeightsPath)
	assert.Equal(t, "test", cfg.Phase)
	assert.Equal(t, []string{"deploy", "lowmem"}, cfg.Stages)
	assert.Equal(t, 2, cfg.Level)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Trace)
}

func TestParsePositionalModelPath(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{"nets/"}, io.Discard)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "nets/", cfg.ModelPath)
}

func TestParseNoModelPrintsUsage(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
}

func TestParseInvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-m", "x.hcl", "-log-level", "verbose"}, io.Discard)
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseTOMLRunConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
model      = "mnist.hcl"
weights    = "mnist.ngw"
phase      = "test"
stages     = ["deploy"]
level      = 1
log_format = "json"
log_level  = "warn"
trace      = true
`), 0o644))

	cfg, exit, err := Parse([]string{"-config", path}, io.Discard)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "mnist.hcl", cfg.ModelPath)
	assert.Equal(t, "mnist.ngw", cfg.WeightsPath)
	assert.Equal(t, "test", cfg.Phase)
	assert.Equal(t, []string{"deploy"}, cfg.Stages)
	assert.Equal(t, 1, cfg.Level)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Trace)
}

func TestParseFlagsOverrideFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
model = "file.hcl"
phase = "train"
`), 0o644))

	cfg, _, err := Parse([]string{"-config", path, "-m", "cli.hcl", "-phase", "test"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "cli.hcl", cfg.ModelPath)
	assert.Equal(t, "test", cfg.Phase)
}
