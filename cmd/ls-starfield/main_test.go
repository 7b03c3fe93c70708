package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starfield/internal/backdrop"
	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/theme"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvTheme, config.EnvThemeFile, config.EnvPolicy, config.EnvFPS} {
		t.Setenv(k, "")
	}
	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.toml")
}

func TestSnapshotCommand(t *testing.T) {
	out, err := executeCommand(t, "snapshot",
		"--config", missingConfig(t),
		"--width", "40", "--height", "10",
		"--frames", "3", "--plain", "--seed", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 10)
	for _, line := range lines {
		assert.Equal(t, 40, len([]rune(line)))
	}
	assert.NotEqual(t, strings.Repeat(" ", 40*10), strings.Join(lines, ""), "some stars should be drawn")
}

func TestSnapshotCommand_RejectsZeroFrames(t *testing.T) {
	_, err := executeCommand(t, "snapshot",
		"--config", missingConfig(t),
		"--width", "40", "--height", "10", "--frames", "0")
	assert.Error(t, err)
}

func TestConfigCommand_AppliesFlags(t *testing.T) {
	out, err := executeCommand(t, "config",
		"--config", missingConfig(t),
		"--theme", "light", "--policy", "offset")
	require.NoError(t, err)
	assert.Contains(t, out, "light")
	assert.Contains(t, out, "offset")
}

func TestRootCommand_InvalidTheme(t *testing.T) {
	_, err := executeCommand(t, "config",
		"--config", missingConfig(t),
		"--theme", "sepia")
	require.Error(t, err)
	assert.ErrorIs(t, err, theme.ErrUnknownMode)
}

func TestRootCommand_NeedsTerminal(t *testing.T) {
	_, err := executeCommand(t, "--config", missingConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

func TestRenderSnapshot(t *testing.T) {
	logger = logging.Discard()
	c := config.DefaultConfig()

	bcfg := backdrop.DefaultConfig()
	bcfg.Seed = 9
	b := backdrop.New(bcfg, theme.NewSignal(theme.Dark), nil)
	grid := canvas.NewGrid(100, 30, 0, 0)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, renderSnapshot(b, grid, c, start, 2, true))
	assert.False(t, b.Mounted(), "snapshot unmounts when done")

	empty := canvas.NewGrid(0, 0, 0, 0)
	assert.Error(t, renderSnapshot(b, empty, c, start, 1, false))
}
