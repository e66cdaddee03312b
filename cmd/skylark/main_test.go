package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/skylark"
	"github.com/aretw0/skylark/pkg/adapters/llm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "skylark version "+strings.TrimSpace(skylark.Version)+"\n", out.String())
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skylark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  max_steps: 3\nmodel:\n  model: from-file\n"), 0o644))

	cmd := &cobra.Command{Use: "probe"}
	addGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", path,
		"--env-file", filepath.Join(dir, "none.env"),
		"--provider", "ollama",
		"--max-steps", "4",
		"--log-format", "json",
	}))

	cfg, logger, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Equal(t, llm.ProviderOllama, cfg.Model.Provider)
	assert.Equal(t, "from-file", cfg.Model.Model)
	assert.Equal(t, 4, cfg.Limits.MaxSteps)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	cmd := &cobra.Command{Use: "probe"}
	addGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, _, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "ask", "mcp", "version"} {
		assert.True(t, names[want], want)
	}
}
