package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineshell/internal/version"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, version.String()+"\n", execute(t, "version"))
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config", "--prompt", "$ ", "--level", "WARNING", "--test-mode")

	assert.Contains(t, out, "level: warn\n")
	assert.Regexp(t, `prompt: ['"]\$ ['"]`, out)
	assert.Contains(t, out, "color: auto\n")
	assert.Equal(t, "$ ", cfg.Prompt)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["shell"])
	assert.True(t, names["version"])
	assert.True(t, names["config"])

	for _, flag := range []string{"level", "log-level", "log-file", "prompt", "color", "config", "env-file", "test-mode", "heartbeat"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}
