package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineshell/internal/testutils"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"trace":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"bogus":   log.WarnLevel,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLogLevel(input), input)
	}
}

func TestConfigure_EnvFallback(t *testing.T) {
	t.Setenv("LINESHELL_LOG_LEVEL", "debug")
	require.NoError(t, Configure("", "", true))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	require.NoError(t, Configure("error", "", true))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel(), "flag wins over environment")
}

func TestRedirect(t *testing.T) {
	require.NoError(t, Configure("info", "", true))

	buf := testutils.NewCaptureBuffer()
	restore := Redirect(buf, termenv.Ascii)
	Info("hello", "key", "value")
	restore()
	Info("after restore")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "key=value")
	assert.NotContains(t, buf.String(), "after restore")
}

func TestConfigure_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineshell.log")
	require.NoError(t, Configure("debug", path, false))
	t.Cleanup(func() {
		_ = Close()
		_ = Configure("warn", "", true)
	})

	// A file sink is never redirected to the terminal.
	buf := testutils.NewCaptureBuffer()
	restore := Redirect(buf, termenv.Ascii)
	CommandExecution("echo", []string{"a"}, "id-1")
	restore()

	require.NoError(t, Close())
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Executing command")
	assert.Contains(t, string(data), "invocation=id-1")
}
