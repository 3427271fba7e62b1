// Package logger provides centralized diagnostic logging for lineshell.
// It configures structured logging with support for log files and log levels, and
// lets the running shell route diagnostics through its prompt-preserving renderer.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger instance used throughout lineshell.
var Logger *log.Logger

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stderr
	fileSink io.Closer
)

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
	Logger.SetStyles(levelStyles())
}

// Configure sets up the logger based on CLI flags and environment variables.
// CLI flags take precedence over environment variables. A non-empty logFile sends
// diagnostics to a size-rotated file instead of stderr.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("LINESHELL_LOG_LEVEL"))
	}
	if level == "" {
		level = "warn"
	}

	outputMu.Lock()
	defer outputMu.Unlock()

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		fileSink = rotating
		out = rotating
		Logger.SetReportTimestamp(true)
		Logger.SetTimeFormat("2006-01-02T15:04:05.000")
	} else {
		Logger.SetReportTimestamp(false)
		Logger.SetTimeFormat("")
	}

	output = out
	Logger.SetOutput(out)
	Logger.SetLevel(parseLogLevel(level))

	if testMode {
		// In test mode, ensure deterministic output
		Logger.SetReportTimestamp(false)
		Logger.SetTimeFormat("")
		Logger.SetColorProfile(termenv.Ascii)
	}

	return nil
}

// Redirect sends diagnostics to w until the returned function is called, which
// restores the previous destination. Log files configured through Configure are
// left untouched, since they cannot disturb the terminal.
func Redirect(w io.Writer, profile termenv.Profile) (restore func()) {
	outputMu.Lock()
	defer outputMu.Unlock()

	if fileSink != nil {
		return func() {}
	}

	previous := output
	output = w
	Logger.SetOutput(w)
	Logger.SetColorProfile(profile)

	return func() {
		outputMu.Lock()
		defer outputMu.Unlock()
		output = previous
		Logger.SetOutput(previous)
	}
}

// Close flushes and closes the log file, if any.
func Close() error {
	outputMu.Lock()
	defer outputMu.Unlock()

	if fileSink == nil {
		return nil
	}
	err := fileSink.Close()
	fileSink = nil
	output = os.Stderr
	Logger.SetOutput(os.Stderr)
	return err
}

// parseLogLevel converts string to log level
func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// CommandExecution logs command dispatch details for debugging.
func CommandExecution(command string, args []string, invocation string) {
	Debug("Executing command", "command", command, "args", args, "invocation", invocation)
}

// levelStyles returns the logger styles with padded level badges.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("33")). // Blue background
		Foreground(lipgloss.Color("15"))  // White text

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("196")). // Red background
		Foreground(lipgloss.Color("15"))   // White text

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("240")). // Gray background
		Foreground(lipgloss.Color("15"))   // White text

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("214")). // Orange background
		Foreground(lipgloss.Color("15"))   // White text

	styles.Levels[log.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("88")). // Dark red background
		Foreground(lipgloss.Color("15"))  // White text

	styles.Keys["command"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46")) // Green
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))  // Red
	styles.Keys["key"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))     // Blue
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	return styles
}
