// Package main provides the lineshell CLI application entry point.
// lineshell is an interactive line shell whose prompt survives concurrent log output.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lineshell/internal/commands"
	"lineshell/internal/commands/builtin"
	"lineshell/internal/config"
	"lineshell/internal/logger"
	"lineshell/internal/shell"
	"lineshell/internal/version"
)

var (
	testMode  bool
	heartbeat time.Duration
	cfg       *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lineshell",
	Short: "lineshell - interactive line shell",
	Long: `lineshell is an interactive command shell that reads raw keystrokes and keeps
the prompt and the line being typed intact while log messages are printed.`,
	RunE:          runShell, // Default behavior is to run the interactive shell
	SilenceUsage:  true,
	SilenceErrors: true,
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	RunE:  runShell,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyLevel, "info", "Minimum level of messages printed above the prompt (trace|debug|info|warn|error)")
	flags.String(config.KeyLogLevel, "", "Set diagnostic log level (debug|info|warn|error) [default: warn]")
	flags.String(config.KeyLogFile, "", "Write diagnostic logs to a rotated file instead of the terminal")
	flags.String(config.KeyPrompt, shell.DefaultPrompt, "Prompt shown in front of the input line")
	flags.String(config.KeyColor, config.ColorAuto, "Colorize warnings and errors (auto|always|never)")
	flags.String(config.KeyConfig, "", "Read configuration from a YAML file")
	flags.String(config.KeyEnvFile, ".env", "Load environment variables from this file when it exists")
	flags.BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	flags.DurationVar(&heartbeat, "heartbeat", 0, "Print a heartbeat message at this interval (0 disables)")

	config.SetDefaults(viper.GetViper())
	for _, key := range []string{
		config.KeyLevel, config.KeyLogLevel, config.KeyLogFile, config.KeyPrompt,
		config.KeyColor, config.KeyConfig, config.KeyEnvFile,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	// Add subcommands
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	// Load configuration and configure the logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	cfg, err = config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) error {
	defer func() { _ = logger.Close() }()
	logger.Info("Starting lineshell", "version", version.GetVersion())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	sh, err := shell.Initialize(ctx, shell.Options{
		Level:  cfg.Level,
		Prompt: cfg.Prompt,
		Color:  cfg.ColorEnabled(os.Stdout),
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer func() { _ = sh.Close() }()

	registerCommands(sh)

	if err := sh.Infof("%s - type 'help' for commands, Ctrl+C to quit", version.String()); err != nil {
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			_ = sh.Close()
		case <-sh.Done():
		}
	}()
	if heartbeat > 0 {
		go runHeartbeat(ctx, sh, heartbeat)
	}

	if err := sh.Wait(); err != nil {
		return fmt.Errorf("shell stopped: %w", err)
	}
	return nil
}

func registerCommands(sh *shell.Shell) {
	sh.RegisterCommand(commands.From(builtin.NewHelpCommand(sh.Registry(), sh)))
	sh.RegisterCommand(commands.From(builtin.NewVersionCommand(sh)))
	sh.RegisterCommand(commands.From(builtin.NewEchoCommand(sh)))
	sh.RegisterCommand(commands.From(builtin.NewSleepCommand(sh)))
	sh.RegisterCommand(commands.NewFunc("exit", "Leave the shell", "Usage: exit", func(_ context.Context, args []string) bool {
		if len(args) != 0 {
			return false
		}
		_ = sh.Close()
		return true
	}))
}

// runHeartbeat logs from a second goroutine until the shell stops.
func runHeartbeat(ctx context.Context, sh *shell.Shell, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-sh.Done():
			return
		case <-ticker.C:
			if err := sh.Infof("heartbeat %d", n); err != nil {
				return
			}
		}
	}
}
