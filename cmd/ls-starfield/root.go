package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starfield/internal/backdrop"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/theme"
	"github.com/litescript/ls-starfield/internal/version"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		configPath string
		logLevel   string
		logFile    string
		theme      string
		themeFile  string
		policy     string
		seed       uint64
	}
	logger  *logging.Logger
	logSink io.Closer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ls-starfield",
	Short: "Animated star field with shooting stars",
	Long: `ls-starfield draws a drifting, twinkling star field with occasional
shooting stars.

Running ls-starfield without a subcommand starts the full-screen terminal
view. Use "window" for a desktop window or "snapshot" to print one frame.

The theme follows --theme, STARFIELD_THEME or the config file, and can be
switched live with the t key or by rewriting the file given to --theme-file.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(os.Getenv); err != nil {
			return fmt.Errorf("invalid environment: %w", err)
		}
		applyFlagOverrides(cmd)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink != nil {
			return logSink.Close()
		}
		return nil
	},
	// Default to the terminal view when no subcommand is provided
	RunE: runTUI,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/ls-starfield/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Append logs to this file (the terminal view discards logs otherwise)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.theme, "theme", "",
		"Initial theme (dark, light)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.themeFile, "theme-file", "",
		`Watch a file containing "dark" or "light" and follow it`)
	rootCmd.PersistentFlags().StringVar(&globalOpts.policy, "policy", "",
		"Shooting star policy (angle, offset)")
	rootCmd.PersistentFlags().Uint64Var(&globalOpts.seed, "seed", 0,
		"Random seed for a reproducible animation (0 = random)")
}

// setupLogger configures the global logger. Logs go to stderr unless
// --log-file is set.
func setupLogger() error {
	logger = logging.New(logging.ParseLevel(globalOpts.logLevel))
	if globalOpts.logFile == "" {
		return nil
	}
	f, err := os.OpenFile(globalOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	logSink = f
	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme.Mode = globalOpts.theme
	}
	if flags.Changed("theme-file") {
		cfg.Theme.File = globalOpts.themeFile
	}
	if flags.Changed("policy") {
		cfg.Meteors.Policy = globalOpts.policy
	}
}

// newBackdrop builds the backdrop and, when a theme file is configured, a
// running file source feeding its theme signal. Callers stop the source.
func newBackdrop() (*backdrop.Backdrop, *theme.FileSource, error) {
	mode, err := cfg.ThemeMode()
	if err != nil {
		return nil, nil, err
	}
	policy, err := cfg.MeteorPolicy()
	if err != nil {
		return nil, nil, err
	}

	signal := theme.NewSignal(mode)
	bcfg := backdrop.DefaultConfig()
	bcfg.Policy = policy
	bcfg.Seed = globalOpts.seed
	b := backdrop.New(bcfg, signal, logger)

	if cfg.Theme.File == "" {
		return b, nil, nil
	}
	src := theme.NewFileSource(cfg.Theme.File, signal, logger)
	if err := src.Start(); err != nil {
		logger.Warn("theme file %s not watched: %v", cfg.Theme.File, err)
		return b, nil, nil
	}
	return b, src, nil
}

func stopSource(src *theme.FileSource) {
	if src == nil {
		return
	}
	if err := src.Stop(); err != nil {
		logger.Warn("stop theme watcher: %v", err)
	}
}
