// Package main implements the daybook CLI and terminal UI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/app"
	"github.com/riordanpawley/daybook/internal/cli"
	"github.com/riordanpawley/daybook/internal/config"
	"github.com/riordanpawley/daybook/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	configPath string
	apiURL     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "daybook",
	Short:        "Daybook - a day-by-day task list for the terminal",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task view (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (.json/.jsonc or .toml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL, overrides config and environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level for the log file (debug, info, warn, error)")

	rootCmd.AddCommand(tuiCmd)
}

// loadConfig reads the config named by --config, or the usual locations,
// and applies the flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if u := strings.TrimSpace(apiURL); u != "" {
		cfg.API.BaseURL = u
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// scriptDeps builds the dependencies for the non-interactive commands.
// Those log warnings to stderr rather than the log file.
func scriptDeps() (*cli.Dependencies, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := "warn"
	if logLevel != "" {
		level = logLevel
	}
	return cli.NewDependencies(cfg, logging.NewWriter(os.Stderr, level)), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	deps := cli.NewDependencies(cfg, logger)
	sess, err := deps.Session()
	if err != nil {
		logger.Warn("ignoring stored session", "error", err)
	}
	logger.Info("starting daybook", "api", deps.Client.BaseURL(), "restored", sess.Valid())

	model := app.New(app.Options{
		Config:   cfg,
		Client:   deps.Client,
		Sessions: deps.Sessions,
		Session:  sess,
		Logger:   logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
