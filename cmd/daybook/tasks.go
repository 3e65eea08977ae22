package main

import (
	"fmt"
	"time"

	"github.com/riordanpawley/daybook/internal/cli"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/spf13/cobra"
)

var (
	listDate   string
	listStatus string
	listQuery  string
	exportDate string
	exportDir  string
	configSave string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the tasks of a day",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the days that still have unfinished tasks",
	Args:  cobra.NoArgs,
	RunE:  runPending,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the tasks of a day to Tasks_<date>.csv",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration, or save it with --save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cli.ConfigCommand(cmd.OutOrStdout(), cfg, configSave)
	},
}

func init() {
	rootCmd.AddCommand(listCmd, pendingCmd, exportCmd, configCmd)

	listCmd.Flags().StringVar(&listDate, "date", "", "day to list as YYYY-MM-DD (default today)")
	listCmd.Flags().StringVar(&listStatus, "status", "all", "all, completed or pending")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only tasks whose title or description contains this")

	exportCmd.Flags().StringVar(&exportDate, "date", "", "day to export as YYYY-MM-DD (default today)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default from config)")

	configCmd.Flags().StringVar(&configSave, "save", "", "write the effective config to this path (bare flag: .daybook.json)")
	configCmd.Flags().Lookup("save").NoOptDefVal = ".daybook.json"
}

// parseDay returns today for an empty value
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return domain.Day(time.Now()), nil
	}
	day, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}

func parseStatus(value string) (domain.StatusFilter, error) {
	switch s := domain.StatusFilter(value); s {
	case domain.StatusAll, domain.StatusCompleted, domain.StatusPending:
		return s, nil
	case "":
		return domain.StatusAll, nil
	}
	return "", fmt.Errorf("invalid status %q, want all, completed or pending", value)
}

func runList(cmd *cobra.Command, args []string) error {
	day, err := parseDay(listDate)
	if err != nil {
		return err
	}
	status, err := parseStatus(listStatus)
	if err != nil {
		return err
	}
	deps, err := scriptDeps()
	if err != nil {
		return err
	}

	filter := domain.NewFilter()
	filter.Status = status
	filter.Query = listQuery
	return cli.ListCommand(cmd.Context(), deps, cmd.OutOrStdout(), day, filter)
}

func runPending(cmd *cobra.Command, args []string) error {
	deps, err := scriptDeps()
	if err != nil {
		return err
	}
	return cli.PendingCommand(cmd.Context(), deps, cmd.OutOrStdout())
}

func runExport(cmd *cobra.Command, args []string) error {
	day, err := parseDay(exportDate)
	if err != nil {
		return err
	}
	deps, err := scriptDeps()
	if err != nil {
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = deps.Config.Export.Dir
	}
	return cli.ExportCommand(cmd.Context(), deps, cmd.OutOrStdout(), day, dir)
}
