package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/example/timeclock/internal/config"
	"github.com/example/timeclock/internal/schedule"
	"github.com/example/timeclock/internal/stamp"
	"github.com/example/timeclock/internal/timesheet"
)

var (
	sheetWeeks int
	sheetSince string
	sheetStyle string
)

var timesheetCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Render the work-day and week table",
	Args:  cobra.NoArgs,
	RunE:  runTimesheet,
}

func init() {
	timesheetCmd.Flags().IntVarP(&sheetWeeks, "weeks", "n", 1, "Number of calendar weeks to show")
	timesheetCmd.Flags().StringVar(&sheetSince, "since", "", "Show stamps since the given date instead of a week window")
	timesheetCmd.Flags().StringVar(&sheetStyle, "style", "", "Table style: ascii or box (overrides config)")
}

func runTimesheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	now := time.Now()

	styleName := cfg.Timesheet.Style
	if sheetStyle != "" {
		styleName = sheetStyle
	}
	style, err := timesheet.ParseStyle(styleName)
	if err != nil {
		return err
	}

	stamps, err := stamp.List(config.ExpandHome(cfg.Stamps.Dir))
	if err != nil {
		return err
	}

	if sheetSince != "" {
		since, err := dateparse.ParseLocal(sheetSince)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", sheetSince, err)
		}
		for len(stamps) > 0 && stamps[0].Time.Before(since) {
			stamps = stamps[1:]
		}
	} else {
		stamps = timesheet.WindowWeeks(stamps, sheetWeeks, now)
	}

	sched, err := schedule.Load(config.ExpandHome(cfg.Schedule.File))
	if err != nil {
		return err
	}

	days := timesheet.Collect(stamps, now)
	timesheet.Render(os.Stdout, days, style, now)
	timesheet.RenderSummary(os.Stdout, days, sched, now)
	return nil
}
