package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/timeclock/internal/config"
	"github.com/example/timeclock/internal/schedule"
)

var (
	importFile     string
	importCategory string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the working-day and holiday schedule",
}

var scheduleImportCmd = &cobra.Command{
	Use:   "import-holidays",
	Short: "Import calendar events into the schedule",
	Long: `import-holidays reads an iCalendar document and adds one schedule event
per covered day. Only FREQ=YEARLY recurrence is recognised; other
frequencies are imported for their literal date range.`,
	Args: cobra.NoArgs,
	RunE: runScheduleImport,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing schedule events",
	Args:  cobra.NoArgs,
	RunE:  runScheduleList,
}

func init() {
	scheduleImportCmd.Flags().StringVarP(&importFile, "file", "f", "-", "Calendar file name (- for stdin)")
	scheduleImportCmd.Flags().StringVar(&importCategory, "category", "holiday", "Category for imported events")
	scheduleCmd.AddCommand(scheduleImportCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
}

func runScheduleImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := config.ExpandHome(cfg.Schedule.File)

	category, err := schedule.ParseCategory(importCategory)
	if err != nil {
		return err
	}

	sched, err := schedule.Load(path)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if importFile != "-" {
		file, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("opening calendar file: %w", err)
		}
		defer file.Close()
		in = file
	}

	result, err := sched.ImportICal(in, category, os.Stderr)
	if err != nil {
		return err
	}
	if err := sched.Save(path); err != nil {
		return err
	}

	fmt.Printf("Imported %d day(s)", result.Imported)
	if result.Skipped > 0 {
		fmt.Printf(", skipped %d incomplete event(s)", result.Skipped)
	}
	fmt.Println()
	return nil
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sched, err := schedule.Load(config.ExpandHome(cfg.Schedule.File))
	if err != nil {
		return err
	}
	if len(sched.Events) == 0 {
		fmt.Println("No schedule events.")
		return nil
	}

	for _, event := range sched.Events {
		recurring := " "
		if event.Recurring {
			recurring = "*"
		}
		fmt.Printf("%s %s  %-8s  %s\n",
			event.Date.Format("2006-01-02"), recurring, event.Category, event.Summary)
	}
	return nil
}
