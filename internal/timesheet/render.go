package timesheet

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/example/timeclock/internal/schedule"
	"github.com/example/timeclock/internal/timeutil"
)

// Style selects the table border character set.
type Style int

const (
	StyleASCII Style = iota
	StyleBox
)

// ParseStyle converts the config/flag value "ascii" or "box".
func ParseStyle(s string) (Style, error) {
	switch s {
	case "ascii":
		return StyleASCII, nil
	case "box":
		return StyleBox, nil
	}
	return 0, fmt.Errorf("unknown table style %q, allowed values are ascii|box", s)
}

// placeholder marks a figure that cannot be derived from the recorded
// stamps. An inconsistent day's worked time is unknown, not zero.
const placeholder = "-?-"

func (s Style) workingMarker() string {
	if s == StyleBox {
		return "▶"
	}
	return ">>"
}

func (s Style) pausedMarker() string {
	if s == StyleBox {
		return "⏸"
	}
	return "::"
}

// columns renders one table row for the day.
func columns(d WorkDay, now time.Time, style Style) []string {
	cols := make([]string, 0, 5)

	if d.Begin != nil {
		begin := d.Begin.Local()
		cols = append(cols, begin.Format("Mon Jan 02"), begin.Format("15:04"))
	} else {
		cols = append(cols, placeholder, placeholder)
	}

	switch {
	case d.End != nil:
		cols = append(cols, d.End.Local().Format("15:04"))
	case d.State == Pausing:
		cols = append(cols, style.pausedMarker())
	case d.State == Working:
		cols = append(cols, style.workingMarker())
	default:
		cols = append(cols, placeholder)
	}

	cols = append(cols, timeutil.FormatHours(d.PauseTime))

	if d.Consistent() {
		cols = append(cols, timeutil.FormatHours(d.WorkTime(now)))
	} else {
		cols = append(cols, placeholder)
	}
	return cols
}

// TotalLabel formats a week total, with a trailing "+" when the figure is
// only a lower bound.
func TotalLabel(w WeekSummary) string {
	label := timeutil.FormatHours(w.Total)
	if w.LowerBound {
		label += "+"
	}
	return label
}

// Render writes one table per calendar week to w.
func Render(w io.Writer, days []WorkDay, style Style, now time.Time) {
	for _, week := range SummarizeWeeks(days, now) {
		renderWeek(w, week, style, now)
	}
}

func renderWeek(w io.Writer, week WeekSummary, style Style, now time.Time) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"date", "begin", "end", "pause", "worked"})
	table.SetFooter([]string{timeutil.ISOWeekLabel(week.WeekStart), "", "", "week total", TotalLabel(week)})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	if style == StyleBox {
		table.SetCenterSeparator("┼")
		table.SetColumnSeparator("│")
		table.SetRowSeparator("─")
	}
	for _, d := range week.Days {
		table.Append(columns(d, now, style))
	}
	table.Render()
}

// RenderSummary prints the current-week summary line comparing worked hours
// against the schedule's requirement, followed by a warning when the sheet
// contains inconsistent days.
func RenderSummary(w io.Writer, days []WorkDay, sched *schedule.Schedule, now time.Time) {
	var worked time.Duration
	lowerBound := false
	currentWeek := timeutil.StartOfWeek(now.Local())
	for _, week := range SummarizeWeeks(days, now) {
		if week.WeekStart.Equal(currentWeek) {
			worked = week.Total
			lowerBound = week.LowerBound
		}
	}

	workedLabel := timeutil.FormatHours(worked)
	if lowerBound {
		workedLabel += "+"
	}

	required := sched.WorkingHoursInWeek(now)
	if required <= 0 {
		fmt.Fprintf(w, "\nWorked %s this week.\n", workedLabel)
	} else {
		percent := 100 * worked.Seconds() / required.Seconds()
		fmt.Fprintf(w, "\nWorked %s of %s required (%.0f%%). ",
			workedLabel, timeutil.FormatHours(required), percent)
		switch {
		case worked < required:
			fmt.Fprintf(w, "%s to go this week.\n", timeutil.FormatHours(required-worked))
		case worked > required:
			color.New(color.FgGreen).Fprintf(w, "Made %s overtime this week.\n", timeutil.FormatHours(worked-required))
		default:
			color.New(color.FgGreen).Fprintln(w, "Just on time!")
		}
	}

	for _, d := range days {
		if !d.Consistent() {
			color.New(color.FgYellow).Fprintln(w, "The timesheet is inconsistent. Maybe the file system is out of sync?")
			break
		}
	}
}
