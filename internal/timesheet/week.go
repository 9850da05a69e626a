package timesheet

import (
	"time"

	"github.com/example/timeclock/internal/stamp"
	"github.com/example/timeclock/internal/timeutil"
)

// WeekSummary aggregates the work days of one calendar week.
type WeekSummary struct {
	// WeekStart is the local Monday 00:00 of the week.
	WeekStart time.Time
	Days      []WorkDay
	// Total sums the worked time of the week's consistent days.
	Total time.Duration
	// LowerBound is set when the week contains an inconsistent day, whose
	// true worked time is unknowable; Total is then known to be at least
	// the displayed figure.
	LowerBound bool
}

// SummarizeWeeks groups chronologically ordered work days by calendar week
// and computes each week's total.
func SummarizeWeeks(days []WorkDay, now time.Time) []WeekSummary {
	var weeks []WeekSummary
	for _, d := range days {
		ws := timeutil.StartOfWeek(d.Date)
		if len(weeks) == 0 || !weeks[len(weeks)-1].WeekStart.Equal(ws) {
			weeks = append(weeks, WeekSummary{WeekStart: ws})
		}
		week := &weeks[len(weeks)-1]
		week.Days = append(week.Days, d)
		if d.Consistent() {
			week.Total += d.WorkTime(now)
		} else {
			week.LowerBound = true
		}
	}
	return weeks
}

// WindowWeeks trims a chronologically sorted stamp sequence to the stamps
// belonging to the most recent n calendar weeks, counted back from the week
// containing now.
func WindowWeeks(stamps []stamp.Stamp, n int, now time.Time) []stamp.Stamp {
	current := timeutil.StartOfWeek(now.Local())
	crossed := 0
	for i := len(stamps) - 1; i >= 0; i-- {
		week := timeutil.StartOfWeek(stamps[i].Time.Local())
		if !week.Equal(current) {
			crossed++
			if crossed >= n {
				return stamps[i+1:]
			}
			current = week
		}
	}
	return stamps
}
