package timesheet

import (
	"time"
)

// State is the last-known open state of a work day.
type State int

const (
	Absent State = iota
	Working
	Pausing
)

// WorkDay is one open-to-close work period derived from a run of stamps. It
// is never persisted; reports recompute it from the stamp store every time.
type WorkDay struct {
	// Date is the local calendar day the run's first stamp falls on.
	Date      time.Time
	Begin     *time.Time
	End       *time.Time
	PauseTime time.Duration
	// Tags collects the details text of every stamp in the run, in order.
	Tags  []string
	State State
	// InvalidTransitions is set when any stamp in the run violated the
	// transition adjacency or time ordering rules.
	InvalidTransitions bool
}

// Consistent reports whether the day's figures can be trusted.
func (d *WorkDay) Consistent() bool {
	return d.Begin != nil && !d.InvalidTransitions
}

// Complete reports whether the day was properly clocked out.
func (d *WorkDay) Complete() bool {
	return d.Consistent() && d.End != nil && d.State == Absent
}

// WorkTime returns the net worked duration. A still-open day counts up to
// now; the figure is only meaningful when the day is Consistent.
func (d *WorkDay) WorkTime(now time.Time) time.Duration {
	if d.Begin == nil {
		return 0
	}
	end := now
	if d.End != nil {
		end = *d.End
	}
	return end.Sub(*d.Begin) - d.PauseTime
}
