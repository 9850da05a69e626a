package timesheet

import (
	"time"

	"github.com/example/timeclock/internal/stamp"
	"github.com/example/timeclock/internal/timeutil"
)

// Collect folds a chronologically sorted stamp sequence into work days, in a
// single order-preserving pass. An "in" stamp always starts a fresh day; if
// the previous day never saw an "out", it is emitted with InvalidTransitions
// set rather than swallowed. Other rule violations likewise taint the current
// day but do not stop aggregation.
//
// A trailing day without an "out" is emitted with End nil; an open pause on
// it accrues up to now.
func Collect(stamps []stamp.Stamp, now time.Time) []WorkDay {
	var days []WorkDay
	var day *WorkDay
	var paused *time.Time
	var last *stamp.Stamp

	for i := range stamps {
		st := stamps[i]

		if day == nil || st.Transition == stamp.In {
			if day != nil {
				day.InvalidTransitions = true
				days = append(days, *day)
			}
			day = &WorkDay{Date: timeutil.StartOfDay(st.Time.Local())}
		}

		if st.Transition != stamp.In && !st.MayFollow(last) {
			day.InvalidTransitions = true
		}

		switch st.Transition {
		case stamp.In:
			t := st.Time
			day.Begin = &t
			day.State = Working
		case stamp.Out:
			t := st.Time
			day.End = &t
			day.State = Absent
		case stamp.Pause:
			t := st.Time
			paused = &t
			day.State = Pausing
		case stamp.Resume:
			if paused != nil {
				day.PauseTime += st.Time.Sub(*paused)
				paused = nil
			}
			day.State = Working
		}

		if st.Details != "" {
			day.Tags = append(day.Tags, st.Details)
		}

		if st.Transition == stamp.Out {
			days = append(days, *day)
			day = nil
		}
		// Only a pause eventually answered by a resume counts; any other
		// transition discards a stray pause marker.
		if st.Transition != stamp.Pause {
			paused = nil
		}
		last = &stamps[i]
	}

	if day != nil {
		if paused != nil {
			day.PauseTime += now.Sub(*paused)
		}
		days = append(days, *day)
	}
	return days
}
