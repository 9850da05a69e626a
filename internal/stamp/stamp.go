package stamp

import (
	"strings"
	"time"
)

// Stamp is one immutable timestamped transition event. Time has second
// precision and is kept in UTC; it doubles as the stamp's identity in the
// store.
type Stamp struct {
	Transition Transition
	Time       time.Time
	Details    string
}

// New builds a stamp for the given instant, truncated to whole seconds.
func New(transition Transition, at time.Time, details string) Stamp {
	return Stamp{
		Transition: transition,
		Time:       at.Truncate(time.Second).UTC(),
		Details:    strings.TrimSpace(details),
	}
}

// Now builds a stamp for the current instant.
func Now(transition Transition, details string) Stamp {
	return New(transition, time.Now(), details)
}

// MayFollow reports whether s may legally be appended after prev. A nil prev
// stands for an empty store. Besides the transition adjacency rule, the
// stamp's time must be strictly after prev's.
func (s Stamp) MayFollow(prev *Stamp) bool {
	if prev == nil {
		return s.Transition.MayFollow(0, false)
	}
	return s.Transition.MayFollow(prev.Transition, true) && s.Time.After(prev.Time)
}
