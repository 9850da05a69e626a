package stamp

import (
	"fmt"
	"strings"
)

// Transition is the kind of a recorded stamp.
type Transition int

const (
	In Transition = iota
	Out
	Pause
	Resume
	Tag
)

var transitionNames = [...]string{"in", "out", "pause", "resume", "tag"}

func (t Transition) String() string {
	if t < 0 || int(t) >= len(transitionNames) {
		return fmt.Sprintf("transition(%d)", int(t))
	}
	return transitionNames[t]
}

// Transitions lists every transition in declaration order.
func Transitions() []Transition {
	return []Transition{In, Out, Pause, Resume, Tag}
}

// ParseTransition converts a lowercase transition name as used in stamp files
// and on the command line.
func ParseTransition(s string) (Transition, error) {
	for i, name := range transitionNames {
		if strings.EqualFold(s, name) {
			return Transition(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transition %q, allowed values are %s",
		s, strings.Join(transitionNames[:], "|"))
}

// MayFollow reports whether t may legally follow prev. prevPresent is false
// when there is no preceding stamp; only an "in" transition is legal then.
func (t Transition) MayFollow(prev Transition, prevPresent bool) bool {
	switch t {
	case In:
		return !prevPresent || prev == Out
	case Out, Pause:
		return prevPresent && (prev == In || prev == Resume || prev == Tag)
	case Resume:
		return prevPresent && prev == Pause
	case Tag:
		return prevPresent && prev != Out
	}
	return false
}

// IsOpening reports whether the transition leaves the work day open.
func (t Transition) IsOpening() bool {
	return t == In || t == Resume || t == Tag
}
