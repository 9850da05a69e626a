package schedule

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ImportResult holds counters for a calendar import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportICal parses an iCalendar document and appends one event entry per
// covered calendar day, tagged with the given category. DTEND is exclusive
// per the calendar convention. Only FREQ=YEARLY recurrence is honoured;
// other frequencies are warned about and the event is imported for its
// literal date range. Events missing DTSTART or DTEND are skipped with a
// diagnostic; the rest of the import continues.
func (s *Schedule) ImportICal(r io.Reader, category Category, warn io.Writer) (ImportResult, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parsing calendar: %w", err)
	}

	var result ImportResult
	for _, event := range cal.Events() {
		start, okStart := icalDay(event, ics.ComponentPropertyDtStart)
		end, okEnd := icalDay(event, ics.ComponentPropertyDtEnd)
		if !okStart || !okEnd {
			fmt.Fprintln(warn, "Skipping incomplete calendar event")
			result.Skipped++
			continue
		}

		summary := ""
		if p := event.GetProperty(ics.ComponentPropertySummary); p != nil {
			summary = p.Value
		}

		recurring := false
		if p := event.GetProperty(ics.ComponentPropertyRrule); p != nil {
			freq := rruleFreq(p.Value)
			if freq == "YEARLY" {
				recurring = true
			} else {
				fmt.Fprintf(warn, "Warning: unsupported recurrence %s\n", freq)
			}
		}

		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			s.Events = append(s.Events, Event{
				Date:      d,
				Category:  category,
				Recurring: recurring,
				Summary:   summary,
			})
			result.Imported++
		}
	}
	return result, nil
}

// icalDay extracts a date property floored to local midnight. Both all-day
// (VALUE=DATE) and timed values are accepted.
func icalDay(event *ics.VEvent, prop ics.ComponentProperty) (time.Time, bool) {
	p := event.GetProperty(prop)
	if p == nil || p.Value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, p.Value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}

func rruleFreq(rule string) string {
	for _, part := range strings.Split(rule, ";") {
		if key, value, ok := strings.Cut(part, "="); ok && strings.EqualFold(key, "FREQ") {
			return strings.ToUpper(value)
		}
	}
	return ""
}
