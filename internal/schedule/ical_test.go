package schedule_test

import (
	"strings"
	"testing"
	"time"

	"github.com/example/timeclock/internal/schedule"
)

func calendar(events ...string) string {
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//timeclock//EN"}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func TestImportICalExclusiveEnd(t *testing.T) {
	// A two-day all-day event: DTEND is exclusive, so exactly two entries.
	ical := calendar(
		"BEGIN:VEVENT",
		"UID:1",
		"DTSTART;VALUE=DATE:20240101",
		"DTEND;VALUE=DATE:20240103",
		"SUMMARY:New Year",
		"END:VEVENT",
	)

	sched := schedule.Default()
	var warnings strings.Builder
	result, err := sched.ImportICal(strings.NewReader(ical), schedule.CategoryHoliday, &warnings)
	if err != nil {
		t.Fatalf("ImportICal: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("imported = %d, want 2", result.Imported)
	}
	if len(sched.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(sched.Events))
	}

	for i, want := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local),
	} {
		event := sched.Events[i]
		if !event.Date.Equal(want) {
			t.Errorf("event %d date = %v, want %v", i, event.Date, want)
		}
		if event.Recurring {
			t.Errorf("event %d marked recurring without an RRULE", i)
		}
		if event.Category != schedule.CategoryHoliday {
			t.Errorf("event %d category = %v, want holiday", i, event.Category)
		}
		if event.Summary != "New Year" {
			t.Errorf("event %d summary = %q, want %q", i, event.Summary, "New Year")
		}
	}
}

func TestImportICalYearlyRecurrence(t *testing.T) {
	ical := calendar(
		"BEGIN:VEVENT",
		"UID:1",
		"DTSTART;VALUE=DATE:20241225",
		"DTEND;VALUE=DATE:20241226",
		"SUMMARY:Christmas",
		"RRULE:FREQ=YEARLY",
		"END:VEVENT",
	)

	sched := schedule.Default()
	var warnings strings.Builder
	if _, err := sched.ImportICal(strings.NewReader(ical), schedule.CategoryHoliday, &warnings); err != nil {
		t.Fatalf("ImportICal: %v", err)
	}
	if len(sched.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(sched.Events))
	}
	if !sched.Events[0].Recurring {
		t.Error("FREQ=YEARLY event should be recurring")
	}
	if warnings.Len() != 0 {
		t.Errorf("unexpected warnings: %q", warnings.String())
	}
}

func TestImportICalUnsupportedRecurrence(t *testing.T) {
	// Unsupported frequencies warn and fall back to the literal date range.
	ical := calendar(
		"BEGIN:VEVENT",
		"UID:1",
		"DTSTART;VALUE=DATE:20240506",
		"DTEND;VALUE=DATE:20240507",
		"SUMMARY:Team day",
		"RRULE:FREQ=MONTHLY",
		"END:VEVENT",
	)

	sched := schedule.Default()
	var warnings strings.Builder
	if _, err := sched.ImportICal(strings.NewReader(ical), schedule.CategoryVacation, &warnings); err != nil {
		t.Fatalf("ImportICal: %v", err)
	}
	if len(sched.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(sched.Events))
	}
	if sched.Events[0].Recurring {
		t.Error("MONTHLY event must not be recurring")
	}
	if !strings.Contains(warnings.String(), "MONTHLY") {
		t.Errorf("expected a warning naming the frequency, got %q", warnings.String())
	}
}

func TestImportICalSkipsIncompleteEvents(t *testing.T) {
	ical := calendar(
		"BEGIN:VEVENT",
		"UID:1",
		"SUMMARY:No dates at all",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2",
		"DTSTART;VALUE=DATE:20240101",
		"DTEND;VALUE=DATE:20240102",
		"SUMMARY:Fine",
		"END:VEVENT",
	)

	sched := schedule.Default()
	var warnings strings.Builder
	result, err := sched.ImportICal(strings.NewReader(ical), schedule.CategoryHoliday, &warnings)
	if err != nil {
		t.Fatalf("ImportICal: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Imported != 1 {
		t.Errorf("imported = %d, want 1", result.Imported)
	}
	if warnings.Len() == 0 {
		t.Error("expected a diagnostic for the incomplete event")
	}
}

func TestImportICalTimedEventFloorsToDay(t *testing.T) {
	ical := calendar(
		"BEGIN:VEVENT",
		"UID:1",
		"DTSTART:20240301T090000Z",
		"DTEND:20240302T100000Z",
		"SUMMARY:Offsite",
		"END:VEVENT",
	)

	sched := schedule.Default()
	var warnings strings.Builder
	if _, err := sched.ImportICal(strings.NewReader(ical), schedule.CategorySick, &warnings); err != nil {
		t.Fatalf("ImportICal: %v", err)
	}
	if len(sched.Events) != 1 {
		t.Fatalf("events = %d, want 1 (end floors to March 2, exclusive)", len(sched.Events))
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if !sched.Events[0].Date.Equal(want) {
		t.Errorf("event date = %v, want %v", sched.Events[0].Date, want)
	}
}
