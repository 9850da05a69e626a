package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/example/timeclock/internal/stamp"
)

func TestParseAtClockTime(t *testing.T) {
	now := time.Date(2026, 2, 27, 15, 0, 0, 0, time.Local)

	got, err := parseAt("11:40", now)
	if err != nil {
		t.Fatalf("parseAt: %v", err)
	}
	want := time.Date(2026, 2, 27, 11, 40, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseAt(\"11:40\") = %v, want %v", got, want)
	}

	got, err = parseAt("08:15:30", now)
	if err != nil {
		t.Fatalf("parseAt: %v", err)
	}
	want = time.Date(2026, 2, 27, 8, 15, 30, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseAt(\"08:15:30\") = %v, want %v", got, want)
	}
}

func TestParseAtFullDate(t *testing.T) {
	now := time.Now()
	got, err := parseAt("2026-02-27 09:00", now)
	if err != nil {
		t.Fatalf("parseAt: %v", err)
	}
	want := time.Date(2026, 2, 27, 9, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseAt = %v, want %v", got, want)
	}
}

func TestParseAtInvalid(t *testing.T) {
	if _, err := parseAt("half past never", time.Now()); err == nil {
		t.Error("parseAt: expected error for nonsense input, got nil")
	}
}

func TestTransitionErrorMessages(t *testing.T) {
	at := time.Date(2026, 2, 27, 8, 0, 0, 0, time.UTC)
	in := stamp.New(stamp.In, at, "")

	err := transitionError(stamp.New(stamp.Out, at.Add(time.Hour), ""), nil)
	if !strings.Contains(err.Error(), `first stamp must be an "in" transition`) {
		t.Errorf("empty-store message = %q", err)
	}

	err = transitionError(stamp.New(stamp.Resume, at.Add(time.Hour), ""), &in)
	if !strings.Contains(err.Error(), `"resume" transition cannot follow "in" transition`) {
		t.Errorf("adjacency message = %q", err)
	}

	err = transitionError(stamp.New(stamp.Out, at, ""), &in)
	if !strings.Contains(err.Error(), "does not advance past") {
		t.Errorf("time-ordering message = %q", err)
	}
}
