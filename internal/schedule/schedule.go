package schedule

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/example/timeclock/internal/timeutil"
)

// Category classifies a calendar day, ordered by severity: when several
// events land on the same day, the most severe category wins.
type Category int

const (
	CategoryWorkDay Category = iota
	CategoryVacation
	CategorySick
	CategoryHoliday
	CategoryWeekend
)

var categoryNames = [...]string{"work-day", "vacation", "sick", "holiday", "weekend"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory converts a category name as used in the schedule file.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(s, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q, allowed values are %s",
		s, strings.Join(categoryNames[:], "|"))
}

// Event is one calendar entry. When Recurring, the date's year is ignored on
// match (annual recurrence; no other frequency is supported).
type Event struct {
	Date      time.Time
	Category  Category
	Recurring bool
	Summary   string
}

// Matches reports whether the event covers the given calendar day.
func (e Event) Matches(date time.Time) bool {
	if e.Recurring {
		return e.Date.Month() == date.Month() && e.Date.Day() == date.Day()
	}
	return e.Date.Year() == date.Year() && e.Date.Month() == date.Month() && e.Date.Day() == date.Day()
}

// Schedule holds the working-day policy and the holiday/vacation calendar.
type Schedule struct {
	// WorkingDays lists the weekdays that count as regular working days.
	WorkingDays []time.Weekday
	// HoursPerWeek is the required weekly working time; 0 means no
	// requirement is configured.
	HoursPerWeek float64
	Events       []Event
}

// Default returns a Monday-to-Friday, 40-hour schedule with no events.
func Default() *Schedule {
	return &Schedule{
		WorkingDays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		HoursPerWeek: 40,
	}
}

func (s *Schedule) isWorkingWeekday(wd time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == wd {
			return true
		}
	}
	return false
}

// Categorize returns the category of the given calendar day. A weekday
// outside the working days is Weekend unconditionally, even when a holiday
// lands on it; otherwise the most severe matching event wins over the
// work-day baseline.
func (s *Schedule) Categorize(date time.Time) Category {
	if !s.isWorkingWeekday(date.Weekday()) {
		return CategoryWeekend
	}
	category := CategoryWorkDay
	for _, event := range s.Events {
		if event.Matches(date) && event.Category > category {
			category = event.Category
		}
	}
	return category
}

// WorkingHoursInWeek returns the required working time for the week
// containing day. The requirement scales down when a working day in that
// week is taken by a holiday, vacation or sick event.
func (s *Schedule) WorkingHoursInWeek(day time.Time) time.Duration {
	if s.HoursPerWeek == 0 || len(s.WorkingDays) == 0 {
		return 0
	}
	start := timeutil.StartOfWeek(day.Local())
	working := 0
	for i := 0; i < 7; i++ {
		if s.Categorize(start.AddDate(0, 0, i)) == CategoryWorkDay {
			working++
		}
	}
	hours := s.HoursPerWeek / float64(len(s.WorkingDays)) * float64(working)
	return time.Duration(hours * float64(time.Hour))
}

// The on-disk schedule file: weekday indices are Monday=0 per the file
// format, dates are "2006-01-02" strings.
type scheduleFile struct {
	WorkingDays  []int       `toml:"working-days"`
	HoursPerWeek float64     `toml:"hours-per-week,omitempty"`
	Events       []eventFile `toml:"events"`
}

type eventFile struct {
	Date      string `toml:"date"`
	Category  string `toml:"category"`
	Recurring bool   `toml:"recurring"`
	Summary   string `toml:"summary,omitempty"`
}

const dateLayout = "2006-01-02"

func weekdayFromIndex(i int) time.Weekday {
	// File indices are Monday=0; time.Weekday is Sunday=0.
	return time.Weekday((i + 1) % 7)
}

func indexFromWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// Load reads the schedule file. A missing file yields the default schedule.
func Load(path string) (*Schedule, error) {
	var file scheduleFile
	if _, err := toml.DecodeFile(path, &file); os.IsNotExist(err) {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("parsing schedule file %s: %w", path, err)
	}

	sched := &Schedule{HoursPerWeek: file.HoursPerWeek}
	if file.WorkingDays == nil {
		sched.WorkingDays = Default().WorkingDays
	} else {
		for _, i := range file.WorkingDays {
			if i < 0 || i > 6 {
				return nil, fmt.Errorf("schedule file %s: weekday index %d out of range", path, i)
			}
			sched.WorkingDays = append(sched.WorkingDays, weekdayFromIndex(i))
		}
	}

	for _, ev := range file.Events {
		date, err := time.ParseInLocation(dateLayout, ev.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("schedule file %s: invalid event date %q: %w", path, ev.Date, err)
		}
		category, err := ParseCategory(ev.Category)
		if err != nil {
			return nil, fmt.Errorf("schedule file %s: %w", path, err)
		}
		sched.Events = append(sched.Events, Event{
			Date:      date,
			Category:  category,
			Recurring: ev.Recurring,
			Summary:   ev.Summary,
		})
	}
	return sched, nil
}

// Save rewrites the schedule file wholesale, events sorted by date. The
// write goes through a temp file and rename.
func (s *Schedule) Save(path string) error {
	file := scheduleFile{HoursPerWeek: s.HoursPerWeek}
	for _, wd := range s.WorkingDays {
		file.WorkingDays = append(file.WorkingDays, indexFromWeekday(wd))
	}
	sort.Ints(file.WorkingDays)

	events := append([]Event(nil), s.Events...)
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	for _, ev := range events {
		file.Events = append(file.Events, eventFile{
			Date:      ev.Date.Format(dateLayout),
			Category:  ev.Category.String(),
			Recurring: ev.Recurring,
			Summary:   ev.Summary,
		})
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return fmt.Errorf("encoding schedule file: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(buf.String()), 0o600); err != nil {
		return fmt.Errorf("writing schedule file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming schedule file: %w", err)
	}
	return nil
}
