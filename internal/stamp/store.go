package stamp

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// The store is a directory of one file per stamp, named <unix-seconds>.stamp,
// each holding a single "<transition>:<details>" line. Files are never
// mutated; a replace writes a new file over the old one.

var fileNameRe = regexp.MustCompile(`^(\d+)\.stamp$`)

func filePath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%d.stamp", at.Unix()))
}

// Load reads a single stamp file. The timestamp comes from the file name;
// malformed names or content are an error, not silently skipped, since the
// store is write-verified by this tool and corruption would skew totals.
func Load(path string) (Stamp, error) {
	m := fileNameRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Stamp{}, fmt.Errorf("invalid stamp file name %q", filepath.Base(path))
	}
	secs, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Stamp{}, fmt.Errorf("invalid stamp file name %q: %w", filepath.Base(path), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Stamp{}, fmt.Errorf("reading stamp file: %w", err)
	}

	name, details, ok := strings.Cut(strings.TrimSpace(string(data)), ":")
	if !ok {
		return Stamp{}, fmt.Errorf("invalid data in stamp file %s", path)
	}
	transition, err := ParseTransition(strings.TrimSpace(name))
	if err != nil {
		return Stamp{}, fmt.Errorf("invalid data in stamp file %s: %w", path, err)
	}

	return Stamp{
		Transition: transition,
		Time:       time.Unix(secs, 0).UTC(),
		Details:    strings.TrimSpace(details),
	}, nil
}

// List loads every stamp in dir, sorted chronologically. A missing directory
// yields no stamps. Files not matching the stamp naming scheme are ignored;
// a matching file with bad content fails the whole load.
func List(dir string) ([]Stamp, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stamp directory: %w", err)
	}

	var stamps []Stamp
	for _, entry := range entries {
		if entry.IsDir() || !fileNameRe.MatchString(entry.Name()) {
			continue
		}
		st, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		stamps = append(stamps, st)
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Time.Before(stamps[j].Time) })
	return stamps, nil
}

// MostRecent returns the stamp with the numerically largest timestamp, or nil
// for an empty or missing store.
func MostRecent(dir string) (*Stamp, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stamp directory: %w", err)
	}

	var newest string
	var newestSecs int64
	for _, entry := range entries {
		m := fileNameRe.FindStringSubmatch(entry.Name())
		if entry.IsDir() || m == nil {
			continue
		}
		secs, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if newest == "" || secs > newestSecs {
			newest = entry.Name()
			newestSecs = secs
		}
	}
	if newest == "" {
		return nil, nil
	}

	st, err := Load(filepath.Join(dir, newest))
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Write persists the stamp into dir, creating it if needed. The write goes
// through a temp file and rename so readers never see a torn stamp.
func (s Stamp) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating stamp directory: %w", err)
	}

	path := filePath(dir, s.Time)
	tmpPath := path + ".tmp"
	content := fmt.Sprintf("%s:%s\n", s.Transition, s.Details)
	if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing stamp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming stamp file: %w", err)
	}
	return nil
}

// Remove deletes the stamp recorded at the given time.
func Remove(dir string, at time.Time) error {
	if err := os.Remove(filePath(dir, at)); err != nil {
		return fmt.Errorf("removing stamp file: %w", err)
	}
	return nil
}
