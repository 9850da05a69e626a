package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/example/timeclock/internal/config"
	"github.com/example/timeclock/internal/stamp"
)

var (
	clockAt      string
	clockForce   bool
	clockReplace bool
	clockRemove  bool
)

var clockCmd = &cobra.Command{
	Use:   "clock <transition> [details...]",
	Short: "Record a work-day transition stamp",
	Long: `clock appends one stamp (in|out|pause|resume|tag) to the stamp store,
validating it against the most recent existing stamp. Any remaining
arguments become the stamp's free-text details.`,
	Args: cobra.ArbitraryArgs,
	RunE: runClock,
}

func init() {
	clockCmd.Flags().StringVar(&clockAt, "at", "", "Record the stamp at the given time instead of now")
	clockCmd.Flags().BoolVar(&clockForce, "force", false, "Skip the transition validation gate")
	clockCmd.Flags().BoolVar(&clockReplace, "replace", false, "Replace the most recent stamp instead of appending")
	clockCmd.Flags().BoolVar(&clockRemove, "remove", false, "Remove the most recent stamp")
}

func runClock(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := config.ExpandHome(cfg.Stamps.Dir)

	if clockRemove {
		if len(args) != 0 {
			return fmt.Errorf("--remove takes no transition argument")
		}
		return removeStamp(dir)
	}

	if len(args) < 1 {
		return fmt.Errorf("missing transition argument (in|out|pause|resume|tag)")
	}
	transition, err := stamp.ParseTransition(args[0])
	if err != nil {
		return err
	}
	details := strings.Join(args[1:], " ")

	if clockReplace {
		return replaceStamp(dir, transition, details)
	}

	this := stamp.Now(transition, details)
	if clockAt != "" {
		at, err := parseAt(clockAt, time.Now())
		if err != nil {
			return err
		}
		this = stamp.New(transition, at, details)
	}
	last, err := stamp.MostRecent(dir)
	if err != nil {
		return err
	}
	if !clockForce && !this.MayFollow(last) {
		return transitionError(this, last)
	}
	if err := this.Write(dir); err != nil {
		return err
	}
	fmt.Printf("Recorded %q stamp at %s\n", this.Transition, this.Time.Local().Format("15:04:05"))
	return nil
}

// replaceStamp rewrites the most recent stamp with a new transition and
// details at the same timestamp. The replacement is validated against the
// stamp preceding the replaced one unless forced.
func replaceStamp(dir string, transition stamp.Transition, details string) error {
	stamps, err := stamp.List(dir)
	if err != nil {
		return err
	}
	if len(stamps) == 0 {
		return fmt.Errorf("no stamp to replace")
	}
	last := stamps[len(stamps)-1]
	var prev *stamp.Stamp
	if len(stamps) > 1 {
		prev = &stamps[len(stamps)-2]
	}

	replacement := stamp.New(transition, last.Time, details)
	if !clockForce && !replacement.MayFollow(prev) {
		return transitionError(replacement, prev)
	}
	if err := replacement.Write(dir); err != nil {
		return err
	}
	fmt.Printf("Replaced %q stamp at %s with %q\n",
		last.Transition, last.Time.Local().Format("15:04:05"), replacement.Transition)
	return nil
}

func removeStamp(dir string) error {
	last, err := stamp.MostRecent(dir)
	if err != nil {
		return err
	}
	if last == nil {
		return fmt.Errorf("no stamp to remove")
	}
	if err := stamp.Remove(dir, last.Time); err != nil {
		return err
	}
	fmt.Printf("Removed %q stamp from %s\n",
		last.Transition, last.Time.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// transitionError explains why the stamp was rejected, naming the offending
// pair.
func transitionError(s stamp.Stamp, last *stamp.Stamp) error {
	if last == nil {
		return fmt.Errorf(`first stamp must be an "in" transition`)
	}
	if s.Transition.MayFollow(last.Transition, true) && !s.Time.After(last.Time) {
		return fmt.Errorf("stamp time %s does not advance past the last stamp at %s",
			s.Time.Local().Format("15:04:05"), last.Time.Local().Format("15:04:05"))
	}
	return fmt.Errorf("%q transition cannot follow %q transition", s.Transition, last.Transition)
}

// parseAt interprets the --at flag. Bare clock times refer to today; other
// formats fall through to lenient date parsing.
func parseAt(s string, now time.Time) (time.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
		}
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: try something like \"11:40\" or \"2026-08-30 09:00\"", s)
	}
	return t, nil
}
