// Package scheduler manages the periodic wallpaper switch crontab entry
package scheduler

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/errors"
)

// CronScheduler installs the auto-switch entry in the user crontab. A
// marker comment identifies entries owned by wpcraft so repeated installs
// replace rather than accumulate. It implements interfaces.Scheduler.
type CronScheduler struct {
	logger *slog.Logger
}

// NewCronScheduler creates a crontab-backed scheduler.
func NewCronScheduler(logger *slog.Logger) *CronScheduler {
	return &CronScheduler{logger: logger}
}

// Install replaces any existing entry with one firing every n units.
func (c *CronScheduler) Install(unit string, n int) error {
	schedule, err := cronSchedule(unit, n)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	lines, err := readCrontab()
	if err != nil {
		return err
	}
	lines = withoutMarked(lines)

	// The trailing comment is stripped by the shell running the job; cron
	// itself has no inline comments.
	entry := fmt.Sprintf("%s DISPLAY=%s %s next # %s",
		schedule, os.Getenv("DISPLAY"), exe, constants.CronMarker)
	lines = append(lines, entry)

	if err := writeCrontab(lines); err != nil {
		return err
	}

	c.logger.Info("Installed auto switch schedule", "every", fmt.Sprintf("%d %s", n, unit))
	return nil
}

// Disable removes the wpcraft crontab entry.
func (c *CronScheduler) Disable() error {
	lines, err := readCrontab()
	if err != nil {
		return err
	}

	kept := withoutMarked(lines)
	if len(kept) == len(lines) {
		return nil
	}

	if err := writeCrontab(kept); err != nil {
		return err
	}
	c.logger.Info("Disabled auto switch schedule")
	return nil
}

// Status describes the installed schedule, or "" when disabled.
func (c *CronScheduler) Status() (string, error) {
	lines, err := readCrontab()
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		if strings.Contains(line, constants.CronMarker) {
			return describeSchedule(line), nil
		}
	}
	return "", nil
}

// cronSchedule renders the five cron fields for an interval.
func cronSchedule(unit string, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("interval must be at least 1, got %d", n)
	}
	switch unit {
	case constants.UnitMinutes:
		return fmt.Sprintf("*/%d * * * *", n), nil
	case constants.UnitHours:
		return fmt.Sprintf("0 */%d * * *", n), nil
	case constants.UnitDays:
		return fmt.Sprintf("0 0 */%d * *", n), nil
	}
	return "", fmt.Errorf("invalid interval unit %q", unit)
}

// describeSchedule turns a marked crontab line back into a human interval.
func describeSchedule(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return "enabled"
	}
	parseStep := func(f string) (int, bool) {
		rest, ok := strings.CutPrefix(f, "*/")
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(rest)
		return n, err == nil
	}
	if n, ok := parseStep(fields[0]); ok {
		return fmt.Sprintf("every %d minutes", n)
	}
	if n, ok := parseStep(fields[1]); ok {
		return fmt.Sprintf("every %d hours", n)
	}
	if n, ok := parseStep(fields[2]); ok {
		return fmt.Sprintf("every %d days", n)
	}
	return "enabled"
}

func withoutMarked(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if !strings.Contains(line, constants.CronMarker) {
			kept = append(kept, line)
		}
	}
	return kept
}

func readCrontab() ([]string, error) {
	out, err := exec.Command("crontab", "-l").Output()
	if err != nil {
		// An empty crontab exits non-zero; that is not an error here.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrCronAccess, err)
	}

	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func writeCrontab(lines []string) error {
	var input bytes.Buffer
	for _, line := range lines {
		input.WriteString(line)
		input.WriteByte('\n')
	}

	cmd := exec.Command("crontab", "-")
	cmd.Stdin = &input
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %v (%s)", errors.ErrCronAccess, err, strings.TrimSpace(string(out)))
	}
	return nil
}
