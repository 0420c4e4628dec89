package scheduler

import (
	"testing"

	"git.sr.ht/~avern/wpcraft/constants"
)

func TestCronSchedule(t *testing.T) {
	tests := []struct {
		unit    string
		n       int
		want    string
		wantErr bool
	}{
		{unit: "minutes", n: 30, want: "*/30 * * * *"},
		{unit: "hours", n: 2, want: "0 */2 * * *"},
		{unit: "days", n: 1, want: "0 0 */1 * *"},
		{unit: "minutes", n: 0, wantErr: true},
		{unit: "weeks", n: 1, wantErr: true},
	}

	for _, tt := range tests {
		got, err := cronSchedule(tt.unit, tt.n)
		if tt.wantErr {
			if err == nil {
				t.Errorf("cronSchedule(%s, %d) error = nil, want error", tt.unit, tt.n)
			}
			continue
		}
		if err != nil {
			t.Errorf("cronSchedule(%s, %d) error = %v", tt.unit, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("cronSchedule(%s, %d) = %q, want %q", tt.unit, tt.n, got, tt.want)
		}
	}
}

func TestDescribeSchedule(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "*/30 * * * * DISPLAY=:0 /usr/bin/wpcraft next # " + constants.CronMarker, want: "every 30 minutes"},
		{line: "0 */6 * * * DISPLAY=:0 /usr/bin/wpcraft next # " + constants.CronMarker, want: "every 6 hours"},
		{line: "0 0 */2 * * DISPLAY=:0 /usr/bin/wpcraft next # " + constants.CronMarker, want: "every 2 days"},
		{line: "15 4 * * * /usr/bin/wpcraft next # " + constants.CronMarker, want: "enabled"},
		{line: "garbage", want: "enabled"},
	}

	for _, tt := range tests {
		if got := describeSchedule(tt.line); got != tt.want {
			t.Errorf("describeSchedule(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestWithoutMarked(t *testing.T) {
	lines := []string{
		"0 5 * * * /usr/bin/backup",
		"*/30 * * * * DISPLAY=:0 /usr/bin/wpcraft next # " + constants.CronMarker,
		"@reboot /usr/bin/something",
	}

	kept := withoutMarked(lines)
	if len(kept) != 2 {
		t.Fatalf("withoutMarked() kept %d lines, want 2", len(kept))
	}
	if kept[0] != lines[0] || kept[1] != lines[2] {
		t.Errorf("withoutMarked() = %v, want unmarked lines preserved in order", kept)
	}

	if got := withoutMarked(nil); len(got) != 0 {
		t.Errorf("withoutMarked(nil) = %v, want empty", got)
	}
}
