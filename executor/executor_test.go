package executor

import "testing"

const xrandrOutput = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.01*+  59.97    59.96    59.93
   1680x1050     59.95    59.88
   1280x1024     60.02
`

func TestParseXrandr(t *testing.T) {
	resolution, err := parseXrandr(xrandrOutput)
	if err != nil {
		t.Fatalf("parseXrandr() error = %v", err)
	}
	if resolution != "1920x1080" {
		t.Errorf("parseXrandr() = %s, want 1920x1080", resolution)
	}
}

func TestParseXrandrNoActiveMode(t *testing.T) {
	out := `Screen 0: minimum 320 x 200
eDP-1 disconnected (normal left inverted right x axis y axis)
`
	if _, err := parseXrandr(out); err == nil {
		t.Errorf("parseXrandr() error = nil, want error for missing active mode")
	}
}
