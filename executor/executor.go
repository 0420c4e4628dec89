// Package executor applies wallpapers to the desktop
package executor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.sr.ht/~avern/wpcraft/errors"
)

// WallpaperSetter sets the desktop wallpaper, either through a user script
// or the GNOME gsettings interface. It implements interfaces.Setter.
type WallpaperSetter struct {
	scriptPath string
	logger     *slog.Logger
}

// NewWallpaperSetter creates a setter. When scriptPath is non-empty the
// script is invoked with the image path instead of gsettings.
func NewWallpaperSetter(scriptPath string, logger *slog.Logger) *WallpaperSetter {
	return &WallpaperSetter{
		scriptPath: scriptPath,
		logger:     logger,
	}
}

// Apply sets the image at path as the desktop wallpaper.
func (s *WallpaperSetter) Apply(path string) error {
	if s.scriptPath != "" {
		return s.applyScript(path)
	}

	s.logger.Info("Setting wallpaper", "path", path)
	cmd := exec.Command(
		"gsettings", "set", "org.gnome.desktop.background", "picture-uri", "file://"+path)
	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Error("gsettings failed", "error", err, "output", string(out))
		return errors.NewApplyError(path, err)
	}
	return nil
}

func (s *WallpaperSetter) applyScript(path string) error {
	if _, err := os.Stat(s.scriptPath); os.IsNotExist(err) {
		return errors.NewApplyError(path, fmt.Errorf("script %s does not exist", s.scriptPath))
	}

	s.logger.Info("Executing wallpaper script", "script", s.scriptPath, "image", path)

	cmd := exec.Command(s.scriptPath, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		s.logger.Error("Script execution failed", "error", err, "script", s.scriptPath)
		return errors.NewApplyError(path, err)
	}
	return nil
}

// DetectResolution queries the primary display resolution via xrandr.
func DetectResolution() (string, error) {
	out, err := exec.Command("xrandr").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run xrandr: %w", err)
	}
	return parseXrandr(string(out))
}

// parseXrandr finds the active mode, the line marked with an asterisk.
func parseXrandr(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(fields[0], "x") {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("unable to determine screen resolution")
}
