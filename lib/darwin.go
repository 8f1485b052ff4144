//go:build darwin
// +build darwin

package changewallpaperlib

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func NewPlatform(c *Config) *Platform {
	return &Platform{
		Enumerator: darwinMonitors{},
		OpenNative: func() (NativeWallpaperSetter, error) { return systemEvents{}, nil },
		Legacy:     darwinLegacy{},
	}
}

type darwinMonitors struct{}

func (darwinMonitors) Monitors() ([]MonitorRect, error) {
	monitors, err := screenshotMonitors()
	if err != nil {
		return nil, err
	}
	return NormalizeToPrimary(monitors), nil
}

// systemEvents drives per-desktop pictures through AppleScript. Desktops are
// numbered from 1.
type systemEvents struct{}

func osascript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("osascript: %w (%s)", err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

func (systemEvents) MonitorCount() (uint32, error) {
	out, err := osascript(`tell application "System Events" to count of desktops`)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(out, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected desktop count [%s]: %w", out, err)
	}
	return uint32(n), nil
}

func (systemEvents) DeviceIDAt(index uint32) (string, error) {
	return strconv.FormatUint(uint64(index)+1, 10), nil
}

func (systemEvents) SetWallpaper(deviceID, path string) error {
	script := fmt.Sprintf(
		`tell application "System Events" to set picture of desktop %s to %q`,
		deviceID, path)
	_, err := osascript(script)
	return err
}

func (systemEvents) Close() error { return nil }

type darwinLegacy struct{}

// macOS has no spanned wallpaper mode, every desktop would show the whole
// canvas.
func (darwinLegacy) SetWallpaper(path string) error {
	return errors.New("spanned wallpapers are not supported on macOS")
}

// No-op
func AttachParentConsole() {}

// No-op
func HideConsole() {}
