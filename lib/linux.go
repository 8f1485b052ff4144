//go:build !windows && !darwin
// +build !windows,!darwin

package changewallpaperlib

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

func NewPlatform(c *Config) *Platform {
	return &Platform{
		Enumerator: x11Monitors{},
		OpenNative: func() (NativeWallpaperSetter, error) {
			return nil, fmt.Errorf("%w on X11", ErrNativeUnavailable)
		},
		Legacy: &x11Legacy{outputDir: c.OutputDir},
	}
}

const dbusAddress = "DBUS_SESSION_BUS_ADDRESS"

func setDBUSAddress() error {
	dbus := os.Getenv(dbusAddress)
	if dbus == "" {
		// For now just assume we're dealing with per-user dbus sessions
		user, err := user.Current()
		if err != nil {
			return nil
		}
		uid := user.Uid
		if uid == "" {
			return errors.New("No $UID set")
		}
		return os.Setenv(dbusAddress, "unix:path=/run/user/"+uid+"/bus")
	}

	return nil
}

const outputPattern = "combined_*.bmp"

// x11Legacy keeps its own copy of every canvas in outputDir since both GNOME
// and feh read the file again later.
type x11Legacy struct {
	outputDir string
}

func (l *x11Legacy) SetWallpaper(path string) error {
	err := os.MkdirAll(l.outputDir, 0755)
	if err != nil {
		return fmt.Errorf(
			"Error creating OutputDir [%s]: %s", l.outputDir, err)
	}

	wallpaper, err := l.copyToOutput(path)
	if err != nil {
		return err
	}

	if detectEnvironment() == gnome {
		err = setGnomeWallpaper(wallpaper)
	} else {
		err = setFehWallpaper(wallpaper)
	}
	if err != nil {
		_ = os.Remove(wallpaper)
		return err
	}

	l.pruneOutputDir(wallpaper)
	return nil
}

func (l *x11Legacy) copyToOutput(path string) (string, error) {
	dir, err := filepath.Abs(l.outputDir)
	if err != nil {
		return "", err
	}

	out, err := os.CreateTemp(dir, outputPattern)
	if err != nil {
		return "", err
	}
	defer out.Close()

	in, err := os.Open(path)
	if err != nil {
		_ = os.Remove(out.Name())
		return "", err
	}
	defer in.Close()

	if _, err = io.Copy(out, in); err != nil {
		_ = os.Remove(out.Name())
		return "", err
	}
	return out.Name(), out.Close()
}

// Only remove files we own
func (l *x11Legacy) pruneOutputDir(keep string) {
	old, err := filepath.Glob(filepath.Join(l.outputDir, outputPattern))
	if err != nil {
		return
	}
	for _, f := range old {
		if filepath.Base(f) == filepath.Base(keep) {
			continue
		}
		// This could have already been removed, bury any errors
		_ = os.Remove(f)
	}
}

func setGnomeWallpaper(wallpaper string) error {
	if err := setDBUSAddress(); err != nil {
		return err
	}

	// picture-uri-dark only exists on GNOME 42 and later
	_, err := runBash(`
		gsettings set org.gnome.desktop.background picture-options spanned
		gsettings set org.gnome.desktop.background picture-uri "file://` + wallpaper + `"
		gsettings set org.gnome.desktop.background picture-uri-dark "file://` + wallpaper + `" || true
	`)
	return err
}

// Without Xinerama feh treats the root window as one surface, which is what
// the canvas was built for
func setFehWallpaper(wallpaper string) error {
	cmd := exec.Command("feh", "--no-xinerama", "--bg-center", wallpaper)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("feh: %w (%s)", err, strings.TrimSpace(string(out)))
	}
	log.Printf("Set [%s] with feh\n", wallpaper)
	return nil
}

func runBash(cmd string) (string, error) {
	// See http://redsymbol.net/articles/unofficial-bash-strict-mode/
	command := `
		set -euo pipefail
		IFS=$'\n\t'
		` + cmd + "\n"

	bash := exec.Command("/usr/bin/env", "bash")
	bash.Stdin = strings.NewReader(command)
	bash.Stderr = os.Stderr

	bashOut, err := bash.Output()
	return string(bashOut), err
}

// No-op
func AttachParentConsole() {}

// No-op
func HideConsole() {}
