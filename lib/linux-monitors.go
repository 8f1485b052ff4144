//go:build !windows && !darwin
// +build !windows,!darwin

package changewallpaperlib

import (
	"io"
	"log"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

type environment int

const (
	gnome environment = iota
	i3
	unknown
)

type x11Monitors struct{}

// Monitors prefers RandR CRTCs, which know about the primary output, and
// falls back to Xinerama screens through the screenshot package.
func (x11Monitors) Monitors() ([]MonitorRect, error) {
	monitors, err := randrMonitors()
	if err != nil {
		log.Printf("RandR enumeration failed, trying Xinerama: %v\n", err)
		monitors, err = screenshotMonitors()
		if err != nil {
			return nil, err
		}
	}

	return NormalizeToPrimary(monitors), nil
}

func newXConn() (*xgbutil.XUtil, error) {
	// Stop polluting stdout
	xgb.Logger.SetOutput(io.Discard)
	xgbutil.Logger.SetOutput(io.Discard)

	return xgbutil.NewConn()
}

func randrMonitors() ([]MonitorRect, error) {
	X, err := newXConn()
	if err != nil {
		return nil, err
	}
	defer X.Conn().Close()
	Xgb := X.Conn()

	err = randr.Init(Xgb)
	if err != nil {
		return nil, err
	}

	root := X.RootWin()

	resources, err := randr.GetScreenResources(Xgb, root).Reply()
	if err != nil {
		return nil, err
	}

	var primary randr.Output
	if p, err := randr.GetOutputPrimary(Xgb, root).Reply(); err == nil {
		primary = p.Output
	}

	monitors := []MonitorRect{}
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(Xgb, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			return nil, err
		}

		// Disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		m := MonitorRect{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		}
		for _, o := range info.Outputs {
			if primary != 0 && o == primary {
				m.Primary = true
			}
		}
		monitors = append(monitors, m)
	}

	return monitors, nil
}

func detectEnvironment() environment {
	X, err := newXConn()
	if err != nil {
		log.Printf("Could not connect to X to detect the WM: %v\n", err)
		return unknown
	}
	defer X.Conn().Close()

	wm, err := ewmh.GetEwmhWM(X)
	if err != nil {
		log.Printf("Could not read the EWMH WM name: %v\n", err)
		return unknown
	}

	wm = strings.ToLower(wm)
	if strings.Contains(wm, "gnome") || strings.Contains(wm, "mutter") {
		return gnome
	} else if wm == "i3" {
		return i3
	}

	// Feh probably works
	log.Printf("Encountered unknown WM/DE: %s\n", wm)
	return unknown
}
