//go:build !windows
// +build !windows

package changewallpaperlib

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// screenshotMonitors has no notion of a primary display, the one whose bounds
// start at the origin is treated as primary.
func screenshotMonitors() ([]MonitorRect, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, fmt.Errorf("no active displays reported")
	}

	monitors := make([]MonitorRect, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if b.Dx() <= 0 || b.Dy() <= 0 {
			continue
		}
		monitors = append(monitors, MonitorRect{
			X:       b.Min.X,
			Y:       b.Min.Y,
			Width:   b.Dx(),
			Height:  b.Dy(),
			Primary: b.Min.X == 0 && b.Min.Y == 0,
		})
	}

	return monitors, nil
}
