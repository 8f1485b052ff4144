package changewallpaperlib

import "fmt"

// MonitorRect is one display in virtual desktop coordinates. The origin is the
// primary monitor's top-left corner so X and Y can be negative.
type MonitorRect struct {
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Primary bool `yaml:"primary"`
}

func (m MonitorRect) String() string {
	s := fmt.Sprintf("%dx%d at (%d, %d)", m.Width, m.Height, m.X, m.Y)
	if m.Primary {
		s += " (Primary)"
	}
	return s
}

// DesktopBounds is the smallest rectangle covering every monitor.
// Max values are exclusive.
type DesktopBounds struct {
	MinX int `yaml:"minX"`
	MinY int `yaml:"minY"`
	MaxX int `yaml:"maxX"`
	MaxY int `yaml:"maxY"`
}

func (b DesktopBounds) Width() int  { return b.MaxX - b.MinX }
func (b DesktopBounds) Height() int { return b.MaxY - b.MinY }

// Contains reports whether m lies entirely inside b.
func (b DesktopBounds) Contains(m MonitorRect) bool {
	return m.X >= b.MinX && m.Y >= b.MinY &&
		m.X+m.Width <= b.MaxX && m.Y+m.Height <= b.MaxY
}

func (b DesktopBounds) String() string {
	return fmt.Sprintf("%dx%d (from %d,%d to %d,%d)",
		b.Width(), b.Height(), b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// CombinedBounds is recomputed on every call, it only depends on the list.
func CombinedBounds(monitors []MonitorRect) (DesktopBounds, error) {
	if len(monitors) == 0 {
		return DesktopBounds{}, ErrNoMonitors
	}

	first := monitors[0]
	b := DesktopBounds{
		MinX: first.X,
		MinY: first.Y,
		MaxX: first.X + first.Width,
		MaxY: first.Y + first.Height,
	}

	for _, m := range monitors[1:] {
		if m.X < b.MinX {
			b.MinX = m.X
		}
		if m.Y < b.MinY {
			b.MinY = m.Y
		}
		if m.X+m.Width > b.MaxX {
			b.MaxX = m.X + m.Width
		}
		if m.Y+m.Height > b.MaxY {
			b.MaxY = m.Y + m.Height
		}
	}

	return b, nil
}

// ValidateMonitorIndex must pass before any canvas is allocated.
func ValidateMonitorIndex(monitors []MonitorRect, i int) error {
	if len(monitors) == 0 {
		return ErrNoMonitors
	}
	if i < 0 || i >= len(monitors) {
		return &Error{
			Kind: MonitorIndexOutOfRange,
			Err: fmt.Errorf(
				"monitor index %d not found, available monitors: 0-%d", i, len(monitors)-1),
		}
	}
	for _, m := range monitors {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("monitor %s has an empty area", m)
		}
	}
	return nil
}

// NormalizeToPrimary shifts raw enumerator coordinates so the primary monitor
// sits at (0, 0). Lists without a primary are returned unchanged.
func NormalizeToPrimary(monitors []MonitorRect) []MonitorRect {
	for _, m := range monitors {
		if !m.Primary {
			continue
		}
		if m.X == 0 && m.Y == 0 {
			return monitors
		}

		out := make([]MonitorRect, len(monitors))
		for i, o := range monitors {
			o.X -= m.X
			o.Y -= m.Y
			out[i] = o
		}
		return out
	}
	return monitors
}
