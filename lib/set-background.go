package changewallpaperlib

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
)

// Method records which strategy ended up setting the wallpaper.
type Method int

const (
	ViaNative Method = iota + 1
	ViaFallback
)

func (m Method) String() string {
	switch m {
	case ViaNative:
		return "native"
	case ViaFallback:
		return "fallback"
	}
	return "none"
}

// Applied is the successful outcome of Selector.Apply.
type Applied struct {
	Via Method
	// Set when Via is ViaNative
	DeviceID string
	// Set when Via is ViaFallback. Canvas.Path has already been removed.
	Canvas *Canvas
}

// Selector tries the per-monitor API once and falls back to composing a
// canvas for the whole desktop once. Nothing is retried and nothing is
// remembered between calls.
type Selector struct {
	Monitors   []MonitorRect
	OpenNative func() (NativeWallpaperSetter, error)
	Legacy     LegacyWallpaperSetter
	// Defaults to DecodeImage
	Decode  func(path string) (image.Image, error)
	TempDir string
	Out     *Output
}

func NewSelector(p *Platform, monitors []MonitorRect, c *Config, out *Output) *Selector {
	s := &Selector{
		Monitors:   monitors,
		OpenNative: p.OpenNative,
		Legacy:     p.Legacy,
		Out:        out,
	}
	if c != nil {
		s.TempDir = c.TempDirectory
	}
	return s
}

// Apply sets imagePath as the wallpaper of monitor target.
func (s *Selector) Apply(imagePath string, target int) (Applied, error) {
	if err := ValidateMonitorIndex(s.Monitors, target); err != nil {
		return Applied{}, err
	}
	if err := CheckImagePath(imagePath); err != nil {
		return Applied{}, err
	}

	// IDesktopWallpaper wants full paths
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		return Applied{}, err
	}

	m := s.Monitors[target]
	s.Out.Printf("Target monitor: %dx%d at (%d, %d)\n", m.Width, m.Height, m.X, m.Y)

	s.Out.Println("Attempting to use per-monitor wallpaper API...")
	id, err := s.tryNative(abs, target)
	if err == nil {
		log.Printf("Set [%s] on monitor %d (%s) with the per-monitor API\n", abs, target, id)
		s.Out.Println("Successfully set wallpaper using per-monitor API!")
		return Applied{Via: ViaNative, DeviceID: id}, nil
	}

	log.Printf("Per-monitor API unusable for monitor %d: %v\n", target, err)
	s.Out.Printf("Per-monitor API failed (%v), falling back to combined wallpaper...\n", err)

	canvas, err := s.composeAndApply(abs, target)
	if err != nil {
		return Applied{}, err
	}

	s.Out.Println("Background image set successfully using combined wallpaper!")
	return Applied{Via: ViaFallback, Canvas: canvas}, nil
}

// Every failure in here, panics included, means "unavailable".
func (s *Selector) tryNative(imagePath string, target int) (id string, err error) {
	if s.OpenNative == nil {
		return "", ErrNativeUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			id, err = "", fmt.Errorf("per-monitor wallpaper API panicked: %v", r)
		}
	}()

	n, err := s.OpenNative()
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := n.Close(); cerr != nil {
			log.Printf("Error releasing per-monitor wallpaper API: %v\n", cerr)
		}
	}()

	count, err := n.MonitorCount()
	if err != nil {
		return "", err
	}
	s.Out.Printf("Per-monitor API detected %d monitors\n", count)

	if uint64(target) >= uint64(count) {
		return "", fmt.Errorf(
			"%w: monitor index %d exceeds available monitors (%d)",
			ErrNativeUnavailable, target, count)
	}

	id, err = n.DeviceIDAt(uint32(target))
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("failed to get monitor device path")
	}

	s.Out.Printf("Setting wallpaper on monitor: %s\n", id)
	if err = n.SetWallpaper(id, imagePath); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Selector) composeAndApply(imagePath string, target int) (*Canvas, error) {
	decode := s.Decode
	if decode == nil {
		decode = DecodeImage
	}

	img, err := decode(imagePath)
	if err != nil {
		return nil, err
	}

	canvas, err := ComposeToFile(img, s.Monitors, target, s.TempDir)
	if err != nil {
		return nil, err
	}
	s.Out.Printf("Creating combined wallpaper: %dx%d\n",
		canvas.Bounds.Width(), canvas.Bounds.Height())
	s.Out.Printf("Image drawn on monitor %d at (%d, %d) with size %dx%d\n",
		target, canvas.Placed.Min.X, canvas.Placed.Min.Y,
		canvas.Placed.Dx(), canvas.Placed.Dy())
	s.Out.Printf("Combined wallpaper saved to: %s\n", canvas.Path)
	s.Out.Printf("Verification copy saved to: %s\n", canvas.VerificationPath)

	// The verification copy stays behind on purpose
	defer func() {
		if rerr := os.Remove(canvas.Path); rerr != nil && !os.IsNotExist(rerr) {
			log.Printf("Error removing temporary canvas [%s]: %v\n", canvas.Path, rerr)
		}
	}()

	if s.Legacy == nil {
		return nil, newError(WallpaperApplyFailed, "no whole-desktop wallpaper setter available")
	}

	if err = s.Legacy.SetWallpaper(canvas.Path); err != nil {
		return nil, &Error{Kind: WallpaperApplyFailed, Err: err}
	}

	return canvas, nil
}
