package changewallpaperlib

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// VerificationFile is rewritten on every fallback run. Concurrent runs race
// on it and the last writer wins.
const VerificationFile = "BackgroundChanger_LastWallpaper.bmp"

const canvasPattern = "combined_wallpaper_*.bmp"

var background = color.RGBA{0, 0, 0, 255}

// Canvas describes a composed wallpaper that has been written to disk.
type Canvas struct {
	// Unique per run, owned by the caller until it is deleted
	Path             string
	VerificationPath string
	Bounds           DesktopBounds
	// Where the source image landed, in canvas pixels
	Placed image.Rectangle
}

// Compose builds one image spanning every monitor. The target monitor gets
// src fitted and centered, everything else stays black. Pixel (px, py) of the
// result is desktop position (px+MinX, py+MinY).
func Compose(src image.Image, monitors []MonitorRect, target int) (*image.RGBA, image.Rectangle, error) {
	if err := ValidateMonitorIndex(monitors, target); err != nil {
		return nil, image.Rectangle{}, err
	}

	sb := src.Bounds()
	if sb.Empty() {
		return nil, image.Rectangle{}, newError(InvalidImageFormat, "source image is empty")
	}

	b, err := CombinedBounds(monitors)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	m := monitors[target]
	p, err := FitAndCenter(sb.Dx(), sb.Dy(), m.Width, m.Height)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	dst := p.Rect(image.Pt(m.X-b.MinX, m.Y-b.MinY))
	// Over so transparent sources blend onto the background instead of
	// punching holes in it
	draw.CatmullRom.Scale(canvas, dst, src, sb, draw.Over, nil)

	return canvas, dst, nil
}

// ComposeToFile composes the canvas and writes it to a unique file in dir and
// to the verification file next to it.
func ComposeToFile(
	src image.Image, monitors []MonitorRect, target int, dir string) (*Canvas, error) {
	canvas, placed, err := Compose(src, monitors, target)
	if err != nil {
		return nil, err
	}

	b, err := CombinedBounds(monitors)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, canvasPattern)
	if err != nil {
		return nil, &Error{Kind: CanvasPersistFailure, Err: err}
	}
	path := f.Name()

	err = writeBMP(f, canvas)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, &Error{
			Kind: CanvasPersistFailure,
			Err:  fmt.Errorf("writing canvas [%s]: %w", path, err)}
	}

	verification := filepath.Join(dir, VerificationFile)
	if err = writeBMPFile(verification, canvas); err != nil {
		_ = os.Remove(path)
		return nil, &Error{
			Kind: CanvasPersistFailure,
			Err:  fmt.Errorf("writing verification copy [%s]: %w", verification, err)}
	}

	log.Printf("Combined wallpaper %dx%d saved to [%s]\n", b.Width(), b.Height(), path)

	return &Canvas{
		Path:             path,
		VerificationPath: verification,
		Bounds:           b,
		Placed:           placed,
	}, nil
}

// WriteCanvas writes an already composed canvas to path, used by preview.
func WriteCanvas(path string, canvas image.Image) error {
	if err := createMissingDirectories(path); err != nil {
		return &Error{Kind: CanvasPersistFailure, Err: err}
	}
	if err := writeBMPFile(path, canvas); err != nil {
		return &Error{Kind: CanvasPersistFailure, Err: err}
	}
	return nil
}

func writeBMPFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = writeBMP(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// BMP takes a lot of space but it's what SystemParametersInfo handles best
func writeBMP(f *os.File, img image.Image) error {
	w := bufio.NewWriter(f)
	if err := bmp.Encode(w, img); err != nil {
		return err
	}
	return w.Flush()
}

func createMissingDirectories(outFile string) error {
	return os.MkdirAll(filepath.Dir(outFile), 0755)
}
