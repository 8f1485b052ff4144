package changewallpaperlib

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

var red = color.RGBA{255, 0, 0, 255}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func isBlack(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0 && g == 0 && b == 0 && a == 0xffff
}

// Resampling can round, so allow a little slack
func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0xf000 && g < 0x0800 && b < 0x0800
}

func twoMonitors() []MonitorRect {
	return []MonitorRect{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{X: 1920, Y: 0, Width: 1080, Height: 1920},
	}
}

func TestCompose_PortraitTarget(t *testing.T) {
	canvas, placed, err := Compose(solid(800, 600, red), twoMonitors(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if canvas.Bounds() != image.Rect(0, 0, 3000, 1920) {
		t.Fatalf("expected 3000x1920 canvas, got %v", canvas.Bounds())
	}
	// 800x600 into 1080x1920 is 1080x810 at (0, 555) on the second monitor
	if placed != image.Rect(1920, 555, 3000, 1365) {
		t.Fatalf("unexpected placement %v", placed)
	}

	if c := canvas.At(2460, 960); !isRed(c) {
		t.Fatalf("expected image in the middle of the target, got %v", c)
	}
	if c := canvas.At(1925, 1360); !isRed(c) {
		t.Fatalf("expected image near the placement edge, got %v", c)
	}

	black := []image.Point{
		{100, 100},   // non-target monitor
		{1919, 1079}, // non-target monitor corner
		{100, 1500},  // below the shorter monitor
		{2460, 100},  // letterbox above
		{2460, 1800}, // letterbox below
		{2460, 554},
		{2460, 1365},
	}
	for _, p := range black {
		if c := canvas.At(p.X, p.Y); !isBlack(c) {
			t.Fatalf("expected black at %v, got %v", p, c)
		}
	}
}

func TestCompose_NegativeOrigin(t *testing.T) {
	monitors := []MonitorRect{
		{X: 0, Y: 0, Width: 100, Height: 100, Primary: true},
		{X: -50, Y: -20, Width: 50, Height: 40},
	}

	canvas, placed, err := Compose(solid(10, 10, red), monitors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Desktop spans -50..100 by -20..100
	if canvas.Bounds().Dx() != 150 || canvas.Bounds().Dy() != 120 {
		t.Fatalf("expected 150x120 canvas, got %v", canvas.Bounds())
	}
	// 10x10 into 50x40 is 40x40 at (5, 0), the monitor sits at canvas (0, 0)
	if placed != image.Rect(5, 0, 45, 40) {
		t.Fatalf("unexpected placement %v", placed)
	}
	if c := canvas.At(25, 20); !isRed(c) {
		t.Fatalf("expected image at 25,20, got %v", c)
	}
	if c := canvas.At(2, 20); !isBlack(c) {
		t.Fatalf("expected pillarbox at 2,20, got %v", c)
	}
	// Primary monitor lives at canvas (50, 20)
	if c := canvas.At(100, 60); !isBlack(c) {
		t.Fatalf("expected primary monitor to stay black, got %v", c)
	}
}

func TestCompose_TransparentSourceStaysBlack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	canvas, placed, err := Compose(src, []MonitorRect{{Width: 40, Height: 40, Primary: true}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := canvas.At(placed.Min.X+10, placed.Min.Y+10); !isBlack(c) {
		t.Fatalf("expected black under a transparent source, got %v", c)
	}
}

func TestCompose_Idempotent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 5), 128, 255})
		}
	}
	monitors := []MonitorRect{
		{X: 0, Y: 0, Width: 320, Height: 200, Primary: true},
		{X: 320, Y: -40, Width: 200, Height: 320},
	}

	a, _, err := Compose(src, monitors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := Compose(src, monitors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("expected identical canvases from identical inputs")
	}
}

func TestCompose_IndexOutOfRange(t *testing.T) {
	_, _, err := Compose(solid(10, 10, red), twoMonitors(), 2)
	if !errors.Is(err, ErrMonitorIndexOutOfRange) {
		t.Fatalf("expected ErrMonitorIndexOutOfRange, got %v", err)
	}
}

func TestComposeToFile_WritesCanvasAndVerificationCopy(t *testing.T) {
	dir := t.TempDir()
	monitors := []MonitorRect{
		{X: 0, Y: 0, Width: 160, Height: 90, Primary: true},
		{X: 160, Y: 0, Width: 90, Height: 160},
	}

	c, err := ComposeToFile(solid(40, 30, red), monitors, 1, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Dir(c.Path) != dir || !strings.HasPrefix(filepath.Base(c.Path), "combined_wallpaper_") ||
		filepath.Ext(c.Path) != ".bmp" {
		t.Fatalf("unexpected canvas path %q", c.Path)
	}
	if c.VerificationPath != filepath.Join(dir, VerificationFile) {
		t.Fatalf("unexpected verification path %q", c.VerificationPath)
	}
	if c.Bounds.Width() != 250 || c.Bounds.Height() != 160 {
		t.Fatalf("expected 250x160 bounds, got %s", c.Bounds)
	}

	for _, p := range []string{c.Path, c.VerificationPath} {
		img := decodeBMP(t, p)
		if img.Bounds().Dx() != 250 || img.Bounds().Dy() != 160 {
			t.Fatalf("%s: expected 250x160, got %v", p, img.Bounds())
		}
		if px := img.At(205, 80); !isRed(px) {
			t.Fatalf("%s: expected image on the target monitor, got %v", p, px)
		}
		if px := img.At(80, 45); !isBlack(px) {
			t.Fatalf("%s: expected black on the other monitor, got %v", p, px)
		}
	}
}

func TestComposeToFile_UniquePathsSharedVerification(t *testing.T) {
	dir := t.TempDir()
	monitors := []MonitorRect{{Width: 32, Height: 32, Primary: true}}

	a, err := ComposeToFile(solid(8, 8, red), monitors, 0, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ComposeToFile(solid(8, 8, color.RGBA{0, 0, 255, 255}), monitors, 0, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Path == b.Path {
		t.Fatalf("expected unique canvas paths, both were %q", a.Path)
	}
	if a.VerificationPath != b.VerificationPath {
		t.Fatalf("expected a shared verification file")
	}

	// Last writer wins
	_, _, bl, _ := decodeBMP(t, b.VerificationPath).At(16, 16).RGBA()
	if bl < 0xf000 {
		t.Fatalf("expected verification file from the second run")
	}
}

func TestComposeToFile_IndexOutOfRangeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := ComposeToFile(solid(10, 10, red), twoMonitors(), 2, dir)
	if !errors.Is(err, ErrMonitorIndexOutOfRange) {
		t.Fatalf("expected ErrMonitorIndexOutOfRange, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files, found %d", len(entries))
	}
}

func TestComposeToFile_PersistFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := ComposeToFile(solid(10, 10, red), []MonitorRect{{Width: 20, Height: 20}}, 0, dir)
	if !errors.Is(err, ErrCanvasPersist) {
		t.Fatalf("expected ErrCanvasPersist, got %v", err)
	}
}

func TestWriteCanvas_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "preview.bmp")
	if err := WriteCanvas(path, solid(4, 4, red)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img := decodeBMP(t, path); img.Bounds().Dx() != 4 {
		t.Fatalf("expected 4 pixel wide image, got %v", img.Bounds())
	}
}

func decodeBMP(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}
