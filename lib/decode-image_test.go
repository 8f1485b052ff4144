package changewallpaperlib

import (
	"errors"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckImagePath_ExtensionBeforeExistence(t *testing.T) {
	for _, p := range []string{"missing.gif", "missing.bmp", "missing", "archive.png.zip"} {
		err := CheckImagePath(p)
		if !errors.Is(err, ErrUnsupportedExtension) {
			t.Fatalf("%s: expected ErrUnsupportedExtension, got %v", p, err)
		}
	}
}

func TestCheckImagePath_MissingFile(t *testing.T) {
	err := CheckImagePath(filepath.Join(t.TempDir(), "missing.PNG"))
	if err == nil {
		t.Fatalf("expected error for a missing file")
	}
	if KindOf(err) != 0 {
		t.Fatalf("expected a plain error, got kind %s", KindOf(err))
	}
}

func TestCheckImagePath_Directory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "folder.jpg")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckImagePath(dir); err == nil {
		t.Fatalf("expected error for a directory")
	}
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "a.PNG")
	f, err := os.Create(pngPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := png.Encode(f, solid(12, 7, red)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	jpgPath := filepath.Join(dir, "b.jpeg")
	f, err = os.Create(jpgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := jpeg.Encode(f, solid(9, 5, red), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	for p, want := range map[string][2]int{pngPath: {12, 7}, jpgPath: {9, 5}} {
		img, err := DecodeImage(p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if img.Bounds().Dx() != want[0] || img.Bounds().Dy() != want[1] {
			t.Fatalf("%s: expected %dx%d, got %v", p, want[0], want[1], img.Bounds())
		}
	}
}

func TestDecodeImage_Corrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(p, []byte("\x89PNG but not really"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := DecodeImage(p)
	if !errors.Is(err, ErrInvalidImageFormat) {
		t.Fatalf("expected ErrInvalidImageFormat, got %v", err)
	}
}

// Extension and content don't have to agree, the decoder sniffs the format
func TestDecodeImage_MislabeledFormat(t *testing.T) {
	p := filepath.Join(t.TempDir(), "actually-png.jpg")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := png.Encode(f, solid(3, 3, red)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	if _, err := DecodeImage(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
