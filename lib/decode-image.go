package changewallpaperlib

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions are matched case-insensitively.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg"}

func hasSupportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CheckImagePath rejects bad extensions before the file is ever opened, then
// makes sure the file is a regular file.
func CheckImagePath(path string) error {
	if !hasSupportedExtension(path) {
		return &Error{
			Kind: UnsupportedExtension,
			Err:  fmt.Errorf("only .png and .jpg/.jpeg files are supported, got [%s]", path)}
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file [%s] not found", path)
		}
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("input image [%s] is not a regular file", path)
	}
	return nil
}

// DecodeImage is the default image decoder.
func DecodeImage(path string) (image.Image, error) {
	if err := CheckImagePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &Error{
			Kind: InvalidImageFormat,
			Err:  fmt.Errorf("decoding [%s]: %w", path, err)}
	}

	if img.Bounds().Empty() {
		return nil, newError(InvalidImageFormat, "image [%s] has no pixels", path)
	}

	log.Printf("Decoded %s image [%s] %dx%d\n",
		format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
