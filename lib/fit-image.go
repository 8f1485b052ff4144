package changewallpaperlib

import (
	"fmt"
	"image"
)

// Placement is where a fitted image goes, relative to the target's origin.
type Placement struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rect translates the placement into the coordinate space origin lives in.
func (p Placement) Rect(origin image.Point) image.Rectangle {
	min := origin.Add(image.Pt(p.X, p.Y))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(p.Width, p.Height))}
}

// FitAndCenter scales the source by min(dstW/srcW, dstH/srcH) so the whole
// image is visible, then centers it. Both enlarging and shrinking happen.
// Truncating division biases odd gaps toward the top-left.
func FitAndCenter(srcWidth, srcHeight, dstWidth, dstHeight int) (Placement, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return Placement{}, fmt.Errorf("invalid source size %dx%d", srcWidth, srcHeight)
	}
	if dstWidth <= 0 || dstHeight <= 0 {
		return Placement{}, fmt.Errorf("invalid target size %dx%d", dstWidth, dstHeight)
	}

	sw, sh := int64(srcWidth), int64(srcHeight)
	dw, dh := int64(dstWidth), int64(dstHeight)

	// Integer cross-multiplication gives floor(src*scale) exactly, so the
	// limiting side always lands on the target's edge.
	var w, h int64
	if dw*sh <= dh*sw {
		w = dw
		h = sh * dw / sw
	} else {
		h = dh
		w = sw * dh / sh
	}

	return Placement{
		X:      int((dw - w) / 2),
		Y:      int((dh - h) / 2),
		Width:  int(w),
		Height: int(h),
	}, nil
}
