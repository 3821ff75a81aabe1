package collage

import (
	"image"
	"image/color"
	"testing"
)

var (
	red   = RGB{220, 20, 20}
	green = RGB{20, 200, 40}
	blue  = RGB{30, 40, 210}
	white = RGB{255, 255, 255}
)

func solid(w, h int, c RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, 0xff
	}
	return img
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func assertColor(t *testing.T, img image.Image, x, y int, want RGB, tol uint8) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	if absDiff(got.R, want.R) > tol || absDiff(got.G, want.G) > tol || absDiff(got.B, want.B) > tol {
		t.Errorf("pixel (%d,%d) = %v, want %v (tolerance %d)", x, y, got, want, tol)
	}
}

func assertSize(t *testing.T, img image.Image, w, h int) {
	t.Helper()
	if got := img.Bounds(); got.Dx() != w || got.Dy() != h {
		t.Fatalf("size = %dx%d, want %dx%d", got.Dx(), got.Dy(), w, h)
	}
}
