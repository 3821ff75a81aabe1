package collage

import (
	"image"
	"testing"
)

func TestAddBorderZeroWidthIsNoop(t *testing.T) {
	src := solid(10, 10, red)
	if got := AddBorder(src, Size{10, 10}, 0, white); got != image.Image(src) {
		t.Error("AddBorder with zero width returned a new image")
	}
}

func TestAddBorderFramesImage(t *testing.T) {
	cell := Size{528, 528}
	inner := FitToCell(solid(400, 300, blue), cell, 4)
	assertSize(t, inner, 520, 520)

	got := AddBorder(inner, cell, 4, white)
	assertSize(t, got, 528, 528)

	for _, p := range []image.Point{{0, 0}, {3, 3}, {527, 0}, {0, 527}, {527, 527}, {524, 260}} {
		assertColor(t, got, p.X, p.Y, white, 0)
	}
	for _, p := range []image.Point{{4, 4}, {523, 523}, {264, 264}} {
		assertColor(t, got, p.X, p.Y, blue, 2)
	}
}
