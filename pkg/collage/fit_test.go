package collage

import (
	"fmt"
	"image"
	"testing"
)

func TestFitToCellExactSize(t *testing.T) {
	sources := map[string]Size{
		"square":    {300, 300},
		"portrait":  {240, 610},
		"landscape": {800, 170},
		"tiny":      {3, 2},
	}
	cells := map[string]Size{
		"square":    {120, 120},
		"portrait":  {90, 160},
		"landscape": {200, 70},
	}

	for sn, src := range sources {
		for cn, cell := range cells {
			for _, border := range []int{0, 4} {
				t.Run(fmt.Sprintf("%s into %s border %d", sn, cn, border), func(t *testing.T) {
					got := FitToCell(solid(src.Width, src.Height, red), cell, border)
					assertSize(t, got, cell.Width-2*border, cell.Height-2*border)
					if got.Bounds().Min != (image.Point{}) {
						t.Errorf("bounds start at %v, want origin", got.Bounds().Min)
					}
				})
			}
		}
	}
}

func TestFitToCellBorderInset(t *testing.T) {
	cell := CellSize(Size{1080, 1080}, 2, 2, 8)
	got := FitToCell(solid(1024, 768, green), cell, 4)
	assertSize(t, got, 520, 520)
}

func TestFitToCellClampsTarget(t *testing.T) {
	got := FitToCell(solid(50, 50, red), Size{6, 6}, 5)
	assertSize(t, got, 1, 1)
}

func TestCropRectKeepsTargetAspect(t *testing.T) {
	sizes := []Size{{300, 300}, {240, 610}, {800, 170}, {1, 999}, {999, 1}, {1024, 768}}
	for _, src := range sizes {
		for _, target := range sizes {
			r := cropRect(src, target)
			if !r.In(image.Rect(0, 0, src.Width, src.Height)) {
				t.Errorf("cropRect(%v, %v) = %v leaves the source", src, target, r)
			}
			if r.Dx() != src.Width && r.Dy() != src.Height {
				t.Errorf("cropRect(%v, %v) = %v spans neither axis", src, target, r)
			}
			// Only the floor of the trimmed axis may break proportionality.
			skew := r.Dx()*target.Height - r.Dy()*target.Width
			if skew < 0 {
				skew = -skew
			}
			if skew > max(target.Width, target.Height) {
				t.Errorf("cropRect(%v, %v) = %v is off aspect: skew %d", src, target, r, skew)
			}
		}
	}
}

func TestCropRectCentered(t *testing.T) {
	if got, want := cropRect(Size{300, 100}, Size{50, 50}), image.Rect(100, 0, 200, 100); got != want {
		t.Errorf("wide source: cropRect = %v, want %v", got, want)
	}
	if got, want := cropRect(Size{100, 301}, Size{50, 50}), image.Rect(0, 100, 100, 200); got != want {
		t.Errorf("tall source: cropRect = %v, want %v", got, want)
	}
	if got, want := cropRect(Size{1, 1000}, Size{256, 256}), image.Rect(0, 499, 1, 500); got != want {
		t.Errorf("needle source: cropRect = %v, want %v", got, want)
	}
}

func TestFitToCellExtremeAspect(t *testing.T) {
	for _, src := range []Size{{1, 1000}, {1000, 1}, {1, 100000}} {
		got := FitToCell(solid(src.Width, src.Height, blue), Size{256, 256}, 0)
		assertSize(t, got, 256, 256)
		assertColor(t, got, 128, 128, blue, 4)
	}
}

func TestFitToCellOffsetBounds(t *testing.T) {
	src := solid(300, 100, red)
	sub := src.SubImage(image.Rect(100, 0, 200, 100))
	for x := 100; x < 200; x++ {
		for y := 0; y < 100; y++ {
			i := src.PixOffset(x, y)
			src.Pix[i], src.Pix[i+1], src.Pix[i+2] = green.R, green.G, green.B
		}
	}
	got := FitToCell(sub, Size{40, 20}, 0)
	assertSize(t, got, 40, 20)
	assertColor(t, got, 2, 2, green, 4)
	assertColor(t, got, 37, 17, green, 4)
}

func TestFitToCellCropsCenter(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 100))
	for x := 0; x < 300; x++ {
		c := red
		switch {
		case x >= 200:
			c = blue
		case x >= 100:
			c = green
		}
		for y := 0; y < 100; y++ {
			i := src.PixOffset(x, y)
			src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = c.R, c.G, c.B, 0xff
		}
	}

	got := FitToCell(src, Size{50, 50}, 0)
	assertSize(t, got, 50, 50)
	assertColor(t, got, 25, 25, green, 4)
	assertColor(t, got, 10, 10, green, 8)
	assertColor(t, got, 40, 40, green, 8)
}

func TestFitToCellDoesNotModifySource(t *testing.T) {
	src := solid(64, 32, blue)
	src.Pix[3] = 0x10
	before := append([]byte(nil), src.Pix...)

	FitToCell(src, Size{20, 20}, 2)

	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatalf("source pixel byte %d changed", i)
		}
	}
}

func TestFitToCellEmptySource(t *testing.T) {
	got := FitToCell(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Size{10, 12}, 1)
	assertSize(t, got, 8, 10)
}
