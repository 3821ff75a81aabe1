package collage

import (
	"image"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	captionPadding     = 6
	captionBandExtra   = 5
	captionSideMargin  = 20
	captionMinTruncLen = 10
	captionEllipsis    = "..."
)

// Renderable reports whether a caption would be drawn. Empty captions and
// captions starting with "[" are placeholders.
func Renderable(caption string) bool {
	return caption != "" && !strings.HasPrefix(caption, "[")
}

// TruncateCaption shortens caption until width(caption) fits maxWidth by
// repeatedly replacing its last four runes with "...". It stops once the
// caption is ten runes or shorter, fitting or not.
func TruncateCaption(caption string, maxWidth int, width func(string) int) string {
	runes := []rune(caption)
	for width(string(runes)) > maxWidth && len(runes) > captionMinTruncLen {
		runes = append(runes[:len(runes)-4], []rune(captionEllipsis)...)
	}
	return string(runes)
}

// Overlay draws caption centered in a translucent black band along the bottom
// of img and returns the result as a new opaque image. Placeholder captions
// return img itself.
func Overlay(img image.Image, caption string, fontSize int, textColor RGB, bgOpacity uint8) image.Image {
	if !Renderable(caption) {
		return img
	}

	dst := opaque(imaging.Clone(img))
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	face := captionFace(fontSize)
	defer face.Close()

	caption = TruncateCaption(caption, w-captionSideMargin, func(s string) int {
		b, _ := font.BoundString(face, s)
		return (b.Max.X - b.Min.X).Ceil()
	})
	bounds, _ := font.BoundString(face, caption)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	bandTop := h - textH - captionPadding*2 - captionBandExtra
	band := image.Rect(0, bandTop, w, h)
	draw.Draw(dst, band, image.NewUniform(RGB{}.NRGBA(bgOpacity)), image.Point{}, draw.Over)

	// Dot is the baseline origin; shift by the ink bounds so the ink box
	// starts at (textX, bandTop+padding).
	textX := (w - textW) / 2
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(textX) - bounds.Min.X,
			Y: fixed.I(bandTop+captionPadding) - bounds.Min.Y,
		},
	}
	d.DrawString(caption)

	return dst
}
