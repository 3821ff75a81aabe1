package collage

import (
	"image"

	"github.com/disintegration/imaging"
)

// AddBorder frames img in a cell-sized canvas of the border color, with img
// pasted at (borderWidth, borderWidth). img must already measure
// cell.Inset(borderWidth), as FitToCell guarantees. A zero width returns img.
func AddBorder(img image.Image, cell Size, borderWidth int, c RGB) image.Image {
	if borderWidth <= 0 {
		return img
	}
	framed := imaging.New(cell.Width, cell.Height, c)
	return imaging.Paste(framed, img, image.Pt(borderWidth, borderWidth))
}

// blankCell is a background-colored image for cells without a panel.
func blankCell(cell Size, borderWidth int, bg RGB) *image.NRGBA {
	target := cell.Inset(borderWidth)
	return imaging.New(max(target.Width, 1), max(target.Height, 1), bg)
}
