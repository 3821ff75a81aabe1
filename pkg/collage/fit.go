package collage

import (
	"image"

	"github.com/disintegration/imaging"
)

// FitToCell fill-crops img to a cell whose border has been carved out: the
// result is exactly cell.Inset(borderWidth) (at least 1x1). The source is
// center-cropped to the target aspect ratio first and then scaled with a
// Lanczos filter, so memory never exceeds the source plus the target.
// img is not modified.
func FitToCell(img image.Image, cell Size, borderWidth int) *image.NRGBA {
	target := cell.Inset(borderWidth)
	target.Width, target.Height = max(target.Width, 1), max(target.Height, 1)

	b := img.Bounds()
	src := Size{Width: b.Dx(), Height: b.Dy()}
	if src.Width <= 0 || src.Height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, target.Width, target.Height))
	}

	cropped := imaging.Crop(img, cropRect(src, target).Add(b.Min))
	return imaging.Resize(cropped, target.Width, target.Height, imaging.Lanczos)
}

// cropRect returns the centered region of src, in source coordinates, that
// has the aspect ratio of target. One axis always spans src fully. Aspect
// ratios are compared in integers.
func cropRect(src, target Size) image.Rectangle {
	if src.Width*target.Height > target.Width*src.Height {
		// Relatively wider: keep full height, trim the sides.
		w := max(src.Height*target.Width/target.Height, 1)
		left := (src.Width - w) / 2
		return image.Rect(left, 0, left+w, src.Height)
	}
	h := max(src.Width*target.Height/target.Width, 1)
	top := (src.Height - h) / 2
	return image.Rect(0, top, src.Width, top+h)
}

// opaque returns img with every alpha set to fully opaque, keeping the color
// channels as they are.
func opaque(img *image.NRGBA) *image.NRGBA {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}
