package collage

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// captionFontFiles are tried in order before falling back to the embedded
// Go Regular font.
var captionFontFiles = []string{
	"Helvetica.ttc",
	"DejaVuSans.ttf",
	"Arial.ttf",
	"LiberationSans-Regular.ttf",
}

var (
	captionFontOnce sync.Once
	captionFont     *opentype.Font
)

// loadCaptionFont returns the parsed caption font, or nil if even the
// embedded font fails to parse. The result is computed once.
func loadCaptionFont() *opentype.Font {
	captionFontOnce.Do(func() {
		for _, name := range captionFontFiles {
			path, err := findfont.Find(name)
			if err != nil {
				continue
			}
			if f := parseFontFile(path); f != nil {
				captionFont = f
				return
			}
		}
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			captionFont = f
		}
	})
	return captionFont
}

func parseFontFile(path string) *opentype.Font {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if strings.HasSuffix(strings.ToLower(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil || coll.NumFonts() == 0 {
			return nil
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil
		}
		return f
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil
	}
	return f
}

// captionFace returns a face of the given pixel size. Faces are not safe for
// concurrent use, so callers get a fresh one per caption.
func captionFace(size int) font.Face {
	f := loadCaptionFont()
	if f == nil || size <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
