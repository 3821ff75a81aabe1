package raster

import (
	"fmt"
	"strings"
)

// Format is an output encoding.
type Format int

// Output format constants
const (
	FormatPNG Format = iota
	FormatJPEG
)

// DefaultJPEGQuality is used when no quality is given.
const DefaultJPEGQuality = 90

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return FormatPNG, fmt.Errorf("unknown format: %s", s)
	}
}

func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the usual file extension, dot included.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}
