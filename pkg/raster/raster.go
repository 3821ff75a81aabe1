// Package raster decodes input images by their magic bytes and encodes
// composed collages to PNG or JPEG.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrUnknownFormat is returned for data that matches no supported signature.
	ErrUnknownFormat = errors.New("unrecognized image format")
	// ErrTooLarge is returned when a header declares more pixels than allowed.
	ErrTooLarge = errors.New("image dimensions exceed the pixel limit")
)

var (
	sigPNG    = []byte{0x89, 0x50, 0x4E, 0x47}
	sigJPEG   = []byte{0xFF, 0xD8}
	sigGIF    = []byte("GIF8")
	sigRIFF   = []byte("RIFF")
	sigWEBP   = []byte("WEBP")
	sigBMP    = []byte("BM")
	sigTIFFLE = []byte{'I', 'I', 0x2A, 0x00}
	sigTIFFBE = []byte{'M', 'M', 0x00, 0x2A}
)

// Sniff names the image format of data, or returns "" if unknown.
func Sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, sigPNG):
		return "png"
	case bytes.HasPrefix(data, sigJPEG):
		return "jpeg"
	case bytes.HasPrefix(data, sigGIF):
		return "gif"
	case len(data) >= 12 && bytes.HasPrefix(data, sigRIFF) && bytes.Equal(data[8:12], sigWEBP):
		return "webp"
	case bytes.HasPrefix(data, sigBMP):
		return "bmp"
	case bytes.HasPrefix(data, sigTIFFLE), bytes.HasPrefix(data, sigTIFFBE):
		return "tiff"
	default:
		return ""
	}
}

// Decode detects the image format and decodes data.
func Decode(data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch Sniff(data) {
	case "png":
		return png.Decode(r)
	case "jpeg":
		return jpeg.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "webp":
		return webp.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	case "tiff":
		return tiff.Decode(r)
	default:
		return nil, ErrUnknownFormat
	}
}

// DecodeConfig reads only the image header of data and returns its
// dimensions and format name.
func DecodeConfig(data []byte) (image.Config, string, error) {
	r := bytes.NewReader(data)
	format := Sniff(data)
	var (
		cfg image.Config
		err error
	)
	switch format {
	case "png":
		cfg, err = png.DecodeConfig(r)
	case "jpeg":
		cfg, err = jpeg.DecodeConfig(r)
	case "gif":
		cfg, err = gif.DecodeConfig(r)
	case "webp":
		cfg, err = webp.DecodeConfig(r)
	case "bmp":
		cfg, err = bmp.DecodeConfig(r)
	case "tiff":
		cfg, err = tiff.DecodeConfig(r)
	default:
		return image.Config{}, "", ErrUnknownFormat
	}
	return cfg, format, err
}

// DecodeLimit decodes data like Decode but first checks the header and
// fails with ErrTooLarge when width*height exceeds maxPixels. A maxPixels
// of zero or less disables the check.
func DecodeLimit(data []byte, maxPixels int64) (image.Image, error) {
	if maxPixels > 0 {
		cfg, _, err := DecodeConfig(data)
		if err != nil {
			return nil, err
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
			return nil, fmt.Errorf("%w: %dx%d is over %d pixels", ErrTooLarge, cfg.Width, cfg.Height, maxPixels)
		}
	}
	return Decode(data)
}

// ReadFile reads and decodes the image at path.
func ReadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Encode writes img to w. quality applies to JPEG only; values outside
// 1..100 use DefaultJPEGQuality.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// EncodeBytes encodes img into a byte slice.
func EncodeBytes(img image.Image, f Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes encoded image data to filename, or to standard output
// when filename is empty.
func WriteFile(filename string, data []byte) error {
	var output io.Writer

	if filename == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer file.Close()
		output = file
	}

	_, err := output.Write(data)
	return err
}
