package assemble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/kiesman99/collage/internal/render"
	"github.com/kiesman99/collage/pkg/collage"
	"github.com/kiesman99/collage/pkg/raster"
)

func writeImage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	data, err := raster.EncodeBytes(img, raster.FormatPNG, 0)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAssembleFiles(t *testing.T) {
	dir := t.TempDir()
	anchor := writeImage(t, dir, "anchor.png", 60, 40, color.White)
	panel := writeImage(t, dir, "panel.png", 40, 60, color.RGBA{0, 0, 255, 255})
	out := filepath.Join(dir, "collage.jpg")

	var logs bytes.Buffer
	a := NewAssembler(&Options{Output: out, Format: raster.FormatJPEG, Quality: 85, Workers: 2}, log.New(&logs))

	cfg := collage.DefaultLayoutConfig()
	cfg.Layout = collage.Row1x3
	cfg.OutputSize = collage.Size{Width: 300, Height: 120}

	if err := a.AssembleFiles(context.Background(), anchor, []string{panel}, []string{"hello"}, cfg); err != nil {
		t.Fatalf("AssembleFiles: %v", err)
	}

	img, err := raster.ReadFile(out)
	if err != nil {
		t.Fatalf("output unreadable: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 120 {
		t.Errorf("output size = %dx%d, want 300x120", b.Dx(), b.Dy())
	}

	for _, want := range []string{"1x3", "wrote collage", out} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

func TestAssembleFilesErrors(t *testing.T) {
	dir := t.TempDir()
	anchor := writeImage(t, dir, "anchor.png", 10, 10, color.White)
	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	cfg := collage.DefaultLayoutConfig()

	var logs bytes.Buffer
	a := NewAssembler(&Options{Output: out}, log.New(&logs))

	if err := a.AssembleFiles(context.Background(), "", nil, nil, cfg); err == nil {
		t.Error("expected error without an anchor")
	}
	if err := a.AssembleFiles(context.Background(), filepath.Join(dir, "missing.png"), nil, nil, cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}

	err := a.AssembleFiles(context.Background(), anchor, []string{broken}, nil, cfg)
	var imgErr *render.ImageError
	if !errors.As(err, &imgErr) {
		t.Fatalf("err = %v, want *render.ImageError", err)
	}
	if !strings.Contains(logs.String(), broken) {
		t.Errorf("logs do not name the broken file:\n%s", logs.String())
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output written despite failure")
	}
}

func TestAssembleFilesSkipsBrokenPanels(t *testing.T) {
	dir := t.TempDir()
	anchor := writeImage(t, dir, "anchor.png", 10, 10, color.White)
	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")

	var logs bytes.Buffer
	a := NewAssembler(&Options{Output: out, SkipInvalidPanels: true}, log.New(&logs))
	if err := a.AssembleFiles(context.Background(), anchor, []string{broken}, nil, collage.DefaultLayoutConfig()); err != nil {
		t.Fatalf("AssembleFiles: %v", err)
	}
	if !strings.Contains(logs.String(), "skipped panel") {
		t.Errorf("skip not logged:\n%s", logs.String())
	}
}

func TestDescribeWrappedImageError(t *testing.T) {
	var logs bytes.Buffer
	a := NewAssembler(&Options{}, log.New(&logs))

	imgErr := &render.ImageError{
		Message:      "Could not decode 1 of 3 images: panel 1",
		FailedImages: []render.FailedImage{{Index: 1, Role: render.RolePanel, Error: "bad header"}},
		TotalImages:  3,
	}
	wrapped := fmt.Errorf("rendering: %w", imgErr)

	if err := a.describe(wrapped, "anchor.png", []string{"a.png", "b.png"}); err != wrapped {
		t.Errorf("describe returned %v, want the original error", err)
	}
	if !strings.Contains(logs.String(), "b.png") {
		t.Errorf("logs do not name the failed panel:\n%s", logs.String())
	}
	if strings.Contains(logs.String(), "a.png") {
		t.Errorf("logs name a panel that decoded:\n%s", logs.String())
	}
}
