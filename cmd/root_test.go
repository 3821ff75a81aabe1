package cmd

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiesman99/collage/pkg/raster"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
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
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutsCommand(t *testing.T) {
	out, err := run(t, "layouts", "--captions", "4")
	if err != nil {
		t.Fatalf("layouts: %v", err)
	}
	for _, want := range []string{"3x3", "featured", "top_left", "Suggested for 4 captions: 2x3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommandWritesCollage(t *testing.T) {
	dir := t.TempDir()
	anchor := filepath.Join(dir, "anchor.png")
	panel := filepath.Join(dir, "panel.png")
	output := filepath.Join(dir, "out.png")
	writePNG(t, anchor, 20, 20, color.White)
	writePNG(t, panel, 30, 10, color.Black)

	_, err := run(t, "-a", anchor, "-p", panel, "-c", "hello", "--captions",
		"--layout", "1x3", "--width", "300", "--height", "120", "-o", output)
	if err != nil {
		t.Fatalf("collage: %v", err)
	}

	img, err := raster.ReadFile(output)
	if err != nil {
		t.Fatalf("output unreadable: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 120 {
		t.Errorf("output size = %dx%d, want 300x120", b.Dx(), b.Dy())
	}
}

func TestRootCommandRejectsBadGeometry(t *testing.T) {
	dir := t.TempDir()
	anchor := filepath.Join(dir, "anchor.png")
	writePNG(t, anchor, 20, 20, color.White)

	_, err := run(t, "-a", anchor, "--width", "40", "--height", "40", "--border-width", "30",
		"-o", filepath.Join(dir, "out.png"))
	if err == nil || !strings.Contains(err.Error(), "geometry") {
		t.Errorf("err = %v, want geometry error", err)
	}
}
