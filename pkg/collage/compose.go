package collage

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ComposeOptions tunes how a collage is rendered. None of them change the
// output pixels.
type ComposeOptions struct {
	// Workers bounds how many cells render concurrently. 1 renders serially.
	Workers int
	Logger  *log.Logger
}

// WithWorkers sets ComposeOptions.Workers.
func WithWorkers(n int) func(o *ComposeOptions) {
	return func(o *ComposeOptions) { o.Workers = n }
}

// WithLogger sets ComposeOptions.Logger.
func WithLogger(l *log.Logger) func(o *ComposeOptions) {
	return func(o *ComposeOptions) { o.Logger = l }
}

// Compose renders anchor and panels into a new canvas of cfg.OutputSize.
// captions[i] belongs to panels[i]. Inputs are never modified and every
// pixel of the result is opaque.
func Compose(anchor image.Image, panels []image.Image, captions []string, cfg LayoutConfig) *image.RGBA {
	// Without cancellation nothing can fail.
	img, _ := ComposeContext(context.Background(), anchor, panels, captions, cfg)
	return img
}

// ComposeContext is Compose with cancellation and rendering options. The only
// error it returns is ctx.Err().
func ComposeContext(
	ctx context.Context,
	anchor image.Image,
	panels []image.Image,
	captions []string,
	cfg LayoutConfig,
	opts ...func(o *ComposeOptions),
) (*image.RGBA, error) {
	opt := ComposeOptions{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  log.Default(),
	}
	for _, apply := range opts {
		apply(&opt)
	}

	rows, cols := GridShape(cfg.Layout)
	anchorCell := AnchorCell(cfg.Anchor, rows, cols)
	cellSize := CellSize(cfg.OutputSize, rows, cols, cfg.Padding)
	opt.Logger.Debug("composing collage",
		"layout", cfg.Layout, "grid", fmt.Sprintf("%dx%d", rows, cols),
		"anchor", anchorCell, "cell", cellSize, "panels", len(panels))

	canvas := image.NewRGBA(image.Rect(0, 0, max(cfg.OutputSize.Width, 1), max(cfg.OutputSize.Height, 1)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(cfg.BackgroundColor), image.Point{}, draw.Src)

	placements := Placements(cfg, len(panels))
	cells := make([]image.Image, len(placements))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opt.Workers, 1))
	for i, p := range placements {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			cells[i] = renderCell(p, anchor, panels, captions, cellSize, cfg)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, p := range placements {
		cell := cells[i]
		draw.Draw(canvas, p.Rect, cell, cell.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

// renderCell produces the finished cell-sized image for one placement.
func renderCell(p Placement, anchor image.Image, panels []image.Image, captions []string, cellSize Size, cfg LayoutConfig) image.Image {
	var (
		cell    image.Image
		caption string
	)
	role := p.Role
	if (role == RoleAnchor && anchor == nil) || (role == RolePanel && panels[p.PanelIndex] == nil) {
		role = RoleBlank
	}
	switch role {
	case RoleAnchor:
		cell = opaque(FitToCell(anchor, cellSize, cfg.BorderWidth))
		caption = AnchorPlaceholder
		if cfg.ShowCaptions && cfg.AnchorLabel != "" {
			caption = cfg.AnchorLabel
		}
	case RolePanel:
		cell = opaque(FitToCell(panels[p.PanelIndex], cellSize, cfg.BorderWidth))
		if p.PanelIndex < len(captions) {
			caption = captions[p.PanelIndex]
		}
	default:
		cell = blankCell(cellSize, cfg.BorderWidth, cfg.BackgroundColor)
	}

	if cfg.ShowCaptions && caption != "" {
		cell = Overlay(cell, caption, cfg.CaptionFontSize, cfg.CaptionColor, cfg.CaptionBgOpacity)
	}
	if cfg.BorderWidth > 0 {
		cell = AddBorder(cell, cellSize, cfg.BorderWidth, cfg.BorderColor)
	}
	return cell
}
