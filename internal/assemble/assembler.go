// Package assemble builds a collage from files on disk for the CLI.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/kiesman99/collage/internal/logging"
	"github.com/kiesman99/collage/internal/render"
	"github.com/kiesman99/collage/pkg/collage"
	"github.com/kiesman99/collage/pkg/raster"
)

// Options controls where and how the collage is written.
type Options struct {
	// Output is the destination file; empty writes to standard output.
	Output            string
	Format            raster.Format
	Quality           int
	Workers           int
	SkipInvalidPanels bool
}

// Assembler handles the file side of collage creation.
type Assembler struct {
	options  *Options
	renderer *render.Renderer
	logger   *log.Logger
}

// NewAssembler creates a new assembler instance
func NewAssembler(opts *Options, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{
		options:  opts,
		renderer: render.New(logger, render.WithWorkers(opts.Workers)),
		logger:   logger,
	}
}

// AssembleFiles reads the anchor and panel files, composes them with cfg and
// writes the result.
func (a *Assembler) AssembleFiles(ctx context.Context, anchorPath string, panelPaths, captions []string, cfg collage.LayoutConfig) error {
	if anchorPath == "" {
		return fmt.Errorf("no anchor image provided")
	}

	// Check if output is to terminal
	if a.options.Output == "" {
		if stat, _ := os.Stdout.Stat(); stat != nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return fmt.Errorf("didn't specify output file and standard output is a terminal")
		}
	}

	anchor, err := os.ReadFile(anchorPath)
	if err != nil {
		return fmt.Errorf("failed to read anchor: %w", err)
	}
	panels := make([][]byte, len(panelPaths))
	for i, p := range panelPaths {
		if panels[i], err = os.ReadFile(p); err != nil {
			return fmt.Errorf("failed to read panel %d: %w", i, err)
		}
	}

	a.logGeometry(cfg, len(panelPaths))

	timer := logging.Start(a.logger)
	res, err := a.renderer.Render(ctx, &render.Request{
		Anchor:            anchor,
		Panels:            panels,
		Captions:          captions,
		Config:            cfg,
		Format:            a.options.Format,
		Quality:           a.options.Quality,
		SkipInvalidPanels: a.options.SkipInvalidPanels,
	})
	if err != nil {
		return a.describe(err, anchorPath, panelPaths)
	}

	for _, i := range res.SkippedPanels {
		a.logger.Warn("skipped panel", "path", panelPaths[i])
	}
	if res.PanelsIgnored > 0 {
		a.logger.Warn("layout is full, extra panels ignored", "ignored", res.PanelsIgnored)
	}

	if err := raster.WriteFile(a.options.Output, res.ImageData); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.options.Format, err)
	}

	dest := a.options.Output
	if dest == "" {
		dest = "stdout"
	}
	timer.Done("wrote collage", "path", dest, "size", collage.Size{Width: res.Width, Height: res.Height})
	return nil
}

// logGeometry reports the resolved grid before rendering.
func (a *Assembler) logGeometry(cfg collage.LayoutConfig, numPanels int) {
	rows, cols := collage.GridShape(cfg.Layout)
	cell := collage.CellSize(cfg.OutputSize, rows, cols, cfg.Padding)
	anchor := collage.AnchorCell(cfg.Anchor, rows, cols)

	a.logger.Info("layout", "type", cfg.Layout, "grid", fmt.Sprintf("%dx%d", rows, cols), "description", cfg.Layout.Description())
	a.logger.Info("canvas", "size", cfg.OutputSize, "padding", cfg.Padding, "border", cfg.BorderWidth)
	a.logger.Info("cells", "size", cell, "image", cell.Inset(cfg.BorderWidth))
	a.logger.Info("anchor", "position", cfg.Anchor, "row", anchor.Row, "col", anchor.Col)
	a.logger.Info("panels", "given", numPanels, "capacity", collage.RequiredPanelCount(cfg.Layout))
}

// describe rewrites decode failures in terms of the file paths.
func (a *Assembler) describe(err error, anchorPath string, panelPaths []string) error {
	var imgErr *render.ImageError
	if !errors.As(err, &imgErr) {
		return err
	}
	for _, f := range imgErr.FailedImages {
		path := anchorPath
		if f.Role == render.RolePanel {
			path = panelPaths[f.Index]
		}
		a.logger.Error("can't decode image", "path", path, "err", f.Error)
	}
	return err
}
