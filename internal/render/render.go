// Package render turns encoded input images into an encoded collage. It is
// shared by the CLI and the HTTP server.
package render

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/kiesman99/collage/pkg/collage"
	"github.com/kiesman99/collage/pkg/raster"
)

// Image roles reported in FailedImage.
const (
	RoleAnchor = "anchor"
	RolePanel  = "panel"
)

// Request contains everything needed for one collage.
type Request struct {
	Anchor   []byte
	Panels   [][]byte
	Captions []string
	Config   collage.LayoutConfig
	Format   raster.Format
	// Quality applies to JPEG output only.
	Quality int
	// SkipInvalidPanels drops panels that fail to decode, together with
	// their captions, instead of failing the request.
	SkipInvalidPanels bool
}

// Result contains the encoded collage and a summary of how the grid was
// filled.
type Result struct {
	ImageData     []byte
	Width         int
	Height        int
	Layout        collage.LayoutType
	Rows          int
	Cols          int
	PanelsUsed    int
	PanelsIgnored int
	BlankCells    int
	SkippedPanels []int
	ContentType   string
}

// ImageError reports input images that could not be decoded.
type ImageError struct {
	Message      string
	FailedImages []FailedImage
	TotalImages  int
}

func (e *ImageError) Error() string {
	return e.Message
}

// FailedImage is a single undecodable input.
type FailedImage struct {
	// Index is the panel index, or -1 for the anchor.
	Index int
	Role  string
	Error string
}

// Renderer renders collage requests.
type Renderer struct {
	logger    *log.Logger
	workers   int
	maxPixels int64
}

// Option configures a Renderer.
type Option func(r *Renderer)

// WithWorkers bounds concurrent cell rendering. Zero or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithMaxPixels rejects input images whose header declares more than n
// pixels before they are decoded. Zero or less disables the check.
func WithMaxPixels(n int64) Option {
	return func(r *Renderer) { r.maxPixels = n }
}

// New creates a renderer logging to logger, or to log.Default() when nil.
func New(logger *log.Logger, opts ...Option) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	r := &Renderer{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render validates the layout, decodes the inputs, composes and encodes the
// collage. Layout errors wrap collage.ErrInvalidConfig or
// collage.ErrInvalidLayoutGeometry; decode failures are *ImageError.
func (r *Renderer) Render(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	anchor, panels, captions, skipped, err := r.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	var composeOpts []func(o *collage.ComposeOptions)
	composeOpts = append(composeOpts, collage.WithLogger(r.logger))
	if r.workers > 0 {
		composeOpts = append(composeOpts, collage.WithWorkers(r.workers))
	}
	img, err := collage.ComposeContext(ctx, anchor, panels, captions, req.Config, composeOpts...)
	if err != nil {
		return nil, err
	}

	data, err := raster.EncodeBytes(img, req.Format, req.Quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collage: %w", err)
	}

	rows, cols := collage.GridShape(req.Config.Layout)
	capacity := collage.RequiredPanelCount(req.Config.Layout)
	used := min(len(panels), capacity)

	return &Result{
		ImageData:     data,
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Layout:        req.Config.Layout,
		Rows:          rows,
		Cols:          cols,
		PanelsUsed:    used,
		PanelsIgnored: len(panels) - used,
		BlankCells:    capacity - used,
		SkippedPanels: skipped,
		ContentType:   req.Format.ContentType(),
	}, nil
}

// decode decodes the anchor and panels concurrently. Panel order and the
// caption alignment are preserved when broken panels are skipped.
func (r *Renderer) decode(ctx context.Context, req *Request) (image.Image, []image.Image, []string, []int, error) {
	var anchor image.Image
	var anchorErr error
	decoded := make([]image.Image, len(req.Panels))
	panelErrs := make([]error, len(req.Panels))

	eg, egCtx := errgroup.WithContext(ctx)
	if r.workers > 0 {
		eg.SetLimit(r.workers)
	}
	eg.Go(func() error {
		anchor, anchorErr = r.decodeInput(req.Anchor)
		return nil
	})
	for i, data := range req.Panels {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			decoded[i], panelErrs[i] = r.decodeInput(data)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, nil, nil, err
	}

	var failed []FailedImage
	if anchorErr != nil {
		failed = append(failed, FailedImage{Index: -1, Role: RoleAnchor, Error: anchorErr.Error()})
	}
	for i, err := range panelErrs {
		if err != nil {
			failed = append(failed, FailedImage{Index: i, Role: RolePanel, Error: err.Error()})
		}
	}

	total := len(req.Panels) + 1
	if anchorErr != nil || (len(failed) > 0 && !req.SkipInvalidPanels) {
		return nil, nil, nil, nil, &ImageError{
			Message:      describeFailures(failed, total),
			FailedImages: failed,
			TotalImages:  total,
		}
	}

	if len(failed) == 0 {
		return anchor, decoded, req.Captions, nil, nil
	}

	panels := make([]image.Image, 0, len(decoded))
	captions := make([]string, 0, len(req.Captions))
	var skipped []int
	for i, img := range decoded {
		if panelErrs[i] != nil {
			skipped = append(skipped, i)
			r.logger.Warn("skipping undecodable panel", "index", i, "err", panelErrs[i])
			continue
		}
		panels = append(panels, img)
		if i < len(req.Captions) {
			captions = append(captions, req.Captions[i])
		}
	}
	return anchor, panels, captions, skipped, nil
}

func (r *Renderer) decodeInput(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	return raster.DecodeLimit(data, r.maxPixels)
}

func describeFailures(failed []FailedImage, total int) string {
	names := make([]string, len(failed))
	for i, f := range failed {
		if f.Role == RoleAnchor {
			names[i] = "anchor"
		} else {
			names[i] = fmt.Sprintf("panel %d", f.Index)
		}
	}
	return fmt.Sprintf("Could not decode %d of %d images: %s", len(failed), total, strings.Join(names, ", "))
}
