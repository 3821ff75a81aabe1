package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kiesman99/collage/internal/api"
	"github.com/kiesman99/collage/internal/render"
	"github.com/kiesman99/collage/pkg/collage"
	"github.com/kiesman99/collage/pkg/raster"
)

// DefaultMaxPixels bounds the canvas and every decoded input image.
const DefaultMaxPixels = 40_000_000

// Server implements api.ServerInterface.
type Server struct {
	startTime time.Time
	version   string
	defaults  collage.LayoutConfig
	renderer  *render.Renderer
	limiter   *rate.Limiter
	logger    *log.Logger
	workers   int
	maxPixels int64
}

// Option configures a Server.
type Option func(s *Server)

// WithDefaults sets the layout configuration requests start from.
func WithDefaults(cfg collage.LayoutConfig) Option {
	return func(s *Server) { s.defaults = cfg }
}

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRateLimit limits collage requests to perSecond with the given burst.
// perSecond <= 0 disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithWorkers bounds concurrent cell rendering per request.
func WithWorkers(n int) Option {
	return func(s *Server) { s.workers = n }
}

// WithMaxPixels caps width*height of the output canvas and of every input
// image header. n <= 0 disables the cap.
func WithMaxPixels(n int64) Option {
	return func(s *Server) { s.maxPixels = n }
}

// NewServer creates a new server instance
func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		startTime: time.Now(),
		version:   version,
		defaults:  collage.DefaultLayoutConfig(),
		logger:    log.Default(),
		maxPixels: DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.renderer = render.New(s.logger, render.WithWorkers(s.workers), render.WithMaxPixels(s.maxPixels))
	return s
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}
	s.writeJSON(w, http.StatusOK, response)
}

// ListLayouts returns the layout catalogue and, when captions is given, the
// suggested layout for that many captions.
func (s *Server) ListLayouts(w http.ResponseWriter, r *http.Request, params api.ListLayoutsParams) {
	requestID := requestIDFrom(r)

	response := api.LayoutsResponse{}
	for _, l := range collage.Layouts() {
		rows, cols := collage.GridShape(l)
		response.Layouts = append(response.Layouts, api.LayoutInfo{
			Type:           string(l),
			Rows:           rows,
			Cols:           cols,
			PanelCount:     collage.PanelCount(l),
			RequiredPanels: collage.RequiredPanelCount(l),
			Description:    l.Description(),
		})
	}
	for _, p := range collage.AnchorPositions() {
		response.AnchorPositions = append(response.AnchorPositions, string(p))
	}

	if params.Captions != nil {
		if *params.Captions < 0 {
			s.writeValidationErrorResponse(w, &requestID, api.FieldError{
				Field: "captions", Message: "captions must not be negative",
			})
			return
		}
		suggested := string(collage.SuggestLayout(*params.Captions))
		response.Suggested = &suggested
	}

	s.writeJSON(w, http.StatusOK, response)
}

// GetLayoutCells resolves where every cell of a layout lands on the canvas.
func (s *Server) GetLayoutCells(w http.ResponseWriter, r *http.Request, layout string, params api.GetLayoutCellsParams) {
	requestID := requestIDFrom(r)

	layoutType, ok := collage.ParseLayoutType(layout)
	if !ok {
		s.writeErrorResponse(w, http.StatusNotFound, "LAYOUT_NOT_FOUND",
			fmt.Sprintf("Unknown layout %q", layout), &requestID, nil)
		return
	}

	cfg := s.defaults
	cfg.Layout = layoutType
	setInt(&cfg.OutputSize.Width, params.Width)
	setInt(&cfg.OutputSize.Height, params.Height)
	setInt(&cfg.Padding, params.Padding)
	setInt(&cfg.BorderWidth, params.BorderWidth)
	if params.AnchorPosition != nil {
		p, ok := collage.ParseAnchorPosition(*params.AnchorPosition)
		if !ok {
			s.writeValidationErrorResponse(w, &requestID, api.FieldError{
				Field: "anchor_position", Message: fmt.Sprintf("unknown anchor position %q", *params.AnchorPosition),
			})
			return
		}
		cfg.Anchor = p
	}
	panels := collage.RequiredPanelCount(layoutType)
	if params.Panels != nil {
		if *params.Panels < 0 {
			s.writeValidationErrorResponse(w, &requestID, api.FieldError{
				Field: "panels", Message: "panels must not be negative",
			})
			return
		}
		panels = *params.Panels
	}

	if err := cfg.Validate(); err != nil {
		s.handleRenderError(w, r, err, &requestID)
		return
	}

	rows, cols := collage.GridShape(layoutType)
	cell := collage.CellSize(cfg.OutputSize, rows, cols, cfg.Padding)
	inner := cell.Inset(cfg.BorderWidth)
	response := api.CellsResponse{
		Layout:      string(layoutType),
		Rows:        rows,
		Cols:        cols,
		Width:       cfg.OutputSize.Width,
		Height:      cfg.OutputSize.Height,
		CellWidth:   cell.Width,
		CellHeight:  cell.Height,
		ImageWidth:  inner.Width,
		ImageHeight: inner.Height,
	}
	for _, p := range collage.Placements(cfg, panels) {
		placement := api.CellPlacement{
			Role:   string(p.Role),
			Row:    p.Row,
			Col:    p.Col,
			X:      p.Rect.Min.X,
			Y:      p.Rect.Min.Y,
			Width:  p.Rect.Dx(),
			Height: p.Rect.Dy(),
		}
		if p.Role == collage.RolePanel {
			idx := p.PanelIndex
			placement.PanelIndex = &idx
		}
		response.Cells = append(response.Cells, placement)
	}

	s.writeJSON(w, http.StatusOK, response)
}

// CreateCollage implements the main composition endpoint
func (s *Server) CreateCollage(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if s.limiter != nil && !s.limiter.Allow() {
		s.writeRateLimited(w, &requestID)
		return
	}

	var req api.CollageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), &requestID, nil)
			return
		}
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON",
			"Invalid JSON in request body", &requestID, nil)
		return
	}

	renderReq, fieldErrs := s.convertToRenderRequest(&req)
	if len(fieldErrs) > 0 {
		s.writeValidationErrorResponse(w, &requestID, fieldErrs...)
		return
	}

	result, err := s.renderer.Render(r.Context(), renderReq)
	if err != nil {
		s.handleRenderError(w, r, err, &requestID)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("X-Collage-Layout", string(result.Layout))
	w.Header().Set("X-Collage-Blank-Cells", strconv.Itoa(result.BlankCells))
	if len(result.SkippedPanels) > 0 {
		skipped := make([]string, len(result.SkippedPanels))
		for i, idx := range result.SkippedPanels {
			skipped[i] = strconv.Itoa(idx)
		}
		w.Header().Set("X-Collage-Skipped-Panels", strings.Join(skipped, ","))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(result.ImageData)))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.ImageData); err != nil {
		s.logger.Error("writing response", "request_id", requestID, "err", err)
		return
	}
	s.logger.Info("collage rendered", "request_id", requestID, "layout", result.Layout,
		"panels", result.PanelsUsed, "ignored", result.PanelsIgnored, "bytes", len(result.ImageData))
}

// convertToRenderRequest validates the request and applies its overrides to
// the server defaults.
func (s *Server) convertToRenderRequest(req *api.CollageRequest) (*render.Request, []api.FieldError) {
	var errs []api.FieldError
	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, api.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(req.Anchor) == 0 {
		fail("anchor", "anchor is required")
	}

	out := &render.Request{
		Anchor: req.Anchor,
		Config: s.defaults,
		Format: raster.FormatPNG,
	}
	if req.Panels != nil {
		out.Panels = *req.Panels
	}
	if req.Captions != nil {
		out.Captions = *req.Captions
	}

	if l := req.Layout; l != nil {
		cfg := &out.Config
		if l.Type != nil {
			t, ok := collage.ParseLayoutType(*l.Type)
			if !ok {
				fail("layout.type", "unknown layout %q", *l.Type)
			}
			cfg.Layout = t
		}
		if l.AnchorPosition != nil {
			p, ok := collage.ParseAnchorPosition(*l.AnchorPosition)
			if !ok {
				fail("layout.anchor_position", "unknown anchor position %q", *l.AnchorPosition)
			}
			cfg.Anchor = p
		}
		setInt(&cfg.Padding, l.Padding)
		setInt(&cfg.BorderWidth, l.BorderWidth)
		setInt(&cfg.OutputSize.Width, l.Width)
		setInt(&cfg.OutputSize.Height, l.Height)
		setInt(&cfg.CaptionFontSize, l.CaptionFontSize)
		if l.ShowCaptions != nil {
			cfg.ShowCaptions = *l.ShowCaptions
		}
		if l.AnchorLabel != nil {
			cfg.AnchorLabel = *l.AnchorLabel
		}
		if l.CaptionOpacity != nil {
			if *l.CaptionOpacity < 0 || *l.CaptionOpacity > 255 {
				fail("layout.caption_opacity", "caption_opacity must be between 0 and 255")
			} else {
				cfg.CaptionBgOpacity = uint8(*l.CaptionOpacity)
			}
		}
		colors := []struct {
			field string
			value *string
			dst   *collage.RGB
		}{
			{"layout.border_color", l.BorderColor, &cfg.BorderColor},
			{"layout.background_color", l.BackgroundColor, &cfg.BackgroundColor},
			{"layout.caption_color", l.CaptionColor, &cfg.CaptionColor},
		}
		for _, c := range colors {
			if c.value == nil {
				continue
			}
			rgb, err := collage.ParseRGB(*c.value)
			if err != nil {
				fail(c.field, "%v", err)
				continue
			}
			*c.dst = rgb
		}
	}

	if size := out.Config.OutputSize; s.maxPixels > 0 && int64(size.Width)*int64(size.Height) > s.maxPixels {
		fail("layout.width", "canvas %dx%d exceeds the limit of %d pixels", size.Width, size.Height, s.maxPixels)
	}

	if o := req.Output; o != nil {
		if o.Format != nil {
			f, err := raster.ParseFormat(string(*o.Format))
			if err != nil {
				fail("output.format", "%v", err)
			}
			out.Format = f
		}
		if o.Quality != nil {
			if *o.Quality < 1 || *o.Quality > 100 {
				fail("output.quality", "quality must be between 1 and 100")
			}
			out.Quality = *o.Quality
		}
		if o.SkipInvalidPanels != nil {
			out.SkipInvalidPanels = *o.SkipInvalidPanels
		}
	}

	return out, errs
}

// handleRenderError maps render and layout errors to responses
func (s *Server) handleRenderError(w http.ResponseWriter, r *http.Request, err error, requestID *string) {
	var imgErr *render.ImageError
	switch {
	case errors.As(err, &imgErr):
		failed := make([]api.FailedImage, len(imgErr.FailedImages))
		for i, f := range imgErr.FailedImages {
			failed[i] = api.FailedImage{Index: f.Index, Role: f.Role, Error: f.Error}
		}
		s.writeJSON(w, http.StatusUnprocessableEntity, api.ImageErrorResponse{
			Error:        "INVALID_IMAGE",
			Message:      imgErr.Message,
			FailedImages: failed,
			TotalImages:  imgErr.TotalImages,
			RequestId:    requestID,
		})

	case errors.Is(err, collage.ErrInvalidLayoutGeometry):
		s.writeErrorResponse(w, http.StatusUnprocessableEntity, "INVALID_LAYOUT_GEOMETRY",
			err.Error(), requestID, nil)

	case errors.Is(err, collage.ErrInvalidConfig):
		s.writeValidationErrorResponse(w, requestID, api.FieldError{Field: "layout", Message: err.Error()})

	case errors.Is(err, context.DeadlineExceeded):
		// middleware.Timeout answers 504 once the handler returns.
		s.logger.Warn("render timed out", "request_id", *requestID, "path", r.URL.Path)

	default:
		s.logger.Error("render failed", "request_id", *requestID, "err", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Internal server error", requestID, nil)
	}
}

// writeRateLimited answers 429 with the wait until a token is available.
func (s *Server) writeRateLimited(w http.ResponseWriter, requestID *string) {
	reservation := s.limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()

	seconds := max(int(math.Ceil(delay.Seconds())), 1)
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	s.writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED",
		"Too many collage requests", requestID, map[string]interface{}{
			"retry_after_seconds": seconds,
		})
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string, details map[string]interface{}) {
	response := api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if len(details) > 0 {
		response.Details = &details
	}

	s.writeJSON(w, statusCode, response)
}

// writeValidationErrorResponse writes a validation error response
func (s *Server) writeValidationErrorResponse(w http.ResponseWriter, requestID *string, fieldErrs ...api.FieldError) {
	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = fe.Message
	}

	response := api.ValidationErrorResponse{
		Error:            api.VALIDATIONERROR,
		Message:          strings.Join(messages, "; "),
		RequestId:        requestID,
		ValidationErrors: fieldErrs,
	}
	s.writeJSON(w, http.StatusBadRequest, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

// requestIDFrom returns the id set by chi's RequestID middleware, or a fresh
// one when the middleware is not installed.
func requestIDFrom(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return "req_" + uuid.NewString()
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
