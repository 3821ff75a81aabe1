package collage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports a LayoutConfig field outside its allowed range.
	ErrInvalidConfig = errors.New("invalid layout config")
	// ErrInvalidLayoutGeometry reports padding or borders that leave no room
	// for a cell image.
	ErrInvalidLayoutGeometry = errors.New("invalid layout geometry")
)

// AnchorPlaceholder is the caption carried by the anchor cell when no anchor
// label is configured. Bracketed captions are never rendered.
const AnchorPlaceholder = "[anchor]"

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Inset shrinks both dimensions by 2*n.
func (s Size) Inset(n int) Size {
	return Size{Width: s.Width - 2*n, Height: s.Height - 2*n}
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// LayoutConfig controls one composition. It is treated as a value and never
// modified by the package.
type LayoutConfig struct {
	Layout           LayoutType     `json:"layout_type"`
	Anchor           AnchorPosition `json:"anchor_position"`
	Padding          int            `json:"padding"`
	BorderWidth      int            `json:"border_width"`
	BorderColor      RGB            `json:"border_color"`
	BackgroundColor  RGB            `json:"background_color"`
	OutputSize       Size           `json:"output_size"`
	ShowCaptions     bool           `json:"show_captions"`
	CaptionFontSize  int            `json:"caption_font_size"`
	CaptionColor     RGB            `json:"caption_color"`
	CaptionBgOpacity uint8          `json:"caption_bg_opacity"`
	// AnchorLabel is drawn on the anchor cell when captions are shown.
	// Empty keeps the anchor uncaptioned.
	AnchorLabel string `json:"anchor_label,omitempty"`
}

// DefaultLayoutConfig returns the default configuration.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Layout:           Grid2x2,
		Anchor:           TopLeft,
		Padding:          4,
		BorderWidth:      2,
		BorderColor:      RGB{255, 255, 255},
		BackgroundColor:  RGB{30, 30, 30},
		OutputSize:       Size{Width: 1080, Height: 1080},
		ShowCaptions:     false,
		CaptionFontSize:  14,
		CaptionColor:     RGB{255, 255, 255},
		CaptionBgOpacity: 180,
	}
}

// Validate checks the configuration ranges and that every cell leaves at
// least one pixel for its image once padding and borders are taken out.
// Compose does not require a valid config; it clamps instead.
func (c LayoutConfig) Validate() error {
	if c.Padding < 0 {
		return fmt.Errorf("%w: padding %d is negative", ErrInvalidConfig, c.Padding)
	}
	if c.BorderWidth < 0 {
		return fmt.Errorf("%w: border width %d is negative", ErrInvalidConfig, c.BorderWidth)
	}
	if c.OutputSize.Width <= 0 || c.OutputSize.Height <= 0 {
		return fmt.Errorf("%w: output size %s must be positive", ErrInvalidConfig, c.OutputSize)
	}
	if c.ShowCaptions && c.CaptionFontSize <= 0 {
		return fmt.Errorf("%w: caption font size %d must be positive", ErrInvalidConfig, c.CaptionFontSize)
	}

	rows, cols := GridShape(c.Layout)
	w := c.OutputSize.Width - c.Padding*(cols+1)
	h := c.OutputSize.Height - c.Padding*(rows+1)
	if w < cols || h < rows {
		return fmt.Errorf("%w: padding %d leaves no room for a %dx%d grid in %s",
			ErrInvalidLayoutGeometry, c.Padding, rows, cols, c.OutputSize)
	}
	target := Size{Width: w / cols, Height: h / rows}.Inset(c.BorderWidth)
	if target.Width <= 0 || target.Height <= 0 {
		return fmt.Errorf("%w: border width %d leaves %s for each image",
			ErrInvalidLayoutGeometry, c.BorderWidth, target)
	}
	return nil
}
