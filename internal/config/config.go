// Package config turns viper settings into collage configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kiesman99/collage/pkg/collage"
)

// EnvPrefix prefixes every environment variable, e.g. COLLAGE_BORDER_WIDTH.
const EnvPrefix = "COLLAGE"

// Layout keys.
const (
	KeyLayout          = "layout"
	KeyAnchorPosition  = "anchor-position"
	KeyPadding         = "padding"
	KeyBorderWidth     = "border-width"
	KeyBorderColor     = "border-color"
	KeyBackgroundColor = "background-color"
	KeyWidth           = "width"
	KeyHeight          = "height"
	KeyCaptions        = "captions"
	KeyCaptionFontSize = "caption-font-size"
	KeyCaptionColor    = "caption-color"
	KeyCaptionOpacity  = "caption-opacity"
	KeyAnchorLabel     = "anchor-label"
	KeyWorkers         = "workers"
	KeyFormat          = "format"
	KeyQuality         = "quality"
)

// Server keys.
const (
	KeyServerBind      = "server.bind"
	KeyServerPort      = "server.port"
	KeyServerTimeout   = "server.timeout"
	KeyServerRateLimit = "server.rate-limit"
	KeyServerBurst     = "server.burst"
	KeyServerMaxBody   = "server.max-body"
	KeyServerMaxPixels = "server.max-pixels"
)

// Setup configures env handling and seeds defaults on v.
func Setup(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// SetDefaults seeds every key with the package defaults.
func SetDefaults(v *viper.Viper) {
	d := collage.DefaultLayoutConfig()
	v.SetDefault(KeyLayout, string(d.Layout))
	v.SetDefault(KeyAnchorPosition, string(d.Anchor))
	v.SetDefault(KeyPadding, d.Padding)
	v.SetDefault(KeyBorderWidth, d.BorderWidth)
	v.SetDefault(KeyBorderColor, d.BorderColor.String())
	v.SetDefault(KeyBackgroundColor, d.BackgroundColor.String())
	v.SetDefault(KeyWidth, d.OutputSize.Width)
	v.SetDefault(KeyHeight, d.OutputSize.Height)
	v.SetDefault(KeyCaptions, d.ShowCaptions)
	v.SetDefault(KeyCaptionFontSize, d.CaptionFontSize)
	v.SetDefault(KeyCaptionColor, d.CaptionColor.String())
	v.SetDefault(KeyCaptionOpacity, int(d.CaptionBgOpacity))
	v.SetDefault(KeyAnchorLabel, d.AnchorLabel)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyFormat, "png")
	v.SetDefault(KeyQuality, 90)

	v.SetDefault(KeyServerBind, "localhost")
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyServerTimeout, 30*time.Second)
	v.SetDefault(KeyServerRateLimit, 0.0)
	v.SetDefault(KeyServerBurst, 5)
	v.SetDefault(KeyServerMaxBody, int64(32<<20))
	v.SetDefault(KeyServerMaxPixels, int64(40_000_000))
}

// LayoutConfig reads a collage.LayoutConfig from v. Unknown layout or anchor
// names fall back to the defaults and are reported as warnings; malformed
// colours and an out-of-range opacity are errors.
func LayoutConfig(v *viper.Viper) (collage.LayoutConfig, []string, error) {
	var warnings []string
	cfg := collage.DefaultLayoutConfig()

	if name := v.GetString(KeyLayout); name != "" {
		l, ok := collage.ParseLayoutType(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown layout %q, using %s", name, l))
		}
		cfg.Layout = l
	}
	if name := v.GetString(KeyAnchorPosition); name != "" {
		p, ok := collage.ParseAnchorPosition(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown anchor position %q, using %s", name, p))
		}
		cfg.Anchor = p
	}

	cfg.Padding = v.GetInt(KeyPadding)
	cfg.BorderWidth = v.GetInt(KeyBorderWidth)
	cfg.OutputSize = collage.Size{Width: v.GetInt(KeyWidth), Height: v.GetInt(KeyHeight)}
	cfg.ShowCaptions = v.GetBool(KeyCaptions)
	cfg.CaptionFontSize = v.GetInt(KeyCaptionFontSize)
	cfg.AnchorLabel = v.GetString(KeyAnchorLabel)

	opacity := v.GetInt(KeyCaptionOpacity)
	if opacity < 0 || opacity > 255 {
		return cfg, warnings, fmt.Errorf("%s: %d is outside 0..255", KeyCaptionOpacity, opacity)
	}
	cfg.CaptionBgOpacity = uint8(opacity)

	colors := []struct {
		key string
		dst *collage.RGB
	}{
		{KeyBorderColor, &cfg.BorderColor},
		{KeyBackgroundColor, &cfg.BackgroundColor},
		{KeyCaptionColor, &cfg.CaptionColor},
	}
	for _, c := range colors {
		rgb, err := collage.ParseRGB(v.GetString(c.key))
		if err != nil {
			return cfg, warnings, fmt.Errorf("%s: %w", c.key, err)
		}
		*c.dst = rgb
	}

	return cfg, warnings, nil
}
