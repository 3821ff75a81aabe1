// Package collage composes an anchor image and a sequence of panel images into
// a single grid collage.
//
// The grid shape comes from a named LayoutType; one cell (chosen by an
// AnchorPosition) always holds the anchor and the remaining cells are filled
// with panels in row-major order. Every source image is fill-cropped to its
// cell, optionally captioned and bordered, and pasted onto an opaque canvas.
//
// Composition never fails on unknown layouts, unknown anchor positions, or
// mismatched panel counts: unknown values fall back to defaults, missing
// panels become background-colored cells and extra panels are ignored.
//
//	cfg := collage.DefaultLayoutConfig()
//	cfg.Layout = collage.SuggestLayout(len(captions))
//	img := collage.Compose(anchor, panels, captions, cfg)
package collage
