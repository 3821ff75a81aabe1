package collage

import "image"

// Cell is a grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Role says what a cell holds.
type Role string

const (
	RoleAnchor Role = "anchor"
	RolePanel  Role = "panel"
	RoleBlank  Role = "blank"
)

// Placement is one cell of a composed grid.
type Placement struct {
	Cell
	Role Role
	// PanelIndex indexes the panel slice for RolePanel and is -1 otherwise.
	PanelIndex int
	Rect       image.Rectangle
}

// AnchorCell resolves an anchor position to grid coordinates. Centers use
// floor division of the row and column counts, so on an even axis they pick
// the lower (or right) of the two middle cells: Center on 2x2 is (1, 1).
// Unknown positions resolve to the top-left cell.
func AnchorCell(pos AnchorPosition, rows, cols int) Cell {
	switch pos {
	case TopLeft:
		return Cell{0, 0}
	case TopRight:
		return Cell{0, cols - 1}
	case BottomLeft:
		return Cell{rows - 1, 0}
	case BottomRight:
		return Cell{rows - 1, cols - 1}
	case CenterLeft:
		return Cell{rows / 2, 0}
	case CenterRight:
		return Cell{rows / 2, cols - 1}
	case Center:
		return Cell{rows / 2, cols / 2}
	default:
		return Cell{0, 0}
	}
}

// CellSize returns the uniform cell size for a grid with padding between the
// cells and around the canvas edge. Dimensions are floored and never drop
// below one pixel.
func CellSize(canvas Size, rows, cols, padding int) Size {
	rows, cols = max(rows, 1), max(cols, 1)
	w := (canvas.Width - padding*(cols+1)) / cols
	h := (canvas.Height - padding*(rows+1)) / rows
	return Size{Width: max(w, 1), Height: max(h, 1)}
}

// CellOrigin returns the top-left pixel of a cell.
func CellOrigin(c Cell, size Size, padding int) image.Point {
	return image.Point{
		X: padding + c.Col*(size.Width+padding),
		Y: padding + c.Row*(size.Height+padding),
	}
}

// CellRect returns the pixel rectangle of a cell.
func CellRect(c Cell, size Size, padding int) image.Rectangle {
	o := CellOrigin(c, size, padding)
	return image.Rect(o.X, o.Y, o.X+size.Width, o.Y+size.Height)
}

// Placements lists every cell of cfg's grid in row-major order and assigns
// it the anchor, the next of numPanels panels, or nothing.
func Placements(cfg LayoutConfig, numPanels int) []Placement {
	rows, cols := GridShape(cfg.Layout)
	anchor := AnchorCell(cfg.Anchor, rows, cols)
	size := CellSize(cfg.OutputSize, rows, cols, cfg.Padding)

	out := make([]Placement, 0, rows*cols)
	next := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := Cell{Row: row, Col: col}
			p := Placement{Cell: c, PanelIndex: -1, Rect: CellRect(c, size, cfg.Padding)}
			switch {
			case c == anchor:
				p.Role = RoleAnchor
			case next < numPanels:
				p.Role = RolePanel
				p.PanelIndex = next
				next++
			default:
				p.Role = RoleBlank
			}
			out = append(out, p)
		}
	}
	return out
}
