package collage

// LayoutType identifies a supported grid shape.
type LayoutType string

// Supported layouts.
const (
	Grid2x2   LayoutType = "2x2"
	Grid3x3   LayoutType = "3x3"
	Grid2x3   LayoutType = "2x3"
	Grid3x2   LayoutType = "3x2"
	Row1x3    LayoutType = "1x3"
	Row1x4    LayoutType = "1x4"
	Column3x1 LayoutType = "3x1"
	Column4x1 LayoutType = "4x1"
	// Featured reserves a large-anchor arrangement. It currently renders as 2x2.
	Featured LayoutType = "featured"
)

// AnchorPosition names the grid cell that holds the anchor image.
type AnchorPosition string

// Supported anchor positions.
const (
	TopLeft     AnchorPosition = "top_left"
	TopRight    AnchorPosition = "top_right"
	BottomLeft  AnchorPosition = "bottom_left"
	BottomRight AnchorPosition = "bottom_right"
	CenterLeft  AnchorPosition = "center_left"
	CenterRight AnchorPosition = "center_right"
	Center      AnchorPosition = "center"
)

var layouts = []LayoutType{
	Grid2x2, Grid3x3, Grid2x3, Grid3x2, Row1x3, Row1x4, Column3x1, Column4x1, Featured,
}

var anchorPositions = []AnchorPosition{
	TopLeft, TopRight, BottomLeft, BottomRight, CenterLeft, CenterRight, Center,
}

// Layouts returns every supported layout in catalogue order.
func Layouts() []LayoutType {
	out := make([]LayoutType, len(layouts))
	copy(out, layouts)
	return out
}

// AnchorPositions returns every supported anchor position.
func AnchorPositions() []AnchorPosition {
	out := make([]AnchorPosition, len(anchorPositions))
	copy(out, anchorPositions)
	return out
}

// ParseLayoutType reports whether s names a supported layout.
// Unknown names return Grid2x2 and false.
func ParseLayoutType(s string) (LayoutType, bool) {
	for _, l := range layouts {
		if string(l) == s {
			return l, true
		}
	}
	return Grid2x2, false
}

// ParseAnchorPosition reports whether s names a supported anchor position.
// Unknown names return TopLeft and false.
func ParseAnchorPosition(s string) (AnchorPosition, bool) {
	for _, p := range anchorPositions {
		if string(p) == s {
			return p, true
		}
	}
	return TopLeft, false
}

// GridShape returns the rows and columns of a layout.
// Unknown layouts fall back to 2x2.
func GridShape(l LayoutType) (rows, cols int) {
	switch l {
	case Grid2x2:
		return 2, 2
	case Grid3x3:
		return 3, 3
	case Grid2x3:
		return 2, 3
	case Grid3x2:
		return 3, 2
	case Row1x3:
		return 1, 3
	case Row1x4:
		return 1, 4
	case Column3x1:
		return 3, 1
	case Column4x1:
		return 4, 1
	case Featured:
		return 2, 2
	default:
		return 2, 2
	}
}

// PanelCount returns the number of cells in a layout, anchor included.
func PanelCount(l LayoutType) int {
	rows, cols := GridShape(l)
	return rows * cols
}

// RequiredPanelCount returns how many non-anchor panels fill a layout.
func RequiredPanelCount(l LayoutType) int {
	return PanelCount(l) - 1
}

// SuggestLayout picks the smallest layout whose panel capacity holds
// numCaptions panels. Counts above the largest grid get 3x3; the surplus is
// dropped at composition time.
func SuggestLayout(numCaptions int) LayoutType {
	switch {
	case numCaptions <= 2:
		return Row1x3
	case numCaptions <= 3:
		return Grid2x2
	case numCaptions <= 5:
		return Grid2x3
	default:
		return Grid3x3
	}
}

// Description returns a human readable label for the layout.
func (l LayoutType) Description() string {
	switch l {
	case Grid2x2:
		return "2x2 Grid (4 panels)"
	case Grid3x3:
		return "3x3 Grid (9 panels)"
	case Grid2x3:
		return "2x3 Grid (6 panels)"
	case Grid3x2:
		return "3x2 Grid (6 panels)"
	case Row1x3:
		return "Horizontal Row (3 panels)"
	case Row1x4:
		return "Horizontal Row (4 panels)"
	case Column3x1:
		return "Vertical Column (3 panels)"
	case Column4x1:
		return "Vertical Column (4 panels)"
	case Featured:
		return "Featured (4 panels)"
	default:
		return string(l)
	}
}

func (l LayoutType) String() string { return string(l) }

func (p AnchorPosition) String() string { return string(p) }
