package collage

import "testing"

func TestGridShape(t *testing.T) {
	tests := []struct {
		layout     LayoutType
		rows, cols int
	}{
		{Grid2x2, 2, 2},
		{Grid3x3, 3, 3},
		{Grid2x3, 2, 3},
		{Grid3x2, 3, 2},
		{Row1x3, 1, 3},
		{Row1x4, 1, 4},
		{Column3x1, 3, 1},
		{Column4x1, 4, 1},
		{Featured, 2, 2},
		{LayoutType("5x5"), 2, 2},
		{LayoutType(""), 2, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.layout), func(t *testing.T) {
			rows, cols := GridShape(tt.layout)
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("GridShape(%q) = %dx%d, want %dx%d", tt.layout, rows, cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestPanelCounts(t *testing.T) {
	for _, l := range Layouts() {
		rows, cols := GridShape(l)
		if got := PanelCount(l); got != rows*cols {
			t.Errorf("PanelCount(%s) = %d, want %d", l, got, rows*cols)
		}
		if got := RequiredPanelCount(l); got != PanelCount(l)-1 {
			t.Errorf("RequiredPanelCount(%s) = %d, want %d", l, got, PanelCount(l)-1)
		}
	}
}

func TestSuggestLayout(t *testing.T) {
	tests := []struct {
		captions int
		want     LayoutType
	}{
		{0, Row1x3},
		{1, Row1x3},
		{2, Row1x3},
		{3, Grid2x2},
		{4, Grid2x3},
		{5, Grid2x3},
		{6, Grid3x3},
		{8, Grid3x3},
		{20, Grid3x3},
	}
	for _, tt := range tests {
		if got := SuggestLayout(tt.captions); got != tt.want {
			t.Errorf("SuggestLayout(%d) = %s, want %s", tt.captions, got, tt.want)
		}
	}
}

func TestSuggestLayoutCapacity(t *testing.T) {
	prev := 0
	for n := 0; n <= 12; n++ {
		capacity := RequiredPanelCount(SuggestLayout(n))
		if capacity < prev {
			t.Errorf("capacity for %d captions = %d, smaller than %d", n, capacity, prev)
		}
		if n <= RequiredPanelCount(Grid3x3) && capacity < n {
			t.Errorf("SuggestLayout(%d) holds only %d panels", n, capacity)
		}
		prev = capacity
	}
}

func TestParseLayoutType(t *testing.T) {
	for _, l := range Layouts() {
		got, ok := ParseLayoutType(string(l))
		if !ok || got != l {
			t.Errorf("ParseLayoutType(%q) = %q, %v", l, got, ok)
		}
		if l.Description() == "" {
			t.Errorf("%s has no description", l)
		}
	}

	got, ok := ParseLayoutType("hexagon")
	if ok || got != Grid2x2 {
		t.Errorf("ParseLayoutType(hexagon) = %q, %v; want 2x2, false", got, ok)
	}
}

func TestParseAnchorPosition(t *testing.T) {
	for _, p := range AnchorPositions() {
		got, ok := ParseAnchorPosition(string(p))
		if !ok || got != p {
			t.Errorf("ParseAnchorPosition(%q) = %q, %v", p, got, ok)
		}
	}

	got, ok := ParseAnchorPosition("middle")
	if ok || got != TopLeft {
		t.Errorf("ParseAnchorPosition(middle) = %q, %v; want top_left, false", got, ok)
	}
}
