package raster

import "testing"

func TestRasterizeEmptyGlyph(t *testing.T) {
	got := Rasterize(nil, 1.0, 0, 0, 10, 16, 10)
	if got.Width != 5 || got.Height != 16 {
		t.Fatalf("empty glyph size = %dx%d, want 5x16", got.Width, got.Height)
	}
	for i, p := range got.Pix {
		if p != 0 {
			t.Fatalf("empty glyph pixel %d = %d, want 0", i, p)
		}
	}
}

func TestRasterizeEmptyGlyphMinWidth(t *testing.T) {
	got := Rasterize(nil, 1.0, 0, 0, 10, 16, 1)
	if got.Width != 1 {
		t.Errorf("empty glyph with tiny advance width = %d, want 1", got.Width)
	}
}

func TestRasterizeFillsSquare(t *testing.T) {
	// A 2x2 square from (1,1) to (3,3) on a 4x4 canvas, in a flipped coordinate space
	// (oy=4 puts y=0 em-unit at the bottom row).
	ops := []Op{
		MoveTo(1, 1),
		LineTo(3, 1),
		LineTo(3, 3),
		LineTo(1, 3),
		Close(),
	}
	bmp := Rasterize(ops, 1.0, 0, 4, 4, 4, 4)
	if bmp.Width != 4 || bmp.Height != 4 {
		t.Fatalf("size = %dx%d, want 4x4", bmp.Width, bmp.Height)
	}
	filled := 0
	for _, p := range bmp.Pix {
		if p == 255 {
			filled++
		}
	}
	if filled == 0 {
		t.Error("expected some filled pixels inside the square")
	}
	// The very corners should stay unfilled.
	if bmp.Pix[0] != 0 {
		t.Error("top-left corner pixel should be unfilled")
	}
}

func TestFlattenContoursKeepsShortContoursForCaller(t *testing.T) {
	ops := []Op{
		MoveTo(0, 0),
		Close(), // single-point contour, must be dropped by callers with <2 check
		MoveTo(0, 0),
		LineTo(10, 0),
		LineTo(10, 10),
		Close(),
	}
	contours := FlattenContours(ops, 1.0, 0, 0)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2 (caller filters short ones)", len(contours))
	}
	if len(contours[0]) != 1 {
		t.Errorf("first contour length = %d, want 1", len(contours[0]))
	}
	if len(contours[1]) != 3 {
		t.Errorf("second contour length = %d, want 3", len(contours[1]))
	}
}

func TestFlattenContoursQuadSegmentCount(t *testing.T) {
	ops := []Op{
		MoveTo(0, 0),
		QuadTo(5, 10, 10, 0),
	}
	contours := FlattenContours(ops, 1.0, 0, 0)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	// MoveTo contributes 1 point, the quadratic flattens to 4 more.
	if len(contours[0]) != 5 {
		t.Errorf("quad contour length = %d, want 5", len(contours[0]))
	}
}
