// Package raster rasterizes glyph outlines — sequences of move/line/quad/
// cubic/close path commands in font em-units — into 8-bit grayscale
// buffers, using a fixed, deterministic Bezier-flattening and scanline
// even-odd fill. Every rounding direction and segment count is fixed so
// that output is byte-exact across runs, matching the spec's reference
// implementation rather than trading fidelity for a higher-quality curve.
package raster

import "github.com/hellsge/font-tool-typescript-sub001/internal/imageops"

// OpKind is the kind of a single path command.
type OpKind int

const (
	OpMoveTo OpKind = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

// Op is one path command in font em-unit space. Quad uses X1,Y1 as the
// control point and X,Y as the endpoint; Cubic uses X1,Y1,X2,Y2 as the two
// control points and X,Y as the endpoint.
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64
	X, Y           float64
}

// MoveTo, LineTo, QuadTo, CubicTo, Close build an Op of the matching kind.
func MoveTo(x, y float64) Op  { return Op{Kind: OpMoveTo, X: x, Y: y} }
func LineTo(x, y float64) Op  { return Op{Kind: OpLineTo, X: x, Y: y} }
func Close() Op               { return Op{Kind: OpClose} }

func QuadTo(x1, y1, x, y float64) Op {
	return Op{Kind: OpQuadTo, X1: x1, Y1: y1, X: x, Y: y}
}

func CubicTo(x1, y1, x2, y2, x, y float64) Op {
	return Op{Kind: OpCubicTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y}
}

type point struct{ x, y float64 }

type edge struct {
	x1, y1, x2, y2 float64
}

// Rasterize renders path commands in font em-unit space into a width x
// height 8-bit grayscale buffer. scale converts em-units to pixels; ox, oy
// translate the result so the glyph sits inside the target rectangle. If
// ops is empty, the result is an all-zero buffer sized
// max(1, advance/2) x height.
func Rasterize(ops []Op, scale, ox, oy float64, width, height int, advance int) *imageops.Bitmap {
	if len(ops) == 0 {
		w := advance / 2
		if w < 1 {
			w = 1
		}
		return imageops.NewBitmap(w, height)
	}

	transform := func(x, y float64) point {
		return point{x: scale*x + ox, y: oy - scale*y}
	}

	var edges []edge
	var cur, start point
	have := false
	addLine := func(a, b point) {
		if a.y == b.y {
			return
		}
		edges = append(edges, edge{a.x, a.y, b.x, b.y})
	}

	for _, op := range ops {
		switch op.Kind {
		case OpMoveTo:
			if have {
				addLine(cur, start)
			}
			cur = transform(op.X, op.Y)
			start = cur
			have = true
		case OpLineTo:
			p := transform(op.X, op.Y)
			addLine(cur, p)
			cur = p
		case OpQuadTo:
			c := transform(op.X1, op.Y1)
			e := transform(op.X, op.Y)
			p0 := cur
			for i := 1; i <= 4; i++ {
				t := float64(i) / 4.0
				pt := quadAt(p0, c, e, t)
				addLine(cur, pt)
				cur = pt
			}
		case OpCubicTo:
			c1 := transform(op.X1, op.Y1)
			c2 := transform(op.X2, op.Y2)
			e := transform(op.X, op.Y)
			p0 := cur
			for i := 1; i <= 8; i++ {
				t := float64(i) / 8.0
				pt := cubicAt(p0, c1, c2, e, t)
				addLine(cur, pt)
				cur = pt
			}
		case OpClose:
			if have {
				addLine(cur, start)
				cur = start
			}
		}
	}
	if have && cur != start {
		addLine(cur, start)
	}

	dst := imageops.NewBitmap(width, height)
	var xs []float64
	for y := 0; y < height; y++ {
		fy := float64(y)
		xs = xs[:0]
		for _, e := range edges {
			lo, hi := e.y1, e.y2
			if lo > hi {
				lo, hi = hi, lo
			}
			if fy < lo || fy >= hi {
				continue
			}
			x := e.x1 + (fy-e.y1)*(e.x2-e.x1)/(e.y2-e.y1)
			xs = append(xs, x)
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xStart := int(floor(xs[i]))
			if xStart < 0 {
				xStart = 0
			}
			xEnd := int(ceil(xs[i+1]))
			if xEnd > width-1 {
				xEnd = width - 1
			}
			for x := xStart; x <= xEnd; x++ {
				dst.Pix[y*width+x] = 255
			}
		}
	}
	return dst
}

func quadAt(p0, c, p1 point, t float64) point {
	mt := 1 - t
	x := mt*mt*p0.x + 2*mt*t*c.x + t*t*p1.x
	y := mt*mt*p0.y + 2*mt*t*c.y + t*t*p1.y
	return point{x, y}
}

func cubicAt(p0, c1, c2, p1 point, t float64) point {
	mt := 1 - t
	x := mt*mt*mt*p0.x + 3*mt*mt*t*c1.x + 3*mt*t*t*c2.x + t*t*t*p1.x
	y := mt*mt*mt*p0.y + 3*mt*mt*t*c1.y + 3*mt*t*t*c2.y + t*t*t*p1.y
	return point{x, y}
}

func floor(x float64) float64 {
	i := int64(x)
	if float64(i) > x {
		i--
	}
	return float64(i)
}

func ceil(x float64) float64 {
	i := int64(x)
	if float64(i) < x {
		i++
	}
	return float64(i)
}

// sortFloats is an insertion sort: scanline edge counts per row are small,
// and this keeps the fill loop allocation-free.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}

// IntPoint is a flattened, rounded contour vertex in the vector container's
// integer coordinate space.
type IntPoint struct{ X, Y int16 }

// FlattenContours splits ops into closed subpaths (each starting at a
// MoveTo) and flattens their curves using the same fixed segment counts as
// Rasterize (4 for quadratics, 8 for cubics), rounding every vertex to a
// signed 16-bit integer. ox, oy translate before rounding; scale converts
// em-units to the target integer grid (pass 1.0 when ops are already in
// pixel space).
func FlattenContours(ops []Op, scale, ox, oy float64) [][]IntPoint {
	transform := func(x, y float64) point {
		return point{x: scale*x + ox, y: oy - scale*y}
	}
	round := func(p point) IntPoint {
		return IntPoint{X: int16(roundHalfAwayFromZero(p.x)), Y: int16(roundHalfAwayFromZero(p.y))}
	}

	var contours [][]IntPoint
	var cur []IntPoint
	var curPt point
	flush := func() {
		if len(cur) > 0 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, op := range ops {
		switch op.Kind {
		case OpMoveTo:
			flush()
			curPt = transform(op.X, op.Y)
			cur = append(cur, round(curPt))
		case OpLineTo:
			curPt = transform(op.X, op.Y)
			cur = append(cur, round(curPt))
		case OpQuadTo:
			c := transform(op.X1, op.Y1)
			e := transform(op.X, op.Y)
			p0 := curPt
			for i := 1; i <= 4; i++ {
				t := float64(i) / 4.0
				pt := quadAt(p0, c, e, t)
				cur = append(cur, round(pt))
			}
			curPt = e
		case OpCubicTo:
			c1 := transform(op.X1, op.Y1)
			c2 := transform(op.X2, op.Y2)
			e := transform(op.X, op.Y)
			p0 := curPt
			for i := 1; i <= 8; i++ {
				t := float64(i) / 8.0
				pt := cubicAt(p0, c1, c2, e, t)
				cur = append(cur, round(pt))
			}
			curPt = e
		case OpClose:
			flush()
		}
	}
	flush()
	return contours
}

func roundHalfAwayFromZero(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}
	return int64(x - 0.5)
}
