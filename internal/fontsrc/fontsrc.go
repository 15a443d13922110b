// Package fontsrc is the thin collaborator between this repo's codec core
// and an on-disk outline font. It wraps golang.org/x/image/font/sfnt to
// yield per-glyph path commands and advance widths, already scaled to
// pixels at the requested font size, plus font-wide ascent/descent/line-gap
// — exactly the surface the Rasterizer and VectorEncoder need, and nothing
// more. No separate units-per-em scale factor is exposed. Hinting, shaping,
// and kerning are intentionally not exposed here.
package fontsrc

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/hellsge/font-tool-typescript-sub001/internal/raster"
)

// Font is the narrow surface the codec encoders need from an outline font
// source: a name, font-wide vertical metrics, and per-glyph outlines. It
// exists so the encoders can be driven by a fake in tests, without needing
// real font binaries.
type Font interface {
	NameStem() string
	FontMetrics(fontSize int) (Metrics, error)
	Outline(r rune, fontSize int) (GlyphOutline, error)
}

// Source is a parsed outline font ready to rasterize or extract contours
// from at a given pixel size. It implements Font.
type Source struct {
	font *sfnt.Font
	name string
	buf  sfnt.Buffer
}

// Load reads and parses the font at path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("fontsrc: %s: %w", path, err)
		}
		return nil, fmt.Errorf("fontsrc: reading %s: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontsrc: parsing %s: %w", path, err)
	}
	return &Source{font: f, name: stem(path)}, nil
}

// NameStem is the font's filename stem, used as the container's fontName
// field.
func (s *Source) NameStem() string { return s.name }

func stem(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}

// Metrics holds font-wide vertical metrics in pixels at a given size.
type Metrics struct {
	Ascent, Descent, LineGap int16
}

// FontMetrics returns ascent/descent/line-gap scaled to fontSize pixels.
// Descent is negative (below baseline), matching the container's i16
// encoding.
func (s *Source) FontMetrics(fontSize int) (Metrics, error) {
	m, err := s.font.Metrics(&s.buf, fixed.I(fontSize), font.HintingNone)
	if err != nil {
		return Metrics{}, fmt.Errorf("fontsrc: metrics: %w", err)
	}
	return Metrics{
		Ascent:  int16(m.Ascent.Ceil()),
		Descent: int16(-m.Descent.Ceil()),
		LineGap: int16(m.Height.Ceil() - m.Ascent.Ceil() - m.Descent.Ceil()),
	}, nil
}

// GlyphOutline is one code point's extracted path commands, advance
// width, and scaled bounding box, all in pixel space at the given font
// size.
type GlyphOutline struct {
	Ops     []raster.Op
	Advance int
	BBox    [4]int // sx0, sy0, sx1, sy1
	Found   bool
}

// Outline extracts the path commands and metrics for r at fontSize pixels.
// Found is false if the font has no glyph for r; that is not itself an
// error — the caller decides whether it is fatal.
func (s *Source) Outline(r rune, fontSize int) (GlyphOutline, error) {
	idx, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil {
		return GlyphOutline{}, fmt.Errorf("fontsrc: glyph index: %w", err)
	}
	if idx == 0 {
		return GlyphOutline{}, nil
	}
	ppem := fixed.I(fontSize)
	segs, err := s.font.LoadGlyph(&s.buf, idx, ppem, nil)
	if err != nil {
		return GlyphOutline{}, fmt.Errorf("fontsrc: load glyph: %w", err)
	}
	adv, err := s.font.GlyphAdvance(&s.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return GlyphOutline{}, fmt.Errorf("fontsrc: glyph advance: %w", err)
	}

	ops := make([]raster.Op, 0, len(segs))
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	maxX, maxY := -minX-1, -minY-1
	track := func(x, y fixed.Int26_6) {
		xi, yi := x.Round(), y.Round()
		if xi < minX {
			minX = xi
		}
		if xi > maxX {
			maxX = xi
		}
		if yi < minY {
			minY = yi
		}
		if yi > maxY {
			maxY = yi
		}
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := f26(seg.Args[0])
			ops = append(ops, raster.MoveTo(x, y))
			track(seg.Args[0].X, seg.Args[0].Y)
		case sfnt.SegmentOpLineTo:
			x, y := f26(seg.Args[0])
			ops = append(ops, raster.LineTo(x, y))
			track(seg.Args[0].X, seg.Args[0].Y)
		case sfnt.SegmentOpQuadTo:
			x1, y1 := f26(seg.Args[0])
			x, y := f26(seg.Args[1])
			ops = append(ops, raster.QuadTo(x1, y1, x, y))
			track(seg.Args[1].X, seg.Args[1].Y)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := f26(seg.Args[0])
			x2, y2 := f26(seg.Args[1])
			x, y := f26(seg.Args[2])
			ops = append(ops, raster.CubicTo(x1, y1, x2, y2, x, y))
			track(seg.Args[2].X, seg.Args[2].Y)
		case sfnt.SegmentOpClose:
			ops = append(ops, raster.Close())
		}
	}
	if len(segs) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	return GlyphOutline{
		Ops:     ops,
		Advance: adv.Round(),
		BBox:    [4]int{minX, minY, maxX, maxY},
		Found:   true,
	}, nil
}

func f26(p struct{ X, Y fixed.Int26_6 }) (float64, float64) {
	return float64(p.X) / 64.0, float64(p.Y) / 64.0
}
