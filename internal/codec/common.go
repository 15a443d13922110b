package codec

import (
	"errors"

	"github.com/hellsge/font-tool-typescript-sub001/internal/config"
	"github.com/hellsge/font-tool-typescript-sub001/internal/errs"
	"github.com/hellsge/font-tool-typescript-sub001/internal/fontsrc"
	"github.com/hellsge/font-tool-typescript-sub001/internal/imageops"
)

const unusedU16 = 0xFFFF
const unusedU32 = 0xFFFFFFFF

// errMissingGlyph marks a code point the font has no glyph for, distinct
// from an empty-but-present glyph (e.g. space), which renders successfully
// per spec.md's empty-glyph rule rather than failing.
var errMissingGlyph = errors.New("codec: font has no glyph for this code point")

// baseEncoder holds the state both encoder variants share: the resolved
// code points to render, the source font, and the running list of code
// points that failed to rasterize. Mirrors the teacher's pattern of
// sharing scratch state through a single embedded struct rather than a
// class hierarchy.
type baseEncoder struct {
	cfg    *config.FontConfig
	src    fontsrc.Font
	codes  []uint16
	failed []uint16
}

func (b *baseEncoder) recordFailure(cp uint16, err error) {
	b.failed = append(b.failed, cp)
	_ = err // non-fatal: per-glyph failures never abort the run
}

// Failed returns the code points that could not be rendered, in the order
// encountered.
func (b *baseEncoder) Failed() []uint16 { return b.failed }

func gammaLUTFor(cfg *config.FontConfig) *imageops.GammaLUT {
	g := cfg.Gamma
	if g == 0 {
		g = 1.0
	}
	return imageops.NewGammaLUT(g)
}

func rotationOf(cfg *config.FontConfig) imageops.Rotation {
	switch cfg.Rotation {
	case config.Rotation90:
		return imageops.Rotate90
	case config.Rotation180:
		return imageops.Rotate180
	case config.Rotation270:
		return imageops.Rotate270
	default:
		return imageops.Rotate0
	}
}

func wrapGlyphErr(cp uint16, err error) error {
	return errs.GlyphRenderFailed(int(cp), err)
}
