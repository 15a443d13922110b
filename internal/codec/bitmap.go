package codec

import (
	"github.com/hellsge/font-tool-typescript-sub001/internal/binw"
	"github.com/hellsge/font-tool-typescript-sub001/internal/config"
	"github.com/hellsge/font-tool-typescript-sub001/internal/fontsrc"
	"github.com/hellsge/font-tool-typescript-sub001/internal/imageops"
	"github.com/hellsge/font-tool-typescript-sub001/internal/raster"
)

// BitmapEncoder drives the rasterizer and imageops pipeline for each
// resolved code point and serializes the bitmap container of spec.md
// section 6.1.
type BitmapEncoder struct {
	baseEncoder
}

// NewBitmapEncoder builds an encoder for the given config, resolved code
// points, and outline source.
func NewBitmapEncoder(cfg *config.FontConfig, codes []uint16, src fontsrc.Font) *BitmapEncoder {
	return &BitmapEncoder{baseEncoder{cfg: cfg, src: src, codes: codes}}
}

type renderedGlyph struct {
	cp      uint16
	packed  []byte
	crop    imageops.CropInfo
	cropped bool
}

// renderOne runs gamma -> bold -> italic -> rotate -> (crop|pad) -> pack
// in strict order over the rasterized glyph for cp.
func (e *BitmapEncoder) renderOne(cp uint16) (renderedGlyph, error) {
	out, err := e.src.Outline(rune(cp), e.cfg.FontSize)
	if err != nil {
		return renderedGlyph{}, err
	}
	if !out.Found {
		return renderedGlyph{}, errMissingGlyph
	}
	metrics, err := e.src.FontMetrics(e.cfg.FontSize)
	if err != nil {
		return renderedGlyph{}, err
	}
	advance := out.Advance
	width := advance
	if width < 1 {
		width = 1
	}
	height := e.cfg.FontSize

	bmp := raster.Rasterize(out.Ops, 1.0, 0, float64(metrics.Ascent), width, height, advance)

	lut := gammaLUTFor(e.cfg)
	bmp = imageops.Gamma(bmp, lut)
	if e.cfg.Bold {
		bmp = imageops.Bold(bmp)
	}
	if e.cfg.Italic {
		bmp = imageops.Italic(bmp)
	}
	bmp = imageops.Rotate(bmp, rotationOf(e.cfg))

	var crop imageops.CropInfo
	if e.cfg.Crop {
		bmp, crop = imageops.Crop(bmp)
	} else {
		bmp = imageops.PadToAlignment(bmp)
	}
	packed := imageops.Pack(bmp, e.cfg.RenderMode)
	return renderedGlyph{cp: cp, packed: packed, crop: crop, cropped: e.cfg.Crop}, nil
}

// Encode renders every resolved code point and serializes the complete
// bitmap container, returning its bytes.
func (e *BitmapEncoder) Encode() ([]byte, error) {
	glyphs := make(map[uint16]renderedGlyph, len(e.codes))
	var accepted []uint16
	for _, cp := range e.codes {
		g, err := e.renderOne(cp)
		if err != nil {
			e.recordFailure(cp, wrapGlyphErr(cp, err))
			continue
		}
		glyphs[cp] = g
		accepted = append(accepted, cp)
	}

	indexOffset := e.cfg.IndexMethod == config.IndexOffset
	header := &BitmapHeader{
		FontSize:    uint8(e.cfg.FontSize),
		RenderMode:  uint8(e.cfg.RenderMode),
		Bold:        e.cfg.Bold,
		Italic:      e.cfg.Italic,
		IndexOffset: indexOffset,
		Crop:        e.cfg.Crop,
		FontName:    e.src.NameStem(),
	}

	var indexAreaSize int32
	switch {
	case e.cfg.Crop:
		indexAreaSize = 65536 * 4
	case indexOffset:
		indexAreaSize = int32(len(accepted)) * 2
	default:
		indexAreaSize = 65536 * 2
	}
	header.IndexAreaSize = indexAreaSize

	w := binw.New(header.HeaderLength() + int(indexAreaSize) + 4*len(accepted))
	header.Write(w)
	indexStart := w.Len()

	rank := make(map[uint16]int, len(accepted))
	for i, cp := range accepted {
		rank[cp] = i
	}

	// patchSlot maps a code point to the absolute offset of its 4-byte
	// index slot, populated only in crop mode (back-patched once the
	// glyph's payload position is known).
	patchSlot := make(map[uint16]int, len(accepted))

	switch {
	case e.cfg.Crop:
		for cp := 0; cp < 65536; cp++ {
			w.U32(unusedU32)
		}
		for _, cp := range accepted {
			patchSlot[cp] = indexStart + int(cp)*4
		}
	case indexOffset:
		for _, cp := range accepted {
			w.U16(cp)
		}
	default:
		for cp := 0; cp < 65536; cp++ {
			if r, ok := rank[uint16(cp)]; ok {
				w.U16(uint16(r))
			} else {
				w.U16(unusedU16)
			}
		}
	}

	for _, cp := range accepted {
		g := glyphs[cp]
		offset := uint32(w.Len())
		if e.cfg.Crop {
			w.PatchU32At(patchSlot[cp], offset)
			w.U8(g.crop.TopSkip)
			w.U8(g.crop.LeftSkip)
			w.U8(g.crop.ValidWidth)
			w.U8(g.crop.ValidHeight)
		}
		w.Raw(g.packed)
	}

	return w.Bytes(), nil
}
