package codec

import (
	"github.com/hellsge/font-tool-typescript-sub001/internal/binw"
	"github.com/hellsge/font-tool-typescript-sub001/internal/config"
	"github.com/hellsge/font-tool-typescript-sub001/internal/fontsrc"
	"github.com/hellsge/font-tool-typescript-sub001/internal/raster"
)

// VectorEncoder extracts per-glyph bounding boxes, advances, and winding
// sequences and serializes the vector container of spec.md section 6.2.
type VectorEncoder struct {
	baseEncoder
}

// NewVectorEncoder builds an encoder for the given config, resolved code
// points, and outline source.
func NewVectorEncoder(cfg *config.FontConfig, codes []uint16, src fontsrc.Font) *VectorEncoder {
	return &VectorEncoder{baseEncoder{cfg: cfg, src: src, codes: codes}}
}

type vectorGlyph struct {
	cp              uint16
	sx0, sy0        int16
	sx1, sy1        int16
	advance         uint16
	windings        [][]raster.IntPoint
}

func (e *VectorEncoder) renderOne(cp uint16) (vectorGlyph, error) {
	out, err := e.src.Outline(rune(cp), e.cfg.FontSize)
	if err != nil {
		return vectorGlyph{}, err
	}
	if !out.Found {
		return vectorGlyph{}, errMissingGlyph
	}
	contours := raster.FlattenContours(out.Ops, 1.0, 0, 0)
	var windings [][]raster.IntPoint
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		if len(c) > 255 {
			c = c[:255]
		}
		windings = append(windings, c)
	}
	if len(windings) > 255 {
		windings = windings[:255]
	}
	adv := out.Advance
	if adv < 0 {
		adv = 0
	}
	if adv > 0xFFFF {
		adv = 0xFFFF
	}
	return vectorGlyph{
		cp:       cp,
		sx0:      int16(out.BBox[0]),
		sy0:      int16(out.BBox[1]),
		sx1:      int16(out.BBox[2]),
		sy1:      int16(out.BBox[3]),
		advance:  uint16(adv),
		windings: windings,
	}, nil
}

func (g *vectorGlyph) payload(w *binw.Writer) {
	w.I16(g.sx0)
	w.I16(g.sy0)
	w.I16(g.sx1)
	w.I16(g.sy1)
	w.U16(g.advance)
	w.U8(uint8(len(g.windings)))
	for _, c := range g.windings {
		w.U8(uint8(len(c)))
	}
	for _, c := range g.windings {
		for _, p := range c {
			w.I16(p.X)
			w.I16(p.Y)
		}
	}
}

// Encode renders every resolved code point and serializes the complete
// vector container, returning its bytes.
func (e *VectorEncoder) Encode() ([]byte, error) {
	glyphs := make(map[uint16]vectorGlyph, len(e.codes))
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

	metrics, err := e.src.FontMetrics(e.cfg.FontSize)
	if err != nil {
		return nil, err
	}

	indexOffset := e.cfg.IndexMethod == config.IndexOffset
	header := &VectorHeader{
		FontSize:    uint8(e.cfg.FontSize),
		Bold:        e.cfg.Bold,
		Italic:      e.cfg.Italic,
		IndexOffset: indexOffset,
		Ascent:      metrics.Ascent,
		Descent:     metrics.Descent,
		LineGap:     metrics.LineGap,
		FontName:    e.src.NameStem(),
	}

	var indexAreaSize int32
	if indexOffset {
		indexAreaSize = int32(len(accepted)) * 6
	} else {
		indexAreaSize = 65536 * 4
	}
	header.IndexAreaSize = indexAreaSize

	w := binw.New(header.HeaderLength() + int(indexAreaSize) + 16*len(accepted))
	header.Write(w)
	indexStart := w.Len()

	patchSlot := make(map[uint16]int, len(accepted))
	if indexOffset {
		for _, cp := range accepted {
			w.U16(cp)
			patchSlot[cp] = w.Len()
			w.U32(unusedU32)
		}
	} else {
		for cp := 0; cp < 65536; cp++ {
			w.U32(unusedU32)
		}
		for _, cp := range accepted {
			patchSlot[cp] = indexStart + int(cp)*4
		}
	}

	for _, cp := range accepted {
		g := glyphs[cp]
		offset := uint32(w.Len())
		w.PatchU32At(patchSlot[cp], offset)
		g.payload(w)
	}

	return w.Bytes(), nil
}
