// Package codec implements the binary container formats: bitmap and
// vector headers, their index tables, and the glyph encoders that drive
// the rasterizer and imageops pipeline to produce them.
package codec

import (
	"github.com/hellsge/font-tool-typescript-sub001/internal/binw"
)

// Bitfield bit positions shared by both header kinds.
const (
	bitBold        = 1 << 0
	bitItalic      = 1 << 1
	bitIndexOffset = 1 << 3
	bitCrop        = 1 << 4
)

func packBitfield(bold, italic, indexOffset, crop bool) byte {
	var b byte
	if bold {
		b |= bitBold
	}
	if italic {
		b |= bitItalic
	}
	if indexOffset {
		b |= bitIndexOffset
	}
	if crop {
		b |= bitCrop
	}
	return b
}

// BitmapHeader is the fixed 14+L byte header of a bitmap container.
type BitmapHeader struct {
	FontSize      uint8
	RenderMode    uint8
	Bold          bool
	Italic        bool
	IndexOffset   bool
	Crop          bool
	IndexAreaSize int32
	FontName      string
}

const (
	bitmapFileFlag  = 1
	bitmapVerMajor  = 1
	bitmapVerMinor  = 0
	bitmapVerRev    = 2
)

// HeaderLength returns the total header size: 14 + len(FontName) + 1 (NUL).
func (h *BitmapHeader) HeaderLength() int { return 14 + len(h.FontName) + 1 }

// Write emits the header to w, starting at w's current position, which
// must be 0 for headerLength to be meaningful as an absolute file offset.
func (h *BitmapHeader) Write(w *binw.Writer) {
	nameLen := len(h.FontName) + 1
	w.U8(uint8(14 + nameLen))
	w.U8(bitmapFileFlag)
	w.U8(bitmapVerMajor)
	w.U8(bitmapVerMinor)
	w.U8(bitmapVerRev)
	w.U8(h.FontSize)
	w.U8(h.FontSize)
	w.U8(h.RenderMode)
	w.U8(packBitfield(h.Bold, h.Italic, h.IndexOffset, h.Crop))
	w.I32(h.IndexAreaSize)
	w.U8(uint8(nameLen))
	w.Raw([]byte(h.FontName))
	w.U8(0)
}

// ReadBitmapHeader parses a bitmap header from r.
func ReadBitmapHeader(r *binw.Reader) *BitmapHeader {
	_ = r.U8() // headerLength
	_ = r.U8() // fileFlag
	_ = r.U8() // versionMajor
	_ = r.U8() // versionMinor
	_ = r.U8() // versionRevision
	_ = r.U8() // size (legacy duplicate)
	fontSize := r.U8()
	renderMode := r.U8()
	bitfield := r.U8()
	indexAreaSize := r.I32()
	nameLen := r.U8()
	nameBytes := r.Raw(int(nameLen))
	name := ""
	if len(nameBytes) > 0 {
		name = string(nameBytes[:len(nameBytes)-1]) // drop trailing NUL
	}
	return &BitmapHeader{
		FontSize:      fontSize,
		RenderMode:    renderMode,
		Bold:          bitfield&bitBold != 0,
		Italic:        bitfield&bitItalic != 0,
		IndexOffset:   bitfield&bitIndexOffset != 0,
		Crop:          bitfield&bitCrop != 0,
		IndexAreaSize: indexAreaSize,
		FontName:      name,
	}
}

// VectorHeader is the fixed 20+L byte header of a vector container.
type VectorHeader struct {
	FontSize      uint8
	Bold          bool
	Italic        bool
	IndexOffset   bool
	IndexAreaSize int32
	Ascent        int16
	Descent       int16
	LineGap       int16
	FontName      string
}

const vectorFileFlag = 2

// HeaderLength returns the total header size: 20 + len(FontName) + 1 (NUL).
func (h *VectorHeader) HeaderLength() int { return 20 + len(h.FontName) + 1 }

// Write emits the header to w.
func (h *VectorHeader) Write(w *binw.Writer) {
	nameLen := len(h.FontName) + 1
	w.U8(uint8(20 + nameLen))
	w.U8(vectorFileFlag)
	w.U8(0) // versionMajor
	w.U8(0) // versionMinor
	w.U8(0) // versionRevision
	w.U8(0) // versionBuildnum
	w.U8(h.FontSize)
	w.U8(0) // renderMode, unused
	w.U8(packBitfield(h.Bold, h.Italic, h.IndexOffset, false))
	w.I32(h.IndexAreaSize)
	w.U8(uint8(nameLen))
	w.I16(h.Ascent)
	w.I16(h.Descent)
	w.I16(h.LineGap)
	w.Raw([]byte(h.FontName))
	w.U8(0)
}

// ReadVectorHeader parses a vector header from r.
func ReadVectorHeader(r *binw.Reader) *VectorHeader {
	_ = r.U8() // headerLength
	_ = r.U8() // fileFlag
	_ = r.U8() // versionMajor
	_ = r.U8() // versionMinor
	_ = r.U8() // versionRevision
	_ = r.U8() // versionBuildnum
	fontSize := r.U8()
	_ = r.U8() // renderMode
	bitfield := r.U8()
	indexAreaSize := r.I32()
	nameLen := r.U8()
	ascent := r.I16()
	descent := r.I16()
	lineGap := r.I16()
	nameBytes := r.Raw(int(nameLen))
	name := ""
	if len(nameBytes) > 0 {
		name = string(nameBytes[:len(nameBytes)-1])
	}
	return &VectorHeader{
		FontSize:      fontSize,
		Bold:          bitfield&bitBold != 0,
		Italic:        bitfield&bitItalic != 0,
		IndexOffset:   bitfield&bitIndexOffset != 0,
		IndexAreaSize: indexAreaSize,
		Ascent:        ascent,
		Descent:       descent,
		LineGap:       lineGap,
		FontName:      name,
	}
}
