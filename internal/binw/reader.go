package binw

// Reader interprets a byte slice as a stream of little-endian integer
// values, consuming it as it goes. It mirrors Writer's vocabulary so that
// round-trip tests read naturally against what was written.
type Reader struct {
	b []byte
}

// NewReader wraps p for reading. p is not copied.
func NewReader(p []byte) *Reader { return &Reader{b: p} }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.b) }

func (r *Reader) U8() uint8 {
	x := r.b[0]
	r.b = r.b[1:]
	return x
}

func (r *Reader) U16() uint16 {
	x := uint16(r.b[0]) | uint16(r.b[1])<<8
	r.b = r.b[2:]
	return x
}

func (r *Reader) I16() int16 { return int16(r.U16()) }

func (r *Reader) U32() uint32 {
	x := uint32(r.b[0]) | uint32(r.b[1])<<8 | uint32(r.b[2])<<16 | uint32(r.b[3])<<24
	r.b = r.b[4:]
	return x
}

func (r *Reader) I32() int32 { return int32(r.U32()) }

// Raw consumes and returns the next n bytes.
func (r *Reader) Raw(n int) []byte {
	x := r.b[:n]
	r.b = r.b[n:]
	return x
}

// Skip discards the next n bytes.
func (r *Reader) Skip(n int) { r.b = r.b[n:] }
