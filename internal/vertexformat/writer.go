package vertexformat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrElementMismatch = errors.New("vertexformat: value does not match element")
	ErrWriterOverflow  = errors.New("vertexformat: write past reserved vertices")
)

// Writer interleaves attribute values into a scratch region of whole
// vertices. Values are written in layout order; padding is stepped over
// using the extended element table, so each attribute costs one lookup.
type Writer struct {
	format *Format
	ext    []*ExtendedElement

	first       int
	firstOffset int

	buf []byte
	off int
	idx int
}

// NewWriter returns a writer for f. The format must contain at least one
// substantive element.
func NewWriter(f *Format) *Writer {
	w := &Writer{format: f, ext: Extended(f), first: -1}
	for i, e := range w.ext {
		if e != nil {
			w.first = i
			w.firstOffset = f.Offset(i)
			break
		}
	}
	if w.first < 0 {
		panic(fmt.Errorf("%w: format %q has no substantive elements", ErrElementMismatch, f.Name()))
	}
	return w
}

func (w *Writer) Format() *Format { return w.format }

// Begin reserves room for n vertices, reusing the previous scratch when it
// is large enough, and rewinds the cursor to the first attribute.
func (w *Writer) Begin(n int) {
	size := n * w.format.Stride()
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	w.buf = w.buf[:size]
	clear(w.buf)
	w.off = w.firstOffset
	w.idx = w.first
}

// Bytes returns the vertices written since Begin. The slice is reused by
// the next Begin.
func (w *Writer) Bytes() []byte { return w.buf }

// Floats writes the current element as float32 values.
func (w *Writer) Floats(v ...float32) *Writer {
	dst := w.slot(TypeFloat, len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
	return w.advance()
}

// UBytes writes the current element as unsigned bytes.
func (w *Writer) UBytes(v ...uint8) *Writer {
	dst := w.slot(TypeUByte, len(v))
	copy(dst, v)
	return w.advance()
}

// Bytes8 writes the current element as signed bytes.
func (w *Writer) Bytes8(v ...int8) *Writer {
	dst := w.slot(TypeByte, len(v))
	for i, b := range v {
		dst[i] = uint8(b)
	}
	return w.advance()
}

// Shorts writes the current element as 16-bit values.
func (w *Writer) Shorts(v ...int16) *Writer {
	dst := w.slot(TypeShort, len(v))
	for i, s := range v {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(s))
	}
	return w.advance()
}

func (w *Writer) slot(t ElementType, count int) []byte {
	e := w.ext[w.idx].Element
	if e.Type != t && !sameWidth(e.Type, t) || e.Count != count {
		panic(fmt.Errorf("%w: %s wants %d x type %d, got %d x type %d",
			ErrElementMismatch, e.Name, e.Count, e.Type, count, t))
	}
	end := w.off + e.ByteLength()
	if end > len(w.buf) {
		panic(fmt.Errorf("%w: offset %d, reserved %d bytes", ErrWriterOverflow, end, len(w.buf)))
	}
	return w.buf[w.off:end]
}

func (w *Writer) advance() *Writer {
	e := w.ext[w.idx]
	w.off += e.ByteLength
	w.idx += e.Skip
	if w.idx >= len(w.ext) {
		w.idx -= len(w.ext)
	}
	return w
}

// sameWidth lets signed and unsigned variants of one width share a writer method.
func sameWidth(a, b ElementType) bool {
	switch a {
	case TypeShort, TypeUShort:
		return b == TypeShort || b == TypeUShort
	case TypeInt, TypeUInt:
		return b == TypeInt || b == TypeUInt
	}
	return false
}
