package vertexformat

import "fmt"

// ElementType is the scalar type stored by a vertex element.
type ElementType uint8

const (
	TypeFloat ElementType = iota
	TypeUByte
	TypeByte
	TypeUShort
	TypeShort
	TypeUInt
	TypeInt
)

// Size returns the byte size of one scalar of this type.
func (t ElementType) Size() int {
	switch t {
	case TypeFloat, TypeUInt, TypeInt:
		return 4
	case TypeUShort, TypeShort:
		return 2
	default:
		return 1
	}
}

// Usage describes what an element carries.
type Usage uint8

const (
	UsagePosition Usage = iota
	UsageColor
	UsageTexture
	UsageLight
	UsageNormal
	UsagePadding
)

func (u Usage) String() string {
	switch u {
	case UsagePosition:
		return "position"
	case UsageColor:
		return "color"
	case UsageTexture:
		return "texture"
	case UsageLight:
		return "light"
	case UsageNormal:
		return "normal"
	case UsagePadding:
		return "padding"
	default:
		return fmt.Sprintf("usage(%d)", uint8(u))
	}
}

// Element is one slot of an interleaved vertex layout.
type Element struct {
	Name  string
	Usage Usage
	Type  ElementType
	Count int
}

// ByteLength returns the number of bytes the element occupies in a vertex.
func (e Element) ByteLength() int {
	return e.Type.Size() * e.Count
}

// IsPadding reports whether the slot only exists for alignment.
func (e Element) IsPadding() bool {
	return e.Usage == UsagePadding
}

// Padding returns an inert element of n bytes.
func Padding(n int) Element {
	return Element{Name: "padding", Usage: UsagePadding, Type: TypeUByte, Count: n}
}

// Format is an immutable ordered list of elements. Formats are compared by
// identity, so share a single *Format per layout.
type Format struct {
	name     string
	elements []Element
	offsets  []int
	stride   int
}

// NewFormat builds a format from its elements in declaration order.
func NewFormat(name string, elements ...Element) *Format {
	f := &Format{
		name:     name,
		elements: append([]Element(nil), elements...),
		offsets:  make([]int, len(elements)),
	}
	for i, e := range f.elements {
		f.offsets[i] = f.stride
		f.stride += e.ByteLength()
	}
	return f
}

func (f *Format) Name() string { return f.name }

// Stride is the byte size of one vertex.
func (f *Format) Stride() int { return f.stride }

// Len returns the number of element slots, padding included.
func (f *Format) Len() int { return len(f.elements) }

// Element returns the element at slot i.
func (f *Format) Element(i int) Element { return f.elements[i] }

// Offset returns the byte offset of slot i inside a vertex.
func (f *Format) Offset(i int) int { return f.offsets[i] }

// Elements returns a copy of the element list.
func (f *Format) Elements() []Element {
	return append([]Element(nil), f.elements...)
}

// IndexOf returns the first slot with the given usage, or -1.
func (f *Format) IndexOf(u Usage) int {
	for i, e := range f.elements {
		if e.Usage == u {
			return i
		}
	}
	return -1
}

// ChunkFormat is the terrain vertex layout: float position, packed color,
// float texture coordinates, short light pair and a byte normal padded to
// four bytes.
var ChunkFormat = NewFormat("chunk",
	Element{Name: "position", Usage: UsagePosition, Type: TypeFloat, Count: 3},
	Element{Name: "color", Usage: UsageColor, Type: TypeUByte, Count: 4},
	Element{Name: "texture", Usage: UsageTexture, Type: TypeFloat, Count: 2},
	Element{Name: "light", Usage: UsageLight, Type: TypeShort, Count: 2},
	Element{Name: "normal", Usage: UsageNormal, Type: TypeByte, Count: 3},
	Padding(1),
)
