package vertexformat

import "sync"

// ExtendedElement describes how to get from one substantive element to the
// next one, skipping padding and wrapping to the start of the next vertex.
type ExtendedElement struct {
	Element Element
	// Skip is the distance in slots to the next substantive element.
	Skip int
	// ByteLength is the number of bytes between this element's start and
	// the next substantive element's start.
	ByteLength int
}

// BuildExtended precomputes one descriptor per slot of the element list.
// Padding slots are left nil and must never be read.
func BuildExtended(elements []Element) []*ExtendedElement {
	n := len(elements)
	out := make([]*ExtendedElement, n)

	for i, e := range elements {
		if e.IsPadding() {
			continue
		}

		j := i
		length := 0
		for {
			length += elements[j].ByteLength()
			j++
			if j == n {
				j = 0
			}
			if !elements[j].IsPadding() {
				break
			}
		}

		skip := j - i
		if skip <= 0 {
			skip += n
		}
		out[i] = &ExtendedElement{Element: e, Skip: skip, ByteLength: length}
	}

	return out
}

var extendedCache sync.Map // *Format -> []*ExtendedElement

// Extended returns the cached descriptor table for f, computing it on first use.
func Extended(f *Format) []*ExtendedElement {
	if v, ok := extendedCache.Load(f); ok {
		return v.([]*ExtendedElement)
	}
	v, _ := extendedCache.LoadOrStore(f, BuildExtended(f.elements))
	return v.([]*ExtendedElement)
}
