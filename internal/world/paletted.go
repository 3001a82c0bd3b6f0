package world

// ReadableContainer is the read side of a paletted volume.
type ReadableContainer[T any] interface {
	Get(x, y, z int) T
	// Size is the edge length of the cube.
	Size() int
}

// PalettedContainer stores a cube of values as indices into a palette.
// It is not safe for concurrent mutation; readers on other goroutines must
// hold their own Clone.
type PalettedContainer[T comparable] struct {
	size    int
	palette []T
	lookup  map[T]uint16
	data    []uint16
}

// NewPalettedContainer returns a size^3 volume filled with fill.
func NewPalettedContainer[T comparable](size int, fill T) *PalettedContainer[T] {
	return &PalettedContainer[T]{
		size:    size,
		palette: []T{fill},
		lookup:  map[T]uint16{fill: 0},
		data:    make([]uint16, size*size*size),
	}
}

func (c *PalettedContainer[T]) index(x, y, z int) int {
	return (y*c.size+z)*c.size + x
}

func (c *PalettedContainer[T]) Size() int { return c.size }

// Get returns the value at local coordinates.
func (c *PalettedContainer[T]) Get(x, y, z int) T {
	return c.palette[c.data[c.index(x, y, z)]]
}

// Set stores v and returns the previous value.
func (c *PalettedContainer[T]) Set(x, y, z int, v T) T {
	i := c.index(x, y, z)
	old := c.palette[c.data[i]]
	id, ok := c.lookup[v]
	if !ok {
		id = uint16(len(c.palette))
		c.palette = append(c.palette, v)
		c.lookup[v] = id
	}
	c.data[i] = id
	return old
}

// PaletteLen returns the number of distinct values ever stored.
func (c *PalettedContainer[T]) PaletteLen() int { return len(c.palette) }

// Clone returns an independent deep copy.
func (c *PalettedContainer[T]) Clone() *PalettedContainer[T] {
	out := &PalettedContainer[T]{
		size:    c.size,
		palette: append([]T(nil), c.palette...),
		lookup:  make(map[T]uint16, len(c.lookup)),
		data:    append([]uint16(nil), c.data...),
	}
	for k, v := range c.lookup {
		out.lookup[k] = v
	}
	return out
}
