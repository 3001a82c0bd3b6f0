package world

import "sync"

// LightLayer selects one of the two light channels.
type LightLayer uint8

const (
	LightBlock LightLayer = iota
	LightSky

	LightLayerCount
)

func (l LightLayer) String() string {
	if l == LightSky {
		return "sky"
	}
	return "block"
}

// DataLayerSize is the byte length of one section of nibble light.
const DataLayerSize = SectionVolume / 2

// DataLayer holds 4-bit light levels for every block of a section.
type DataLayer struct {
	data [DataLayerSize]byte
}

// NewDataLayer returns a layer with every level set to fill.
func NewDataLayer(fill uint8) *DataLayer {
	d := &DataLayer{}
	if fill != 0 {
		b := fill&15 | fill<<4
		for i := range d.data {
			d.data[i] = b
		}
	}
	return d
}

// Get returns the light level at section-local coordinates.
func (d *DataLayer) Get(x, y, z int) uint8 {
	i := LocalBlockIndex(x, y, z)
	return d.data[i>>1] >> ((i & 1) << 2) & 15
}

// Set stores a light level at section-local coordinates.
func (d *DataLayer) Set(x, y, z int, level uint8) {
	i := LocalBlockIndex(x, y, z)
	shift := (i & 1) << 2
	d.data[i>>1] = d.data[i>>1]&^(15<<shift) | (level&15)<<shift
}

// Copy returns an independent copy of the layer.
func (d *DataLayer) Copy() *DataLayer {
	out := *d
	return &out
}

// LightEngine keeps computed light per section. A missing entry means the
// section has not been lit yet.
type LightEngine struct {
	mu     sync.RWMutex
	layers [LightLayerCount]map[SectionPos]*DataLayer
}

func NewLightEngine() *LightEngine {
	e := &LightEngine{}
	for i := range e.layers {
		e.layers[i] = make(map[SectionPos]*DataLayer)
	}
	return e
}

// DataLayer returns the stored layer or nil when it has not been computed.
func (e *LightEngine) DataLayer(layer LightLayer, pos SectionPos) *DataLayer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.layers[layer][pos]
}

// SetDataLayer installs a computed layer for a section.
func (e *LightEngine) SetDataLayer(layer LightLayer, pos SectionPos, d *DataLayer) {
	e.mu.Lock()
	e.layers[layer][pos] = d
	e.mu.Unlock()
}

// SetLight writes one level at world coordinates, creating the section's
// layer on first write.
func (e *LightEngine) SetLight(layer LightLayer, p BlockPos, level uint8) {
	sp := p.Section()
	e.mu.Lock()
	d := e.layers[layer][sp]
	if d == nil {
		d = NewDataLayer(0)
		e.layers[layer][sp] = d
	}
	d.Set(p.X&15, p.Y&15, p.Z&15, level)
	e.mu.Unlock()
}

// Forget drops both layers for a section.
func (e *LightEngine) Forget(pos SectionPos) {
	e.mu.Lock()
	for i := range e.layers {
		delete(e.layers[i], pos)
	}
	e.mu.Unlock()
}
