package world

import "testing"

func TestRingOrder(t *testing.T) {
	order := RingOrder(2, -1, 2)
	if len(order) != 25 {
		t.Fatalf("got %d columns, want 25", len(order))
	}
	if order[0] != (ChunkPos{X: 2, Z: -1}) {
		t.Fatalf("first column %+v, want the centre", order[0])
	}
	seen := make(map[ChunkPos]bool)
	for i, p := range order {
		if seen[p] {
			t.Fatalf("column %+v listed twice", p)
		}
		seen[p] = true
		ring := max(abs(p.X-2), abs(p.Z+1))
		if i > 0 && ring < max(abs(order[i-1].X-2), abs(order[i-1].Z+1)) {
			t.Fatalf("column %d (%+v) is on an inner ring after an outer one", i, p)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestStreamAroundPopulatesAndLights(t *testing.T) {
	w := NewEmpty()
	existing := w.GetChunk(0, 0, true)

	cs := NewChunkStreamer(w, NewGenerator(5), 4)
	order := cs.StreamAround(0, 0, 1)
	if len(order) != 9 {
		t.Fatalf("streamed %d columns, want 9", len(order))
	}
	for _, pos := range order {
		if !w.HasChunk(pos) {
			t.Fatalf("column %+v was not installed", pos)
		}
	}
	if w.Chunk(ChunkPos{}) != existing || !existing.IsAir(0, 0, 0) {
		t.Fatal("loaded columns must not be regenerated")
	}
	c := w.Chunk(ChunkPos{X: 1, Z: 1})
	if c.GetBlock(0, 0, 0) != BlockTypeBedrock {
		t.Fatal("streamed column was not populated")
	}
	if w.LightLayer(LightSky, SectionPos{X: 1, Y: NumSections - 1, Z: 1}) == nil {
		t.Fatal("streamed column was not lit")
	}
}
