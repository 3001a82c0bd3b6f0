package world

import (
	"testing"
)

// Benchmark streaming around a moving point with eviction behind it
func BenchmarkStreamAround(b *testing.B) {
	w := NewEmpty()
	cs := NewChunkStreamer(w, NewGenerator(1), 4)
	const radius = 3

	// Warm-up populate once
	cs.StreamAround(0, 0, radius)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cx := i % 8
		w.EvictFarChunks(cx, 0, radius+1)
		cs.StreamAround(cx, 0, radius)
	}
}

func BenchmarkChunkSetBlock(b *testing.B) {
	c := NewChunk(0, 0)
	blocks := []BlockType{BlockTypeStone, BlockTypeDirt, BlockTypeChest, BlockTypeAir}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SetBlock(i&15, (i>>4)&255, (i>>12)&15, blocks[i&3])
	}
}
