package world

import (
	"golang.org/x/sync/errgroup"

	"sectionmesh/internal/profiling"
)

// ChunkStreamer generates and lights chunk columns in parallel and installs
// them into a world.
type ChunkStreamer struct {
	world   *World
	gen     TerrainGenerator
	workers int
}

// NewChunkStreamer creates a new chunk streamer.
func NewChunkStreamer(w *World, gen TerrainGenerator, workers int) *ChunkStreamer {
	return &ChunkStreamer{world: w, gen: gen, workers: max(workers, 1)}
}

// generateChunkSync builds and installs a chunk if missing.
func (cs *ChunkStreamer) generateChunkSync(pos ChunkPos) {
	if cs.world.HasChunk(pos) {
		return
	}

	chunk := NewChunk(pos.X, pos.Z)
	cs.gen.PopulateChunk(chunk)
	LightChunk(cs.world, chunk)

	cs.world.AddChunk(chunk)
}

// StreamAround loads every column within radius of (cx, cz) and returns
// their positions nearest ring first. It blocks until all are installed.
func (cs *ChunkStreamer) StreamAround(cx, cz, radius int) []ChunkPos {
	defer profiling.Track("world.StreamAround")()

	order := RingOrder(cx, cz, radius)
	var g errgroup.Group
	g.SetLimit(cs.workers)
	for _, pos := range order {
		g.Go(func() error {
			cs.generateChunkSync(pos)
			return nil
		})
	}
	g.Wait()
	return order
}

// RingOrder lists the columns of the square of the given radius around
// (cx, cz), walking each ring clockwise starting from its north-west corner.
func RingOrder(cx, cz, radius int) []ChunkPos {
	side := 2*radius + 1
	out := make([]ChunkPos, 0, side*side)
	out = append(out, ChunkPos{X: cx, Z: cz})
	for r := 1; r <= radius; r++ {
		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r

		for xk := x0; xk <= x1; xk++ {
			out = append(out, ChunkPos{X: xk, Z: z0})
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			out = append(out, ChunkPos{X: x1, Z: zk})
		}
		for xk := x1; xk >= x0; xk-- {
			out = append(out, ChunkPos{X: xk, Z: z1})
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			out = append(out, ChunkPos{X: x0, Z: zk})
		}
	}
	return out
}
