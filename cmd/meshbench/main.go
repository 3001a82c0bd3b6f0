package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"sectionmesh/internal/config"
	"sectionmesh/internal/meshing"
	"sectionmesh/internal/profiling"
	"sectionmesh/internal/snapshot"
	"sectionmesh/internal/sorting"
	"sectionmesh/internal/vertexformat"
	"sectionmesh/internal/world"
)

type passTotals struct {
	parts    int
	vertices int
	indices  int
	bytes    int
}

type meshbench struct {
	world  *world.World
	cache  *snapshot.Cache
	pool   *meshing.WorkerPool
	camera mgl32.Vec3

	totals   map[*meshing.RenderPass]*passTotals
	sorts    map[sorting.SortType]int
	sprites  map[string]struct{}
	entities int
	empty    int
	resorted int
}

func (m *meshbench) generate() []world.SectionPos {
	cs := world.NewChunkStreamer(m.world, world.NewGenerator(config.GetSeed()), config.GetWorkers())

	var sections []world.SectionPos
	for _, pos := range cs.StreamAround(0, 0, config.GetRadius()) {
		for sy := range world.NumSections {
			sections = append(sections, world.SectionPos{X: pos.X, Y: sy, Z: pos.Z})
		}
	}
	return sections
}

func (m *meshbench) collect(res meshing.MeshResult) error {
	if res.Err != nil {
		return fmt.Errorf("failed to mesh section: %w", res.Err)
	}
	if res.Info.IsEmpty() {
		m.empty++
	}
	m.entities += len(res.Info.BlockEntities())
	for _, s := range res.Info.Sprites() {
		m.sprites[s] = struct{}{}
	}
	for pass, part := range res.Parts {
		t := m.totals[pass]
		t.parts++
		t.vertices += part.VertexCount()
		t.indices += len(part.Indices())
		t.bytes += len(part.Vertices())
		if st, ok := part.SortState().(*sorting.State); ok {
			m.sorts[st.Type()]++
			if st.Type() == sorting.SortDynamic {
				// Vertices are section-local, so move the viewer into the section's frame.
				m.resorted += len(st.Resort(m.camera.Sub(res.Pos.Origin())))
			}
		}
	}
	return nil
}

func (m *meshbench) run() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	configFile := fs.String("config", "", "load settings from a yaml file")
	radius := fs.Int("radius", config.GetRadius(), "generated area radius in chunks")
	seed := fs.Int64("seed", config.GetSeed(), "terrain seed")
	workers := fs.Int("workers", config.GetWorkers(), "number of mesh workers")
	debug := fs.Bool("debug", false, "capture sections with the debug world layout")
	noSky := fs.Bool("nosky", false, "generate a dimension without sky light")
	renderData := fs.Bool("renderdata", false, "capture block entity render data")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if *configFile != "" {
		if err := config.Load(*configFile); err != nil {
			return err
		}
	}
	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "radius":
			config.SetRadius(*radius)
		case "seed":
			config.SetSeed(*seed)
		case "workers":
			config.SetWorkers(*workers)
		case "debug":
			config.SetDebugWorld(*debug)
		case "nosky":
			config.SetNoSky(*noSky)
		case "renderdata":
			config.SetRenderDataSupported(*renderData)
		}
	})

	var opts []world.Option
	if config.GetDebugWorld() {
		opts = append(opts, world.WithDebug())
	}
	if config.GetNoSky() {
		opts = append(opts, world.WithoutSky())
	}
	m.world = world.NewEmpty(opts...)

	start := time.Now()
	sections := m.generate()
	log.Printf("generated %d chunks in %s", len(m.world.AllChunks()), time.Since(start))

	capturer := snapshot.NewCapturer(snapshot.Options{RenderData: config.GetRenderDataSupported()})
	m.cache = snapshot.NewCache(m.world, capturer, config.GetSnapshotTTL())

	// Initial sort assumes a viewer above the middle of every section;
	// dynamic states are resorted against the world-space camera.
	m.camera = mgl32.Vec3{0, 80, 0}
	m.pool = meshing.NewWorkerPool(config.GetWorkers(), config.GetQueueSize(), meshing.PoolOptions{
		Format:             vertexformat.ChunkFormat,
		Passes:             meshing.DefaultPasses,
		InitialBufferBytes: config.GetInitialBufferBytes(),
		Analyzers:          sorting.Factory(mgl32.Vec3{8, 24, 8}),
	})

	m.totals = make(map[*meshing.RenderPass]*passTotals)
	for _, p := range meshing.DefaultPasses {
		m.totals[p] = &passTotals{}
	}
	m.sorts = make(map[sorting.SortType]int)
	m.sprites = make(map[string]struct{})

	profiling.Reset()
	start = time.Now()

	results := make(chan meshing.MeshResult, config.GetQueueSize())
	go func() {
		for _, pos := range sections {
			m.pool.SubmitJobBlocking(meshing.MeshJob{Section: m.cache.Acquire(pos), ResultChan: results})
		}
	}()

	pb := progressbar.Default(int64(len(sections)), "meshing")
	defer pb.Close()

	var firstErr error
	for i := range sections {
		if err := m.collect(<-results); err != nil && firstErr == nil {
			firstErr = err
		}
		if i%64 == 0 {
			pb.Describe(fmt.Sprintf("meshing (queue %d)", m.pool.GetQueueLength()))
		}
		pb.Add(1)
	}
	if err := m.pool.Close(); err != nil {
		return fmt.Errorf("failed to stop workers: %w", err)
	}
	if firstErr != nil {
		return firstErr
	}
	elapsed := time.Since(start)

	log.Printf("meshed %d sections in %s (%d empty, %d block entities, %d sprites)",
		len(sections), elapsed, m.empty, m.entities, len(m.sprites))
	for _, p := range meshing.DefaultPasses {
		t := m.totals[p]
		log.Printf("  %-12s parts=%d vertices=%d indices=%d bytes=%d", p.Name, t.parts, t.vertices, t.indices, t.bytes)
	}
	sortSummary := lo.MapToSlice(m.sorts, func(k sorting.SortType, v int) string { return fmt.Sprintf("%s=%d", k, v) })
	slices.Sort(sortSummary)
	log.Printf("  sort states: %v (%d quads resorted for the camera)", sortSummary, m.resorted)
	log.Printf("  cached snapshots: %d (%d evicted)", m.cache.Len(), m.cache.Cleanup())
	log.Printf("  top: %s", profiling.TopN(6))

	return nil
}

func main() {
	m := meshbench{}

	if err := m.run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run meshbench: %v\n", err)
		os.Exit(1)
	}
}
