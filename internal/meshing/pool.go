package meshing

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"sectionmesh/internal/snapshot"
	"sectionmesh/internal/vertexformat"
	"sectionmesh/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	Section *snapshot.Section
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Pos   world.SectionPos
	Parts map[*RenderPass]*MeshPart
	Info  *SectionInfo
	Err   error
}

// PoolOptions configures the buffers each worker owns.
type PoolOptions struct {
	Format             *vertexformat.Format
	Passes             []*RenderPass
	InitialBufferBytes int
	Analyzers          AnalyzerFactory
}

// WorkerPool manages goroutines for mesh generation. Every worker owns one
// BuildBuffers and one GreedyRenderer for its whole lifetime.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group

	// mu guards closed; senders hold it for reading so Close never closes
	// the queue under them.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int, opts PoolOptions) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      gctx,
		cancel:   cancel,
		group:    group,
	}

	for i := range workers {
		bufs := NewBuildBuffers(opts.Format, opts.Passes, opts.InitialBufferBytes, opts.Analyzers)
		renderer := NewGreedyRenderer(opts.Format)
		group.Go(func() error { return pool.worker(i, bufs, renderer) })
	}
	log.Printf("meshing: started %d workers (queue %d)", workers, queueSize)

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued. It returns
// false if the pool was closed or shut down first.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int, bufs *BuildBuffers, renderer *GreedyRenderer) error {
	defer bufs.Destroy()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return nil
			}
			result := build(bufs, renderer, job.Section)

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return nil
			}

		case <-p.ctx.Done():
			return nil
		}
	}
}

// build meshes one section. A panic from the buffers is reported as the
// result's error and leaves the worker usable.
func build(bufs *BuildBuffers, renderer *GreedyRenderer, s *snapshot.Section) (result MeshResult) {
	result.Pos = s.Position()
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			result.Parts = nil
			result.Info = nil
			result.Err = fmt.Errorf("build section %v: %w", result.Pos, err)
		}
	}()

	bufs.Begin(s.Position())
	renderer.Render(s, bufs)

	for _, pass := range bufs.Passes() {
		if part := bufs.CreateMesh(pass); part != nil {
			if result.Parts == nil {
				result.Parts = make(map[*RenderPass]*MeshPart, len(bufs.Passes()))
			}
			result.Parts[pass] = part
		}
	}
	result.Info = bufs.Info()
	return result
}

// Close stops accepting jobs, lets workers drain the queue and waits for
// them to exit.
func (p *WorkerPool) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobQueue)
	}
	p.mu.Unlock()
	err := p.group.Wait()
	p.cancel()
	return err
}

// Shutdown cancels pending work and waits for the workers to exit.
func (p *WorkerPool) Shutdown() error {
	p.cancel()
	return p.group.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }
