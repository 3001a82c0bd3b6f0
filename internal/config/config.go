package config

import (
	"runtime"
	"sync"
	"time"
)

// MeshSettings holds the mesh pipeline configuration
type MeshSettings struct {
	mu                  sync.RWMutex
	workers             int
	queueSize           int
	initialBufferBytes  int
	renderDataSupported bool
	snapshotTTL         time.Duration
}

var globalMeshSettings = &MeshSettings{
	workers:            max(runtime.NumCPU()-1, 1),
	queueSize:          200,
	initialBufferBytes: 128 * 1024,
	snapshotTTL:        5 * time.Second,
}

// GetWorkers returns the number of mesh worker goroutines
func GetWorkers() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.workers
}

// SetWorkers sets the number of mesh worker goroutines
func SetWorkers(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.workers = min(max(n, 1), 64)
}

// GetQueueSize returns the capacity of the mesh job queue
func GetQueueSize() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.queueSize
}

// SetQueueSize sets the capacity of the mesh job queue
func SetQueueSize(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.queueSize = max(n, 1)
}

// GetInitialBufferBytes returns the starting capacity of each scratch vertex buffer
func GetInitialBufferBytes() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.initialBufferBytes
}

// SetInitialBufferBytes sets the starting capacity of each scratch vertex buffer
func SetInitialBufferBytes(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()

	// Clamp to reasonable values
	globalMeshSettings.initialBufferBytes = min(max(n, 1024), 16*1024*1024)
}

// GetRenderDataSupported returns whether block entities can provide render payloads
func GetRenderDataSupported() bool {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.renderDataSupported
}

// SetRenderDataSupported records the render payload capability. Call once at startup.
func SetRenderDataSupported(supported bool) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.renderDataSupported = supported
}

// GetSnapshotTTL returns how long an unused section snapshot stays cached
func GetSnapshotTTL() time.Duration {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.snapshotTTL
}

// SetSnapshotTTL sets how long an unused section snapshot stays cached
func SetSnapshotTTL(d time.Duration) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.snapshotTTL = max(d, 0)
}
