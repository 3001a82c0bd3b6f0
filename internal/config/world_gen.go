package config

import "sync"

// WorldGenSettings holds synthetic world generation configuration
type WorldGenSettings struct {
	mu     sync.RWMutex
	seed   int64
	radius int
	debug  bool
	noSky  bool
}

var globalWorldGenSettings = &WorldGenSettings{
	seed:   1,
	radius: 4,
}

// GetSeed returns the terrain seed
func GetSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetSeed sets the terrain seed
func SetSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetRadius returns the generated area radius in chunks
func GetRadius() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.radius
}

// SetRadius sets the generated area radius in chunks
func SetRadius(r int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.radius = min(max(r, 0), 32)
}

// GetDebugWorld returns whether the debug world layout is used
func GetDebugWorld() bool {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.debug
}

// SetDebugWorld sets whether the debug world layout is used
func SetDebugWorld(enabled bool) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.debug = enabled
}

// GetNoSky returns whether the dimension lacks sky light
func GetNoSky() bool {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.noSky
}

// SetNoSky sets whether the dimension lacks sky light
func SetNoSky(enabled bool) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.noSky = enabled
}
