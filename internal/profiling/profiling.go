package profiling

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Cumulative per-operation timings for the mesh pipeline. Workers record
// concurrently; callers reset between batches.

// Stat is the accumulated time and call count of one operation.
type Stat struct {
	Total time.Duration
	Calls int
}

// Mean returns the average duration per call.
func (s Stat) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

var (
	mu    sync.Mutex
	stats = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := stats[name]
		s.Total += d
		s.Calls++
		stats[name] = s
		mu.Unlock()
	}
}

// Reset clears all recorded timings.
func Reset() {
	mu.Lock()
	clear(stats)
	mu.Unlock()
}

// Snapshot returns a copy of the recorded timings.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(stats))
	for k, v := range stats {
		out[k] = v
	}
	return out
}

// SumWithPrefix returns the total time of every operation whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	ss := Snapshot()
	return lo.SumBy(lo.Entries(ss), func(e lo.Entry[string, Stat]) time.Duration {
		if strings.HasPrefix(e.Key, prefix) {
			return e.Value.Total
		}
		return 0
	})
}

// TopN formats the n most expensive operations.
// Example: "meshing.CreateMesh:4.2ms(x12), snapshot.Capture:2.1ms(x48)"
func TopN(n int) string {
	list := lo.Entries(Snapshot())
	slices.SortFunc(list, func(a, b lo.Entry[string, Stat]) int {
		if a.Value.Total != b.Value.Total {
			if a.Value.Total > b.Value.Total {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.Value.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(x%d)", e.Key, ms, e.Value.Calls))
	}
	return strings.Join(parts, ", ")
}
