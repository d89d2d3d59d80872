// Package partition assigns entities to a fixed number of worker lanes by
// a stable hash of their ID, so the same entity always lands
// on the same lane across restarts and across the two ingest stages.
package partition

import "hash/fnv"

// Lane returns the worker lane in [0, lanes) that entityID is assigned to.
// lanes must be at least 1.
func Lane(entityID string, lanes int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32() % uint32(lanes))
}
