package progress

import "time"

// Snapshot cache sizing. The TTL is short; the cache only absorbs dashboard
// refresh bursts, correctness comes from invalidation on every mutation.
const (
	SnapshotCacheSize = 1024
	SnapshotCacheTTL  = 30 * time.Second
)
