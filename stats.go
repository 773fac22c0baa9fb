package ringcache

import "sync/atomic"

// AtomicInt is an int64 updated with sync/atomic operations, per spec.md
// §4.6/§9: readers are not required to see a consistent snapshot across
// counters.
type AtomicInt int64

// Add atomically adds n to i.
func (i *AtomicInt) Add(n int64) {
	atomic.AddInt64((*int64)(i), n)
}

// Get atomically reads i.
func (i *AtomicInt) Get() int64 {
	return atomic.LoadInt64((*int64)(i))
}

// Stats are a Group's monotonic counters.
type Stats struct {
	Gets           AtomicInt // any Get call
	CacheHits      AtomicInt // main or hot cache hit
	Loads          AtomicInt // non-empty-key Gets that missed both caches
	LoadsDeduped   AtomicInt // single-flight tasks that also missed the cache re-check
	PeerLoads      AtomicInt // successful remote fetches
	PeerErrors     AtomicInt // failed remote fetches that fell back to local
	LocalLoads     AtomicInt // successful getter invocations
	LocalLoadErrs  AtomicInt // failed getter invocations
	ServerRequests AtomicInt // Gets that arrived over the wire from a peer
}

// CacheStats are the counters of a single synchronized cache.
type CacheStats struct {
	Bytes     int64
	Items     int64
	Gets      int64
	Hits      int64
	Evictions int64
}
