// Package consistenthash implements a replicated consistent-hash ring
// used to route cache keys to their owning peer.
package consistenthash

import (
	"hash/crc32"
	"sort"
	"strconv"
)

// Hash maps bytes to a 32-bit value. Injected so callers can swap the
// algorithm or substitute a deterministic stub in tests; defaults to
// crc32.ChecksumIEEE.
type Hash func(data []byte) uint32

// Ring is the consistent-hash ring: a sorted list of virtual-node
// positions and the map from each position back to its owning member
// key. Ring is not internally synchronized — spec.md §5 makes the
// embedding collaborator (e.g. HTTPPool) responsible for guarding
// concurrent access.
type Ring struct {
	hash      Hash
	replicas  int
	positions []uint32
	owners    map[uint32]string
}

// New constructs a Ring. replicas <= 0 defaults to 50; fn == nil defaults
// to crc32.ChecksumIEEE.
func New(replicas int, fn Hash) *Ring {
	if replicas <= 0 {
		replicas = 50
	}
	r := &Ring{
		hash:     fn,
		replicas: replicas,
		owners:   make(map[uint32]string),
	}
	if r.hash == nil {
		r.hash = crc32.ChecksumIEEE
	}
	return r
}

func (r *Ring) replicaHash(i int, key string) uint32 {
	return r.hash([]byte(strconv.Itoa(i) + key))
}

// Add inserts key's replicas virtual nodes into the ring. It reports
// whether key was already a member (in which case the ring is
// unchanged); membership is detected per spec.md §4.4 by checking
// whether the replica-0 position is already present.
func (r *Ring) Add(key string) (alreadyPresent bool) {
	if _, ok := r.owners[r.replicaHash(0, key)]; ok {
		return true
	}
	for i := 0; i < r.replicas; i++ {
		h := r.replicaHash(i, key)
		r.positions = append(r.positions, h)
		r.owners[h] = key
	}
	sort.Slice(r.positions, func(i, j int) bool { return r.positions[i] < r.positions[j] })
	return false
}

// AddAll adds every key in keys; order does not affect the resulting
// ring (spec.md §4.4's determinism invariant).
func (r *Ring) AddAll(keys ...string) {
	for _, k := range keys {
		r.Add(k)
	}
}

// Get returns the owner of probeKey, and false if the ring has no
// members. The owner is the member whose closest virtual-node position
// is greater than or equal to hash(probeKey), wrapping around to
// position 0 when probeKey's hash exceeds every position.
func (r *Ring) Get(probeKey string) (owner string, ok bool) {
	if len(r.positions) == 0 {
		return "", false
	}
	h := r.hash([]byte(probeKey))
	idx := sort.Search(len(r.positions), func(i int) bool {
		return r.positions[i] >= h
	})
	return r.owners[r.positions[idx%len(r.positions)]], true
}

// Reset removes every member from the ring.
func (r *Ring) Reset() {
	r.positions = nil
	r.owners = make(map[uint32]string)
}

// Remove deletes key's virtual nodes from the ring.
func (r *Ring) Remove(key string) {
	for i := 0; i < r.replicas; i++ {
		h := r.replicaHash(i, key)
		if _, ok := r.owners[h]; !ok {
			continue
		}
		delete(r.owners, h)
		idx := sort.Search(len(r.positions), func(j int) bool { return r.positions[j] >= h })
		if idx < len(r.positions) && r.positions[idx] == h {
			r.positions = append(r.positions[:idx], r.positions[idx+1:]...)
		}
	}
}
