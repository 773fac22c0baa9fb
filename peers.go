package ringcache

import "ringcache/ringcachepb"

// PeerPicker locates the peer that owns a given key. Pick returns
// ok == false when the local node is the owner (per spec.md §4.7, "none
// means this node owns the key").
type PeerPicker interface {
	Pick(key string) (peer PeerGetter, ok bool)
}

// PeerGetter is the client side of the peer RPC: fetching a key from the
// peer that owns it.
type PeerGetter interface {
	Get(in *ringcachepb.Request, out *ringcachepb.Response) error

	// Name identifies the peer for logging.
	Name() string
}
