package ringcache

import "sync/atomic"

// ByteView holds an immutable view of a byte sequence. It is the handle
// spec.md calls a "byte-string handle": either a static, non-owning view
// into memory the caller already controls, or a shared, refcounted owned
// buffer. Contents never mutate once created; clones share storage.
//
// The zero ByteView is a valid, empty, static view.
type ByteView struct {
	b     []byte
	owned *ownedBuf
}

// Key is the handle type a caller constructs a key from at the API
// boundary (e.g. to hand to StaticString/CopyView); spec.md §3 treats Key
// and Value as the same handle type. Internally, every lookup table
// (single-flight, LRU, the ring's membership map) keys on the resulting
// plain Go string instead of retaining the handle — spec.md §4.5 itself
// calls the single-flight table's key "rawkey", and Go's native string
// equality already gives those tables exact byte-equality comparison and
// hashing for free, so there is no surviving use for Key or a handle-level
// Hash beyond the boundary conversion. See DESIGN.md.
type Key = ByteView

type ownedBuf struct {
	buf  []byte
	refs int32
}

// StaticView wraps s without taking ownership or copying it. The caller
// must not mutate s for as long as the returned ByteView is in use.
func StaticView(s []byte) ByteView {
	return ByteView{b: s}
}

// StaticString is StaticView for a string's bytes.
func StaticString(s string) ByteView {
	return ByteView{b: []byte(s)}
}

// CopyView copies b into a new owned, refcounted buffer.
func CopyView(b []byte) ByteView {
	buf := make([]byte, len(b))
	copy(buf, b)
	return moveOwned(buf)
}

// MoveView takes ownership of b without copying. The caller must not
// retain or mutate b afterward; ownership, including the obligation to
// eventually Release, transfers to the returned ByteView.
func MoveView(b []byte) ByteView {
	return moveOwned(b)
}

func moveOwned(b []byte) ByteView {
	o := &ownedBuf{buf: b, refs: 1}
	return ByteView{b: b, owned: o}
}

// Clone returns a handle sharing the same storage. For a static view this
// is a cheap no-op copy; for an owned view it increments the refcount.
func (v ByteView) Clone() ByteView {
	if v.owned != nil {
		atomic.AddInt32(&v.owned.refs, 1)
	}
	return v
}

// Release decrements the refcount of an owned view, freeing the backing
// buffer when it reaches zero. Release on a static view, or on the zero
// ByteView, is a no-op. Release must be called at most once per Clone
// (including the Clone implicit in the constructor that created the
// handle).
func (v ByteView) Release() {
	if v.owned == nil {
		return
	}
	if atomic.AddInt32(&v.owned.refs, -1) == 0 {
		v.owned.buf = nil
	}
}

// Len returns the view's length.
func (v ByteView) Len() int {
	return len(v.b)
}

// Bytes returns the view's underlying bytes. The slice must be treated as
// read-only by the caller; use ByteSlice for an independent copy.
func (v ByteView) Bytes() []byte {
	return v.b
}

// ByteSlice returns a copy of the view's bytes, safe for the caller to
// mutate.
func (v ByteView) ByteSlice() []byte {
	c := make([]byte, len(v.b))
	copy(c, v.b)
	return c
}

// String returns the view's bytes as a string.
func (v ByteView) String() string {
	return string(v.b)
}

// Equal reports whether two views have identical content.
func (v ByteView) Equal(other ByteView) bool {
	if len(v.b) != len(other.b) {
		return false
	}
	for i := range v.b {
		if v.b[i] != other.b[i] {
			return false
		}
	}
	return true
}
