package ringcache

import "github.com/pkg/errors"

// Error kinds surfaced to the caller of Group.Get, per spec.md §7.
var (
	// ErrAllocationFailure indicates memory exhaustion at any layer.
	ErrAllocationFailure = errors.New("ringcache: allocation failure")

	// ErrLoaderError wraps any error returned by the local loader.
	ErrLoaderError = errors.New("ringcache: loader error")

	// ErrMissingPeerResponseValue indicates a peer response lacked the
	// value field.
	ErrMissingPeerResponseValue = errors.New("ringcache: peer response missing value")

	// ErrPeerTransportError wraps any transport-level failure during a
	// peer fetch.
	ErrPeerTransportError = errors.New("ringcache: peer transport error")
)
