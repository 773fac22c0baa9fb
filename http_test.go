package ringcache

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"ringcache/ringcachepb"
)

// TestHTTPPoolRoundTrip exercises the real wire path: a group served by
// an HTTPPool over httptest, fetched back through the protobuf-decoding
// httpGetter client.
func TestHTTPPoolRoundTrip(t *testing.T) {
	name := t.Name()
	NewGroup(name, 1<<20, GetterFunc(func(key string) (ByteView, error) {
		return StaticString("value-of-" + key), nil
	}))

	pool := NewHTTPPool("self")
	srv := httptest.NewServer(pool)
	defer srv.Close()

	client := &httpGetter{baseURL: srv.URL + defaultBasePath}

	key := "Tom"
	req := &ringcachepb.Request{Group: &name, Key: &key}
	resp := &ringcachepb.Response{}
	require.NoError(t, client.Get(req, resp))
	require.Equal(t, "value-of-Tom", string(resp.Value))
}

func TestHTTPPoolUnknownGroup(t *testing.T) {
	pool := NewHTTPPool("self")
	srv := httptest.NewServer(pool)
	defer srv.Close()

	res, err := http.Get(srv.URL + defaultBasePath + "no-such-group/key")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHTTPPoolBadPath(t *testing.T) {
	pool := NewHTTPPool("self")
	srv := httptest.NewServer(pool)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/wrong-prefix/x")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHTTPPoolPickSkipsSelf(t *testing.T) {
	pool := NewHTTPPool("http://127.0.0.1:8001")
	pool.Set("http://127.0.0.1:8001", "http://127.0.0.1:8002", "http://127.0.0.1:8003")

	// Probe enough keys that at least one should route to a remote peer
	// and at least one should resolve to self (and therefore report
	// ok == false, meaning "this node owns it").
	sawRemote, sawSelf := false, false
	for i := 0; i < 200; i++ {
		key := string(rune('a' + i%26))
		if i >= 26 {
			key += string(rune('a' + i/26))
		}
		if _, ok := pool.Pick(key); ok {
			sawRemote = true
		} else {
			sawSelf = true
		}
	}
	require.True(t, sawRemote, "expected at least one key to route to a remote peer")
	require.True(t, sawSelf, "expected at least one key to resolve to self")
}
