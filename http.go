package ringcache

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ringcache/consistenthash"
	"ringcache/ringcachepb"
)

// HTTPPool implements PeerPicker and http.Handler: it is both the server
// side (answering other peers' fetches) and the client side (dispatching
// this node's fetches to the peer the ring selects) of the HTTP
// transport spec.md §6 describes.
//
// The ring is not internally synchronized (spec.md §5); HTTPPool owns the
// mutex that guards it and the peer client table together.
type HTTPPool struct {
	self     string
	basePath string
	log      *logrus.Entry

	mu          sync.Mutex
	ring        *consistenthash.Ring
	httpGetters map[string]*httpGetter
}

const (
	defaultBasePath = "/_ringcache/"
	defaultReplicas = 50
)

// NewHTTPPool constructs an HTTPPool identifying itself as self (e.g.
// "http://10.0.0.1:8000").
func NewHTTPPool(self string) *HTTPPool {
	return &HTTPPool{
		self:     self,
		basePath: defaultBasePath,
		log:      logrus.WithField("self", self),
	}
}

// Log writes a server-tagged log line.
func (p *HTTPPool) Log(format string, v ...interface{}) {
	p.log.Infof(format, v...)
}

// Set replaces the peer set, rebuilding the consistent-hash ring and the
// per-peer HTTP clients. Per spec.md §2.3's membership model, Set
// performs wholesale replacement rather than incremental add/remove.
func (p *HTTPPool) Set(peers ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ring = consistenthash.New(defaultReplicas, nil)
	p.ring.AddAll(peers...)

	p.httpGetters = make(map[string]*httpGetter, len(peers))
	for _, peer := range peers {
		p.httpGetters[peer] = &httpGetter{baseURL: peer + p.basePath}
	}
}

// Pick implements PeerPicker: it consults the ring and returns ok == false
// when the ring selects self, meaning the local node owns key.
func (p *HTTPPool) Pick(key string) (PeerGetter, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ring == nil {
		return nil, false
	}
	owner, ok := p.ring.Get(key)
	if !ok || owner == p.self {
		return nil, false
	}
	p.Log("pick peer %s", owner)
	return p.httpGetters[owner], true
}

// ServeHTTP answers a peer's fetch for <basePath>/<group>/<key>.
func (p *HTTPPool) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, p.basePath) {
		http.Error(w, "ringcache: unexpected path "+r.URL.Path, http.StatusBadRequest)
		return
	}
	p.Log("%s %s", r.Method, r.URL.Path)

	parts := strings.SplitN(r.URL.Path[len(p.basePath):], "/", 2)
	if len(parts) != 2 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	groupName, key := parts[0], parts[1]
	group := GetGroup(groupName)
	if group == nil {
		http.Error(w, "no such group: "+groupName, http.StatusNotFound)
		return
	}
	group.Stats.ServerRequests.Add(1)

	view, err := group.Get(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer view.Release()

	body, err := proto.Marshal(&ringcachepb.Response{Value: view.Bytes()})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(body)
}

// httpGetter is the client side of one peer: a PeerGetter that issues a
// plain HTTP GET and decodes the protobuf response body.
type httpGetter struct {
	baseURL string
}

var _ PeerGetter = (*httpGetter)(nil)

func (h *httpGetter) Name() string { return h.baseURL }

func (h *httpGetter) Get(in *ringcachepb.Request, out *ringcachepb.Response) error {
	u := fmt.Sprintf(
		"%v%v/%v",
		h.baseURL,
		url.QueryEscape(in.GetGroup()),
		url.QueryEscape(in.GetKey()),
	)
	res, err := http.Get(u)
	if err != nil {
		return errors.Wrap(err, "ringcache: peer request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("ringcache: peer returned status %v", res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "ringcache: reading peer response body")
	}
	if err := proto.Unmarshal(b, out); err != nil {
		return errors.Wrap(err, "ringcache: decoding peer response body")
	}
	return nil
}
