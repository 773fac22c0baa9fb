// Command local demonstrates a single-node ringcache.Group with no
// peers: every Get is satisfied by the local loader, which in turn is
// backed by an in-memory "slow database".
//
// curl http://127.0.0.1:9999/_ringcache/scores/Tom
package main

import (
	"log"
	"net/http"

	"ringcache"
)

var slowDB = map[string]string{
	"Tom":  "630",
	"Jack": "589",
	"Sam":  "567",
}

func getFromDB(key string) (ringcache.ByteView, error) {
	log.Println("[slowdb] search key", key)
	if v, ok := slowDB[key]; ok {
		return ringcache.CopyView([]byte(v)), nil
	}
	return ringcache.ByteView{}, &notFoundError{key}
}

type notFoundError struct{ key string }

func (e *notFoundError) Error() string { return e.key + " not exist" }

func main() {
	ringcache.NewGroup("scores", 2<<20, ringcache.GetterFunc(getFromDB))
	log.Println("ringcache is running at 127.0.0.1:9999")
	log.Fatal(http.ListenAndServe(":9999", ringcache.NewHTTPPool(":9999")))
}
