// Command cluster runs one peer node of a three-node cluster, optionally
// with a frontend API server, demonstrating ownership routing across
// peers via the consistent-hash ring inside HTTPPool.
//
//	go run . -port=8001 &
//	go run . -port=8002 &
//	go run . -port=8003 -api &
//	curl "http://127.0.0.1:9999/api?key=Tom"
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"ringcache"
)

var slowDB = map[string]string{
	"Tom":  "630",
	"Jack": "589",
	"Sam":  "567",
}

func createGroup() *ringcache.Group {
	return ringcache.NewGroup("scores", 2<<20, ringcache.GetterFunc(
		func(key string) (ringcache.ByteView, error) {
			time.Sleep(3 * time.Second) // simulate a slow local source
			log.Println("[slowdb] search key", key)
			if v, ok := slowDB[key]; ok {
				return ringcache.CopyView([]byte(v)), nil
			}
			return ringcache.ByteView{}, fmt.Errorf("%s not exist", key)
		}))
}

func startCacheServer(addr string, addrs []string, group *ringcache.Group) {
	peers := ringcache.NewHTTPPool(addr)
	peers.Set(addrs...)
	group.RegisterPeers(peers)
	log.Println("ringcache is running at", addr)
	log.Fatal(http.ListenAndServe(addr[7:], peers))
}

func startAPIServer(apiAddr string, group *ringcache.Group) {
	http.Handle("/api", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := req.URL.Query().Get("key")
		view, err := group.Get(key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer view.Release()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(view.Bytes())
	}))
	log.Println("frontend server is running at", apiAddr)
	log.Fatal(http.ListenAndServe(apiAddr[7:], nil))
}

func main() {
	var port int
	var api bool
	flag.IntVar(&port, "port", 8001, "ringcache server port")
	flag.BoolVar(&api, "api", false, "start an api server")
	flag.Parse()

	apiAddr := "http://127.0.0.1:9999"
	addrMap := map[int]string{
		8001: "http://127.0.0.1:8001",
		8002: "http://127.0.0.1:8002",
		8003: "http://127.0.0.1:8003",
	}

	var addrs []string
	for _, v := range addrMap {
		addrs = append(addrs, v)
	}

	group := createGroup()
	if api {
		go startAPIServer(apiAddr, group)
	}
	startCacheServer(addrMap[port], addrs, group)
}
