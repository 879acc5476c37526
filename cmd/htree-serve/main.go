// Command htree-serve hosts one shared history tree over WebSocket, pushing
// every mutation to every connected client.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/PistonDevelopers/history-tree/feed"
	"github.com/PistonDevelopers/history-tree/serve"
	"github.com/PistonDevelopers/history-tree/tree"
)

func main() {
	addr := flag.String("addr", "", "address to listen on (default localhost:$PORT)")
	all := flag.Bool("all", false, "listen on all addresses if -addr is unset")
	flag.Parse()

	h := &serve.Handler{
		Tree:    tree.New(),
		Feed:    feed.New(),
		OpLimit: &serve.LimitConfig{Burst: 50, Rate: 100},
	}

	mux := http.NewServeMux()
	mux.Handle("/tree", h)

	log.Fatal(serve.Run(&serve.RunOpts{
		Addr:     *addr,
		ServeAll: *all,
		Handler:  mux,
	}))
}
