package serve

import (
	"net/http"
	"os"
	"strconv"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// RunOpts configures Run.
type RunOpts struct {
	// Addr is the address to listen on.
	// If not passed, looks for the PORT env var or defaults to port 8080.
	Addr string

	// ServeAll hosts the server on all addresses (vs localhost) if Addr is
	// unspecified.
	ServeAll bool

	// Handler is the handler to serve.
	// If nil, uses [http.DefaultServeMux].
	Handler http.Handler
}

// Run serves HTTP traffic in a sensibly default way, with H2C support so
// clients behind proxies can multiplex sockets over one connection.
func Run(opts *RunOpts) error {
	if opts == nil {
		opts = &RunOpts{}
	}

	addr := opts.Addr
	if addr == "" {
		port, _ := strconv.Atoi(os.Getenv("PORT"))
		if port <= 0 {
			port = 8080
		}

		host := "localhost"
		if opts.ServeAll {
			host = ""
		}

		addr = host + ":" + strconv.Itoa(port)
	}

	handler := opts.Handler
	if handler == nil {
		handler = http.DefaultServeMux
	}

	h2s := &http2.Server{}
	handler = h2c.NewHandler(handler, h2s)

	s := http.Server{Addr: addr, Handler: handler}
	return s.ListenAndServe()
}
