package main

import (
	stdlog "log"
	"net/http"
	"time"

	"github.com/spf13/pflag"
)

var addr = pflag.String("addr", ":7171", "Listen address")

func init() {
	pflag.Parse()
}

func main() {
	sim := NewSimulator()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           sim.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stdlog.Printf("start simulator at %q: finlab base url http://localhost%s, fugle entry http://localhost%s/fugle", *addr, *addr, *addr)
	mustNil(srv.ListenAndServe())
}

func mustNil(err error) {
	if err != nil {
		stdlog.Panic(err)
	}
}
