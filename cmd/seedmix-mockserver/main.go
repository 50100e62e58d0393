package main

import (
	"flag"
	"log"
	"net"
	"net/http"
	"time"

	statsd "github.com/etsy/statsd/examples/go"
	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
)

var listenAddr string
var statsdAddr string

var statClient *statsd.StatsdClient

// pending holds uid -> initial seed for challenges that were handed out
// but not yet answered, plus outstanding verification codes.
var pending = cache.New(time.Minute*10, time.Minute)

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/challenge", handleGetChallenge).Methods("GET")
	r.HandleFunc("/challenge", handlePostChallenge).Methods("POST")
	r.HandleFunc("/verify", handleGetVerify).Methods("GET")
	r.HandleFunc("/verify", handlePostVerify).Methods("POST")
	return r
}

func incrStat(name string) {
	if statClient != nil {
		statClient.Increment(name)
	}
}

func main() {
	flag.StringVar(&listenAddr, "listenAddr", "127.0.0.1:8780", "address to listen on")
	flag.StringVar(&statsdAddr, "statsdAddr", "", "address of StatsD for gathering statistics")
	flag.Parse()
	if statsdAddr != "" {
		z, e := net.ResolveUDPAddr("udp", statsdAddr)
		if e != nil {
			panic(e)
		}
		statClient = statsd.New(z.IP.String(), z.Port)
	}
	log.Printf("seedmix mock server started on %v", listenAddr)
	err := http.ListenAndServe(listenAddr, newRouter())
	if err != nil {
		panic(err)
	}
}
