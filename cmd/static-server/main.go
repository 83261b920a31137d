package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

func main() {
	var (
		siteDir = flag.String("dir", "data/site", "static site directory (export-static output)")
		addr    = flag.String("addr", ":9000", "listen address")
	)
	flag.Parse()

	manifestPath := filepath.Join(*siteDir, "site.json")

	http.HandleFunc("/portfolios", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(manifestPath)
		if err != nil {
			http.Error(w, "cannot read site.json: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate JSON so a bad export doesn't silently break
		var tmp any
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, "site.json invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	http.Handle("/p/", http.FileServer(http.Dir(*siteDir)))

	log.Printf("static-server serving %s on %s", *siteDir, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
