package main

import (
	"flag"
	"log"
	"net/http"

	"datalens/ui"
)

func main() {
	filePath := flag.String("file", "", "path to a CSV or Excel file to explore")
	port := flag.String("port", "8090", "port to listen on")
	maxRows := flag.Int("max-rows", 0, "cap on data rows to load (0 = no cap)")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: explorer -file data.csv [-port 8090] [-max-rows 5000]")
	}

	app, err := ui.NewApp(ui.AppConfig{FilePath: *filePath, MaxRows: *maxRows})
	if err != nil {
		log.Fatalf("Failed to start explorer: %v", err)
	}

	log.Printf("[Explorer] listening on :%s", *port)
	if err := http.ListenAndServe(":"+*port, app.Router()); err != nil {
		log.Fatalf("Explorer failed: %v", err)
	}
}
