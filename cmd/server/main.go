// Package main is the entry point for the sf2sfz API server
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/james-see/sf2sfz/pkg/api"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	verbose := flag.Bool("verbose", false, "Log conversion details")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Printf("Starting sf2sfz API server on port %d...\n", *port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", *port)

	if err := api.StartServer(*port, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
