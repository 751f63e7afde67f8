package main

import (
	"fmt"
	"os"

	"newsum/internal/app"
	"newsum/internal/config"
)

func main() {
	cfg, err := config.LoadConfigOrDefault("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	r, addr := app.NewServer(cfg)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
