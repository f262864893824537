package main

import (
	"log"

	"peoplelens/internal/config"
	"peoplelens/internal/testkit"
	"peoplelens/ui"
)

// Demo entry point: serves the dashboard on the generated workforce, no
// data files required.
func main() {
	kit := testkit.NewTestKit()
	bundle, err := kit.Bundle()
	if err != nil {
		log.Fatal("Failed to build demo bundle:", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", GinMode: "debug"},
		Charts: config.ChartConfig{RenderLimit: 4, RatePerSec: 20, Burst: 40},
	}

	server, err := ui.NewServer(cfg, bundle)
	if err != nil {
		log.Fatal("Failed to create dashboard server:", err)
	}

	log.Println("Starting PeopleLens demo dashboard on http://localhost:8080")
	log.Fatal(server.Start(":8080"))
}
