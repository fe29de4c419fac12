package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"bank_dashboard/pkg/api/allocation"
	"bank_dashboard/pkg/api/config"
	"bank_dashboard/pkg/core/store"
)

// ServerConfig is the optional config/server.yaml file.
type ServerConfig struct {
	Port string `yaml:"port"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := ServerConfig{Port: "8080"}
	if data, err := os.ReadFile("config/server.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Failed to parse config/server.yaml: %v\n", err)
		}
	}

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	fmt.Println("[STORE] Database pool initialized.")

	repo := store.NewSnapshotRepo()

	// Assumption-set endpoints
	configHandler := config.NewHandler(repo)
	http.HandleFunc("/api/config/assumptions/versions", configHandler.HandleVersions)
	http.HandleFunc("/api/config/assumptions", configHandler.HandleGet)
	http.HandleFunc("/api/config/assumptions/save", configHandler.HandleSave)

	// Allocation report endpoint. No narrative drafter is wired here; the
	// engine runs without one and the frontend falls back to the markdown
	// summary.
	allocationHandler := allocation.NewHandler(repo, nil)
	http.HandleFunc("/api/allocation/report", allocationHandler.HandleReport)

	fmt.Printf("API server starting on :%s...\n", cfg.Port)
	fmt.Println("  - GET  /api/config/assumptions/versions")
	fmt.Println("  - GET  /api/config/assumptions?version=<v>")
	fmt.Println("  - POST /api/config/assumptions/save")
	fmt.Println("  - POST /api/allocation/report")

	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
