package main

import (
	"context"
	"flag"
	"log"

	"github.com/arcadehq/critique/pkg/catalog"
	"github.com/arcadehq/critique/pkg/config"
)

// critique-seed creates the schema and loads sample data, for local
// development and demos.
func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := catalog.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := catalog.Migrate(ctx, store.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := catalog.Seed(ctx, store.DB()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Printf("Seeded %s database at %s", cfg.Storage.Driver, cfg.Storage.DSN)
}
