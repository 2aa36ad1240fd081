package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/wanderlist/internal/config"
	"github.com/wanderlist/internal/repo"
	"github.com/wanderlist/internal/web"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	r, err := openRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open repository: %v\n", err)
		os.Exit(1)
	}

	server := web.NewServer(web.ConfigFromEnv(), r)
	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		os.Exit(1)
	}
}

func openRepository() (repo.PlacesRepository, error) {
	backend := config.GetEnv("PLACES_BACKEND", "notion")

	switch backend {
	case "notion":
		creds, err := config.Require("NOTION_API_KEY", "NOTION_DATABASE_ID")
		if err != nil {
			return nil, err
		}
		return repo.NewNotionRepository(creds["NOTION_API_KEY"], creds["NOTION_DATABASE_ID"]), nil

	case "postgres":
		db, err := repo.OpenPostgres(
			config.GetEnv("PGHOST", "localhost"),
			config.GetEnv("PGPORT", "5432"),
			config.GetEnv("PGUSER", "places"),
			config.GetEnv("PGPASSWORD", "places"),
			config.GetEnv("PGDATABASE", "places"),
		)
		if err != nil {
			return nil, err
		}
		pg := repo.NewPostgresRepository(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return pg, nil

	default:
		return nil, fmt.Errorf("unknown PLACES_BACKEND %q", backend)
	}
}
