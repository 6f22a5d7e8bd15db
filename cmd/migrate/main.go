package main

import (
	"log"
	"os"

	"github.com/vidinsight/vidinsight/internal/infrastructure/database"
	"github.com/vidinsight/vidinsight/pkg/config"
)

// Applies SQL migrations from the migrations/ directory. Pass "down" to
// roll back the most recent migration; the default direction is "up".
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = database.MigrateUp(db)
	case "down":
		err = database.MigrateDown(db)
	default:
		log.Fatalf("Unknown direction %q; use \"up\" or \"down\"", direction)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
