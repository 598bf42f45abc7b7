// Command recalc rebuilds season statistics offline by replaying every
// finished fixture in kickoff order. Useful after a scoring correction or a
// suspected drift between predictions and aggregates.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/yourusername/predictor-api/internal/config"
	pgRepo "github.com/yourusername/predictor-api/internal/repository/postgres"
	"github.com/yourusername/predictor-api/internal/service"
	"github.com/yourusername/predictor-api/pkg/database"
)

func main() {
	seasonID := flag.Uint("season", 0, "season ID to rebuild (defaults to the current season)")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	seasonRepo := pgRepo.NewSeasonRepo(db)
	fixtureRepo := pgRepo.NewFixtureRepo(db)
	predictionRepo := pgRepo.NewPredictionRepo(db)
	statsRepo := pgRepo.NewStatsRepo(db)

	statsService := service.NewStatsService(statsRepo, predictionRepo, fixtureRepo, db)

	id := *seasonID
	if id == 0 {
		season, err := seasonRepo.GetCurrent()
		if err != nil {
			log.Printf("Failed to resolve current season: %v", err)
			os.Exit(1)
		}
		id = season.ID
	}

	log.Printf("Rebuilding statistics for season %d...", id)
	if err := statsService.RebuildSeason(id); err != nil {
		log.Printf("Rebuild failed: %v", err)
		os.Exit(1)
	}
	log.Printf("Season %d statistics rebuilt", id)
}
