package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/sbermejom01/api-BetsSoccer/internal/database"
	"github.com/sbermejom01/api-BetsSoccer/internal/store"
)

var demoUsers = []struct{ Username, Email string }{
	{"demo", "demo@betssoccer.dev"},
	{"laura", "laura@betssoccer.dev"},
	{"marcos", "marcos@betssoccer.dev"},
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"DB_NAME": "league.db"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	s := store.New(db)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	startTime := time.Now()

	players := 0
	for _, t := range teams {
		if err := s.UpsertTeam(ctx, t.Name, t.Strength); err != nil {
			log.Fatalf("Failed to seed team: %s", err)
		}
		squad, ok := squads[t.Name]
		if !ok {
			squad = fallbackSquad
		}
		for _, name := range squad {
			if err := s.AddPlayer(ctx, t.Name, name); err != nil {
				log.Fatalf("Failed to seed player: %s", err)
			}
			players++
		}
		log.Info("Seeded team", "team", t.Name, "strength", t.Strength, "squad", len(squad))
	}

	for _, u := range demoUsers {
		id, err := s.AddUser(ctx, u.Username, u.Email)
		if err != nil {
			log.Fatalf("Failed to seed user: %s", err)
		}
		log.Info("Ensured demo user exists", "username", u.Username, "id", id)
	}

	log.Info("Seeding completed.", "teams", len(teams), "players", players, "users", len(demoUsers), "duration", time.Since(startTime))
}
