package main

import (
	"fmt"
	"log"
	"os"

	"PickEm/api/config"
	"PickEm/api/database"
	"PickEm/api/models"
	"PickEm/api/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&models.Team{}, &models.User{}, &models.Game{}, &models.UserPick{}); err != nil {
		log.Fatal("Failed to migrate:", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch command := os.Args[1]; command {
	case "generate":
		if err := seed.Load(db); err != nil {
			log.Fatal("Failed to seed tournament:", err)
		}
		fmt.Println("Tournament seeded.")
	case "clear":
		if err := seed.Clear(db); err != nil {
			log.Fatal("Failed to clear tournament:", err)
		}
		fmt.Println("Tournament cleared.")
	case "regenerate":
		fmt.Println("Clearing existing data...")
		if err := seed.Clear(db); err != nil {
			log.Fatal("Failed to clear tournament:", err)
		}
		if err := seed.Load(db); err != nil {
			log.Fatal("Failed to seed tournament:", err)
		}
		fmt.Println("Tournament regenerated.")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./api/cmd/seed generate    - Seed 64 teams and 63 games")
	fmt.Println("  go run ./api/cmd/seed clear       - Delete teams, games and picks")
	fmt.Println("  go run ./api/cmd/seed regenerate  - Clear and seed again")
}
