package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/user/dayboard/backend/internal/config"
	"github.com/user/dayboard/backend/internal/database"
	"github.com/user/dayboard/backend/internal/models"
	"github.com/user/dayboard/backend/internal/repository"
)

func main() {
	seed := flag.Bool("seed", false, "seed a demo user with starter areas after migrating")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Running database migrations...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	log.Println("Migrations complete")

	if !*seed {
		return
	}

	log.Println("Seeding demo data...")
	userRepo := repository.NewUserRepository(db)
	areaRepo := repository.NewAreaRepository(db)

	user, err := userRepo.FindByEmail("demo@example.com")
	if err != nil {
		user = &models.User{
			GoogleID:    "demo-user",
			Email:       "demo@example.com",
			DisplayName: "Demo User",
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatalf("Failed to seed demo user: %v", err)
		}
	}

	for _, name := range []string{"health", "coding", "family", "money", "other"} {
		if _, err := areaRepo.FindOrCreate(user.ID, name); err != nil {
			log.Fatalf("Failed to seed area %q: %v", name, err)
		}
	}
	log.Println("Seed complete")
}
