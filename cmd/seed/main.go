// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"bunchly/internal/config"
	"bunchly/internal/database"
	"bunchly/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "number of demo users to create")
	numEvents := flag.Int("events", 2000, "number of analytics events to create")
	clean := flag.Bool("clean", false, "clear existing data before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "store plaintext markers instead of bcrypt hashes (faster)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumEvents:   *numEvents,
		ShouldClean: *clean,
		SkipBcrypt:  *skipBcrypt,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
