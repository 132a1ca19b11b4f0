package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, sessions, payments")
		dbPath   = flag.String("db", "", "Database path (overrides DB_NAME env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	databasePath := *dbPath
	if databasePath == "" {
		databasePath = os.Getenv("DB_NAME")
		if databasePath == "" {
			databasePath = "shulecoach.db"
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("Connected to database: %s", databasePath)

	err = db.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.PaymentRecord{},
		&model.StudyProgress{},
		&model.StudySession{},
		&model.RateLimit{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		err = mainSeeder.SeedAll()
	case "users":
		err = mainSeeder.SeedUsers()
	case "sessions":
		err = mainSeeder.SeedSessions()
	case "payments":
		err = mainSeeder.SeedPayments()
	default:
		log.Fatalf("Unknown seed type: %s", *seedType)
	}

	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed")
}

func showHelp() {
	log.Println(`ShuleCoach database seeder

Usage:
  seed [flags]

Flags:
  -type string   Type of seeding: all, users, sessions, payments (default "all")
  -db string     Database path (overrides DB_NAME env var)
  -help          Show this message

Demo accounts are created with the password DemoPass123.`)
}
