package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in dependency order: users carry the
// subscriptions and progress rows the later seeders attach to.
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	if err := s.SeedSessions(); err != nil {
		log.Printf("Session seeding failed: %v", err)
		return err
	}

	if err := s.SeedPayments(); err != nil {
		log.Printf("Payment seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedUsers() error {
	return NewUserSeeder(s.db).SeedUsers()
}

func (s *MainSeeder) SeedSessions() error {
	return NewSessionSeeder(s.db).SeedSessions()
}

func (s *MainSeeder) SeedPayments() error {
	return NewPaymentSeeder(s.db).SeedPayments()
}
