package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// Connect opens the PostgreSQL connection and migrates the bookings table
func Connect(dsn string) (*gorm.DB, error) {
	log.Println("📦 Connecting to PostgreSQL database...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return nil, err
	}
	log.Println("✅ Database connected successfully!")

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		return nil, err
	}
	log.Println("✅ Database migrations completed!")

	return db, nil
}
