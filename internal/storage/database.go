package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// DatabaseStore keeps bookings in PostgreSQL through GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store on an open, migrated connection
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.SetDefaults()
	if err := d.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, storeErr("create booking", err)
	}
	return booking, nil
}

func (d *DatabaseStore) GetBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	bookings := make([]*models.Booking, 0)
	err := d.db.WithContext(ctx).
		Where("email = ?", email).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, storeErr("get bookings by email", err)
	}
	return bookings, nil
}

func (d *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return storeErr("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (d *DatabaseStore) Close(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return storeErr("close", err)
	}
	return sqlDB.Close()
}
