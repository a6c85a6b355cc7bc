package storage

import (
	"context"
	"fmt"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// Store defines the interface for booking storage. Bookings are append-only:
// there are no update or delete operations.
type Store interface {
	// CreateBooking persists a booking, assigning its ID and date when missing.
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	// GetBookingsByEmail returns every booking for the email, newest first.
	// It returns an empty slice when nothing matches.
	GetBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// StoreError wraps any failure of the underlying store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
