package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// MemoryStore holds all bookings in memory (testing and local runs)
type MemoryStore struct {
	bookings  []models.Booking
	bookingMu sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking == nil {
		return nil, storeErr("create booking", fmt.Errorf("nil booking"))
	}

	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	booking.SetDefaults()
	m.bookings = append(m.bookings, *booking)
	return booking, nil
}

func (m *MemoryStore) GetBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	results := make([]*models.Booking, 0)
	// Walk backwards so equal dates keep the newest insert first.
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if m.bookings[i].Email == email {
			b := m.bookings[i]
			results = append(results, &b)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date.After(results[j].Date)
	})
	return results, nil
}

// Count returns the number of stored bookings.
func (m *MemoryStore) Count() int {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()
	return len(m.bookings)
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}
