package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/Ananth-NQI/wander-backend/internal/models"
	"github.com/Ananth-NQI/wander-backend/internal/storage"
)

var (
	ErrMockAnalyze = errors.New("webhook unreachable")
	ErrMockStore   = errors.New("store unreachable")
)

// MockAnalyzer implements Analyzer for testing
type MockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, payload map[string]interface{}) (string, error)

	mu       sync.Mutex
	Payloads []map[string]interface{}
}

func (m *MockAnalyzer) Analyze(ctx context.Context, payload map[string]interface{}) (string, error) {
	m.mu.Lock()
	m.Payloads = append(m.Payloads, payload)
	m.mu.Unlock()

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, payload)
	}
	return "Report A", nil
}

func (m *MockAnalyzer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payloads)
}

// MockStore wraps a MemoryStore and lets tests inject failures
type MockStore struct {
	*storage.MemoryStore
	CreateBookingFunc      func(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBookingsByEmailFunc func(ctx context.Context, email string) ([]*models.Booking, error)
	PingFunc               func(ctx context.Context) error

	QueryCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: storage.NewMemoryStore()}
}

func (m *MockStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if m.CreateBookingFunc != nil {
		return m.CreateBookingFunc(ctx, booking)
	}
	return m.MemoryStore.CreateBooking(ctx, booking)
}

func (m *MockStore) GetBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	m.QueryCalls++
	if m.GetBookingsByEmailFunc != nil {
		return m.GetBookingsByEmailFunc(ctx, email)
	}
	return m.MemoryStore.GetBookingsByEmail(ctx, email)
}

func (m *MockStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// MockArchiver implements TicketArchiver for testing
type MockArchiver struct {
	ArchiveFunc func(ctx context.Context, ticket string) (string, error)
}

func (m *MockArchiver) Archive(ctx context.Context, ticket string) (string, error) {
	return m.ArchiveFunc(ctx, ticket)
}
