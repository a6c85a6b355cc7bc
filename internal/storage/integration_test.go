package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Ananth-NQI/wander-backend/database"
	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// These run against real databases and are skipped unless
// TEST_DATABASE_URL / TEST_MONGO_URI are set.

func TestDatabaseStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	store := NewDatabaseStore(db)
	defer store.Close(context.Background())

	exerciseStore(t, store)
}

func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	coll, err := database.ConnectMongo(ctx, uri, "wanderDB_test", "bookings")
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	store, err := NewMongoStore(ctx, coll)
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer store.Close(ctx)

	exerciseStore(t, store)
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	email := fmt.Sprintf("traveller.%d@example.com", time.Now().UnixNano())
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, report := range []string{"first", "second"} {
		_, err := store.CreateBooking(ctx, &models.Booking{
			InputType:  models.InputTypeText,
			Email:      email,
			ReportData: report,
			Date:       base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("CreateBooking() error: %v", err)
		}
	}

	bookings, err := store.GetBookingsByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetBookingsByEmail() error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("got %d bookings, want 2", len(bookings))
	}
	if bookings[0].ReportData != "second" || bookings[1].ReportData != "first" {
		t.Errorf("wrong order: %q, %q", bookings[0].ReportData, bookings[1].ReportData)
	}

	none, err := store.GetBookingsByEmail(ctx, "missing."+email)
	if err != nil {
		t.Fatalf("GetBookingsByEmail() error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d bookings for unknown email, want 0", len(none))
	}
}
