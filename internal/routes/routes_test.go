package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/wander-backend/internal/handlers"
	"github.com/Ananth-NQI/wander-backend/internal/models"
	"github.com/Ananth-NQI/wander-backend/internal/services"
	"github.com/Ananth-NQI/wander-backend/internal/storage"
)

// End to end through the real analysis client against a fake n8n webhook.
func TestJourneyRoundTrip(t *testing.T) {
	var webhookBody atomic.Value
	webhookBody.Store(`{"text":"Report A"}`)
	var (
		mu       sync.Mutex
		received map[string]interface{}
	)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		json.Unmarshal(raw, &received)
		mu.Unlock()
		w.Write([]byte(webhookBody.Load().(string)))
	}))
	defer webhook.Close()

	store := storage.NewMemoryStore()
	cache := services.NewReportCache()
	analyzer := services.NewAnalysisService(webhook.URL, 0)
	policy := handlers.EmailPolicy{RejectMissing: true, DefaultEmail: "guest@example.com"}

	app := fiber.New(fiber.Config{Immutable: true})
	SetupRoutes(app,
		handlers.NewJourneyHandler(store, analyzer, cache, nil, policy),
		handlers.NewCallbackHandler(store, cache, policy.DefaultEmail),
		handlers.NewReportHandler(cache),
		handlers.NewHealthHandler("test", "memory", store),
	)

	post := func(path string, body interface{}) int {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		return resp.StatusCode
	}
	get := func(path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}

	if _, report := get("/api/get-report"); report != models.ReportPending {
		t.Errorf("initial report = %q", report)
	}

	if status := post("/api/save-journey", map[string]string{"email": "a@x.com", "destination": "Tokyo"}); status != http.StatusOK {
		t.Fatalf("save-journey status = %d", status)
	}
	mu.Lock()
	if received["destination"] != "Tokyo" || received["input_type"] != models.InputTypeText {
		t.Errorf("webhook received %v", received)
	}
	mu.Unlock()
	if _, report := get("/api/get-report"); report != "Report A" {
		t.Errorf("report = %q, want Report A", report)
	}

	webhookBody.Store("plain fallback")
	if status := post("/api/save-journey", map[string]string{"email": "a@x.com"}); status != http.StatusOK {
		t.Fatalf("save-journey status = %d", status)
	}

	bookings, err := store.GetBookingsByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 2 {
		t.Fatalf("got %d bookings, want 2", len(bookings))
	}
	if bookings[0].ReportData != "plain fallback" && bookings[1].ReportData != "plain fallback" {
		t.Errorf("expected a raw fallback report, got %+v", bookings)
	}

	status, body := get("/api/get-journeys?email=a@x.com")
	if status != http.StatusOK {
		t.Fatalf("get-journeys status = %d", status)
	}
	var history []models.Booking
	if err := json.Unmarshal([]byte(body), &history); err != nil || len(history) != 2 {
		t.Errorf("history = %s (%v)", body, err)
	}

	if status, _ := get("/health"); status != http.StatusOK {
		t.Errorf("health status = %d", status)
	}
}
