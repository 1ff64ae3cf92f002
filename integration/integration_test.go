package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/db"
	"github.com/tandemclub/tandem/internal/pool"
	"github.com/tandemclub/tandem/internal/summary"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func markRange(m *avail.Matrix, day, from, to int) {
	for s := from; s <= to; s++ {
		m.Set(day, s, true)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	grid := avail.NewMatrix(avail.DaysPerWeek, avail.SlotsHalfHourly)
	markRange(grid, 1, 18, 21) // Monday morning
	markRange(grid, 3, 38, 41) // Wednesday evening

	if err := repo.SaveAvailability(ctx, "alice", grid); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.LoadAvailability(ctx, "alice", avail.DaysPerWeek, avail.SlotsHalfHourly)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Equal(grid) {
		t.Fatalf("round trip mismatch:\nsaved:\n%s\nloaded:\n%s", grid, loaded)
	}
}

func TestEditSaveSubmitFlow(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	var received struct {
		UserID       string   `json:"userId"`
		Availability [][]bool `json:"availability"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	client := pool.New(server.URL, 5*time.Second)

	// Edit and save locally.
	grid := avail.NewMatrix(avail.DaysPerWeek, avail.SlotsHalfHourly)
	markRange(grid, 2, 20, 23)
	if err := repo.SaveAvailability(ctx, "bob", grid); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Submit what was saved.
	loaded, err := repo.LoadAvailability(ctx, "bob", avail.DaysPerWeek, avail.SlotsHalfHourly)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := client.Signup(ctx, "bob", loaded); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if received.UserID != "bob" {
		t.Errorf("pool got userId %q, want %q", received.UserID, "bob")
	}
	if len(received.Availability) != avail.DaysPerWeek {
		t.Fatalf("pool got %d rows, want %d", len(received.Availability), avail.DaysPerWeek)
	}
	if !received.Availability[2][20] || received.Availability[2][24] {
		t.Error("pool payload does not match the saved grid")
	}

	// Record the submission and verify the resubmit check sees it.
	sub := &avail.Submission{MemberID: "bob", Matrix: loaded, SubmittedAt: time.Now()}
	if err := repo.RecordSubmission(ctx, sub); err != nil {
		t.Fatalf("record submission: %v", err)
	}
	last, err := repo.LastSubmission(ctx, "bob")
	if err != nil {
		t.Fatalf("last submission: %v", err)
	}
	if last == nil || !last.Matrix.Equal(loaded) {
		t.Fatal("last submission does not match what was sent")
	}
}

func TestGridSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	grid := avail.NewMatrix(avail.DaysPerWeek, avail.SlotsHalfHourly)
	markRange(grid, 6, 30, 33)
	if err := repo.SaveAvailability(ctx, "carol", grid); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.LoadAvailability(ctx, "carol", avail.DaysPerWeek, avail.SlotsHalfHourly)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if !loaded.Equal(grid) {
		t.Fatal("grid changed across a database reopen")
	}
}

func TestSummaryOfPersistedWeek(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	geom := avail.NewGeometry(avail.SlotsHalfHourly, 0, time.Sunday)

	grid := avail.NewMatrix(geom.NumDays, geom.SlotsPerDay)
	markRange(grid, 0, 18, 19) // one hour Sunday
	markRange(grid, 4, 28, 31) // two hours Thursday
	if err := repo.SaveAvailability(ctx, "dave", grid); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.LoadAvailability(ctx, "dave", geom.NumDays, geom.SlotsPerDay)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	anchor := geom.WeekAnchor(time.Date(2025, 6, 4, 12, 0, 0, 0, time.Local))
	ws := summary.Summarize(loaded, geom, anchor)
	if ws.TotalHours != 3.0 {
		t.Errorf("total hours = %.1f, want 3.0", ws.TotalHours)
	}
	if len(ws.Ranges) != 2 {
		t.Errorf("ranges = %d, want 2", len(ws.Ranges))
	}
}
