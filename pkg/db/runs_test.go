package db

import (
	"testing"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleStats() *models.RunStats {
	return &models.RunStats{
		Space:    "AA",
		ReadOnly: false,
		Fresh:    models.PhaseTally{Total: 12, Changed: 2, Suppressed: 1},
		Stale:    models.PhaseTally{Total: 5, Changed: 3, Suppressed: 0},
		Rotten:   models.PhaseTally{Total: 7, Changed: 6, Suppressed: 1},
		Errors:   1,
		Duration: 42 * time.Second,
	}
}

func TestRecordRun_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.RecordRun(sampleStats())
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("RecordRun() returned 0 run ID")
	}

	run, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}

	if run.Space != "AA" {
		t.Errorf("run.Space = %q, want AA", run.Space)
	}
	if run.Fresh != (models.PhaseTally{Total: 12, Changed: 2, Suppressed: 1}) {
		t.Errorf("run.Fresh = %+v", run.Fresh)
	}
	if run.Rotten.Suppressed != 1 {
		t.Errorf("run.Rotten.Suppressed = %d, want 1", run.Rotten.Suppressed)
	}
	if run.TotalPages() != 24 {
		t.Errorf("run.TotalPages() = %d, want 24", run.TotalPages())
	}
	if run.Duration != 42*time.Second {
		t.Errorf("run.Duration = %v, want 42s", run.Duration)
	}
	if run.Errors != 1 {
		t.Errorf("run.Errors = %d, want 1", run.Errors)
	}
}

func TestRecordRun_ReadOnlyFlag(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stats := sampleStats()
	stats.ReadOnly = true

	runID, err := db.RecordRun(stats)
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	run, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if !run.ReadOnly {
		t.Error("run.ReadOnly = false, want true")
	}
}

func TestListRuns_NewestFirstAndLimited(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var lastID int64
	for i := 0; i < 5; i++ {
		id, err := db.RecordRun(sampleStats())
		if err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
		lastID = id
	}

	runs, err := db.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	if runs[0].RunID != lastID {
		t.Errorf("runs[0].RunID = %d, want latest %d", runs[0].RunID, lastID)
	}
}

func TestLatestRunID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.LatestRunID(); err == nil {
		t.Error("LatestRunID() on an empty database should fail")
	}

	first, err := db.RecordRun(sampleStats())
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	second, err := db.RecordRun(sampleStats())
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if second <= first {
		t.Fatalf("run IDs not increasing: %d then %d", first, second)
	}

	latest, err := db.LatestRunID()
	if err != nil {
		t.Fatalf("LatestRunID() error = %v", err)
	}
	if latest != second {
		t.Errorf("LatestRunID() = %d, want %d", latest, second)
	}
}
