package lifecycle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
	"github.com/nwillems/confluence-lifecycle/pkg/confluence"
)

// fakeHistoryStore serves canned history records keyed by page ID.
type fakeHistoryStore struct {
	histories map[string]*confluence.PageHistory
}

func (f *fakeHistoryStore) GetHistory(_ context.Context, pageID string) (*confluence.PageHistory, error) {
	history, ok := f.histories[pageID]
	if !ok {
		return nil, fmt.Errorf("page %s not found", pageID)
	}
	return history, nil
}

func TestPhaseForAge(t *testing.T) {
	const staleDays, rottenDays = 90, 180

	tests := []struct {
		name    string
		ageDays int
		want    models.Phase
	}{
		{name: "brand new", ageDays: 0, want: models.PhaseFresh},
		{name: "just under stale", ageDays: 89, want: models.PhaseFresh},
		{name: "exactly stale threshold", ageDays: 90, want: models.PhaseStale},
		{name: "between thresholds", ageDays: 120, want: models.PhaseStale},
		{name: "just under rotten", ageDays: 179, want: models.PhaseStale},
		{name: "exactly rotten threshold", ageDays: 180, want: models.PhaseRotten},
		{name: "long abandoned", ageDays: 1000, want: models.PhaseRotten},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := time.Duration(tt.ageDays) * 24 * time.Hour
			if got := PhaseForAge(age, staleDays, rottenDays); got != tt.want {
				t.Errorf("PhaseForAge(%dd) = %v, want %v", tt.ageDays, got, tt.want)
			}
		})
	}
}

func TestPhaseForAge_EqualThresholds(t *testing.T) {
	// stale == rotten leaves no stale bucket; the boundary goes to rotten.
	age := 30 * 24 * time.Hour
	if got := PhaseForAge(age, 30, 30); got != models.PhaseRotten {
		t.Errorf("PhaseForAge(30d, 30, 30) = %v, want rotten", got)
	}
	if got := PhaseForAge(age-time.Hour, 30, 30); got != models.PhaseFresh {
		t.Errorf("PhaseForAge(<30d, 30, 30) = %v, want fresh", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "cloud format with Z", raw: "2023-04-01T10:32:05.130Z", wantErr: false},
		{name: "server format with offset", raw: "2023-04-01T10:32:05.130+10:00", wantErr: false},
		{name: "no fractional seconds", raw: "2023-04-01T10:32:05Z", wantErr: true},
		{name: "date only", raw: "2023-04-01", wantErr: true},
		{name: "garbage", raw: "not a timestamp", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	store := &fakeHistoryStore{
		histories: map[string]*confluence.PageHistory{
			"101": {
				CreatedBy:    models.Identity{AccountID: "a1", Name: "Alex Doe", Email: "alex@example.com"},
				LastEditedBy: models.Identity{AccountID: "a2", Name: "Sam Roe (Deactivated)", Email: "sam@example.com"},
				When:         "2023-11-14T12:00:00.000Z", // 200 days before now
			},
		},
	}

	classifier := &Classifier{
		Store:      store,
		StaleDays:  90,
		RottenDays: 180,
		Now:        func() time.Time { return now },
	}

	state, err := classifier.Classify(context.Background(), models.PageSummary{ID: "101", Title: "Runbook"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if state.Phase != models.PhaseRotten {
		t.Errorf("state.Phase = %v, want rotten", state.Phase)
	}
	if state.PageID != "101" {
		t.Errorf("state.PageID = %q, want %q", state.PageID, "101")
	}
	if state.LastEditedBy.Name != "Sam Roe" {
		t.Errorf("state.LastEditedBy.Name = %q, want deactivation marker stripped", state.LastEditedBy.Name)
	}
	if state.WhenRaw != "2023-11-14T12:00:00.000Z" {
		t.Errorf("state.WhenRaw = %q, want raw timestamp preserved", state.WhenRaw)
	}
	if want := time.Date(2023, 11, 14, 12, 0, 0, 0, time.UTC); !state.When.Equal(want) {
		t.Errorf("state.When = %v, want %v", state.When, want)
	}
}

func TestClassifier_MalformedTimestamp(t *testing.T) {
	store := &fakeHistoryStore{
		histories: map[string]*confluence.PageHistory{
			"202": {When: "yesterday-ish"},
		},
	}

	classifier := &Classifier{Store: store, StaleDays: 90, RottenDays: 180}

	if _, err := classifier.Classify(context.Background(), models.PageSummary{ID: "202"}); err == nil {
		t.Error("Classify() with malformed timestamp should return an error")
	}
}

func TestClassifier_StoreError(t *testing.T) {
	store := &fakeHistoryStore{histories: map[string]*confluence.PageHistory{}}
	classifier := &Classifier{Store: store, StaleDays: 90, RottenDays: 180}

	if _, err := classifier.Classify(context.Background(), models.PageSummary{ID: "missing"}); err == nil {
		t.Error("Classify() should propagate store errors")
	}
}
