package match

import (
	"testing"
	"time"
)

func TestMatch_Validate(t *testing.T) {
	valid := Match{
		ID:          "m1",
		Home:        Side{Name: "Mumbai Indians", Short: "MI"},
		Away:        Side{Name: "Chennai Super Kings", Short: "CSK"},
		StartTime:   time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
		Status:      StatusUpcoming,
		SpotsTotal:  100,
		SpotsFilled: 40,
	}

	tests := []struct {
		name    string
		mutate  func(*Match)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Match) {}},
		{name: "full contest is valid", mutate: func(m *Match) { m.SpotsFilled = 100 }},
		{name: "spots overfilled", mutate: func(m *Match) { m.SpotsFilled = 101 }, wantErr: true},
		{name: "negative spots", mutate: func(m *Match) { m.SpotsTotal = -1; m.SpotsFilled = -2 }, wantErr: true},
		{name: "missing id", mutate: func(m *Match) { m.ID = "" }, wantErr: true},
		{name: "missing side", mutate: func(m *Match) { m.Away.Name = "" }, wantErr: true},
		{name: "zero start", mutate: func(m *Match) { m.StartTime = time.Time{} }, wantErr: true},
		{name: "unknown status", mutate: func(m *Match) { m.Status = "paused" }, wantErr: true},
		{name: "negative fee", mutate: func(m *Match) { m.EntryFee = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := valid
			tc.mutate(&m)
			err := m.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]Status{
		"":              StatusUpcoming,
		"Upcoming":      StatusUpcoming,
		"LIVE":          StatusLive,
		"innings_break": StatusLive,
		"finished":      StatusCompleted,
		"rain_delay":    StatusDelayed,
	}
	for raw, want := range tests {
		got, ok := NormalizeStatus(raw)
		if !ok || got != want {
			t.Fatalf("NormalizeStatus(%q)=%q,%t want %q", raw, got, ok, want)
		}
	}
	if _, ok := NormalizeStatus("paused"); ok {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestMatch_SpotsLeft(t *testing.T) {
	if got := (Match{SpotsTotal: 10, SpotsFilled: 4}).SpotsLeft(); got != 6 {
		t.Fatalf("expected 6 spots left, got %d", got)
	}
	if got := (Match{SpotsTotal: 1, SpotsFilled: 4}).SpotsLeft(); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}
