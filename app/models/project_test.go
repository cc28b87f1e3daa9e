package models

import (
	"testing"
	"time"
)

func TestProjectDaysLeft(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	project := Project{CreatedAt: created, DurationDays: 30}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "same day", now: created.Add(2 * time.Hour), want: 30},
		{name: "partial days floor", now: created.Add(47 * time.Hour), want: 29},
		{name: "mid lifetime", now: created.AddDate(0, 0, 10), want: 20},
		{name: "last day", now: created.AddDate(0, 0, 29), want: 1},
		{name: "day of expiry", now: created.AddDate(0, 0, 30), want: 0},
		{name: "past expiry", now: created.AddDate(0, 0, 33), want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := project.DaysLeft(tt.now); got != tt.want {
				t.Fatalf("DaysLeft(%s) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestProjectExpiresAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	project := Project{CreatedAt: created, DurationDays: 7}

	want := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	if got := project.ExpiresAt(); !got.Equal(want) {
		t.Fatalf("ExpiresAt() = %s, want %s", got, want)
	}
}

func TestVisitIsLiveAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	visit := Visit{IsLive: true, LastActivity: now.Add(-time.Minute)}
	if !visit.IsLiveAt(now) {
		t.Fatalf("expected visit active a minute ago to be live")
	}

	visit.LastActivity = now.Add(-LivenessWindow)
	if visit.IsLiveAt(now) {
		t.Fatalf("expected visit at the window edge to be stale")
	}

	visit = Visit{IsLive: false, LastActivity: now}
	if visit.IsLiveAt(now) {
		t.Fatalf("expected demoted visit to stay stale regardless of activity")
	}
}
