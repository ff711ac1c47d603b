package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/jstrand/ashline/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

func TestDaysSober(t *testing.T) {
	tests := []struct {
		name      string
		startedAt string
		now       string
		wantDays  int
		wantHours int
	}{
		{
			name:      "three days and five hours",
			startedAt: "2024-01-01T00:00:00Z",
			now:       "2024-01-04T05:00:00Z",
			wantDays:  3,
			wantHours: 5,
		},
		{
			name:      "same instant",
			startedAt: "2024-01-01T00:00:00Z",
			now:       "2024-01-01T00:00:00Z",
			wantDays:  0,
			wantHours: 0,
		},
		{
			name:      "just under a day",
			startedAt: "2024-01-01T00:00:00Z",
			now:       "2024-01-01T23:59:59Z",
			wantDays:  0,
			wantHours: 23,
		},
		{
			name:      "future start clamps to zero",
			startedAt: "2024-06-01T00:00:00Z",
			now:       "2024-01-04T05:00:00Z",
			wantDays:  0,
			wantHours: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startedAt := mustTime(t, tt.startedAt)
			now := mustTime(t, tt.now)

			if got := DaysSober(startedAt, now); got != tt.wantDays {
				t.Errorf("DaysSober = %d, want %d", got, tt.wantDays)
			}
			if got := HoursSoberRemainder(startedAt, now); got != tt.wantHours {
				t.Errorf("HoursSoberRemainder = %d, want %d", got, tt.wantHours)
			}
		})
	}
}

func TestDaysSober_Monotonic(t *testing.T) {
	startedAt := mustTime(t, "2024-01-01T12:30:00Z")
	now := startedAt

	prev := 0
	for i := 0; i < 200; i++ {
		now = now.Add(7 * time.Hour)
		days := DaysSober(startedAt, now)
		if days < prev {
			t.Fatalf("DaysSober decreased from %d to %d at %v", prev, days, now)
		}
		prev = days
	}
}

func TestMoneySaved(t *testing.T) {
	now := mustTime(t, "2024-01-04T05:00:00Z")

	p := &models.Profile{
		StartedAt: mustTime(t, "2024-01-01T00:00:00Z"),
		DailyCost: 10,
	}
	if got := MoneySaved(p, now); got != 30 {
		t.Errorf("MoneySaved = %v, want 30", got)
	}

	p.DailyCost = 0
	if got := MoneySaved(p, now); got != 0 {
		t.Errorf("MoneySaved with zero cost = %v, want 0", got)
	}

	p.DailyCost = 10
	p.StartedAt = mustTime(t, "2030-01-01T00:00:00Z")
	if got := MoneySaved(p, now); got != 0 {
		t.Errorf("MoneySaved with future start = %v, want 0", got)
	}

	if got := MoneySaved(nil, now); got != 0 {
		t.Errorf("MoneySaved(nil) = %v, want 0", got)
	}
}

func TestMetrics_Idempotent(t *testing.T) {
	now := mustTime(t, "2024-03-10T18:00:00Z")
	p := &models.Profile{
		StartedAt: mustTime(t, "2024-02-20T07:15:00Z"),
		DailyCost: 12.5,
	}
	urges := []models.UrgeEvent{
		{ID: "a", Timestamp: now.Add(-2 * time.Hour), Intensity: 4, Trigger: "stress"},
		{ID: "b", Timestamp: now.Add(-50 * time.Hour), Intensity: 8, Trigger: "boredom"},
	}

	if DaysSober(p.StartedAt, now) != DaysSober(p.StartedAt, now) {
		t.Error("DaysSober is not idempotent")
	}
	if MoneySaved(p, now) != MoneySaved(p, now) {
		t.Error("MoneySaved is not idempotent")
	}
	first := WeeklyUrgeHistogram(urges, now)
	second := WeeklyUrgeHistogram(urges, now)
	if first != second {
		t.Error("WeeklyUrgeHistogram is not idempotent")
	}
}

func TestWeeklyUrgeHistogram(t *testing.T) {
	now := mustTime(t, "2024-03-10T12:00:00Z")

	t.Run("empty log gives seven zero buckets", func(t *testing.T) {
		buckets := WeeklyUrgeHistogram(nil, now)
		for i, b := range buckets {
			if b.Count != 0 {
				t.Errorf("bucket %d count = %d, want 0", i, b.Count)
			}
		}
	})

	t.Run("buckets span oldest to newest", func(t *testing.T) {
		buckets := WeeklyUrgeHistogram(nil, now)
		if got := buckets[0].Date.Format("2006-01-02"); got != "2024-03-04" {
			t.Errorf("first bucket date = %s, want 2024-03-04", got)
		}
		if got := buckets[6].Date.Format("2006-01-02"); got != "2024-03-10" {
			t.Errorf("last bucket date = %s, want 2024-03-10", got)
		}
	})

	t.Run("events outside the window are dropped", func(t *testing.T) {
		var urges []models.UrgeEvent
		for i := 0; i < 10; i++ {
			urges = append(urges, models.UrgeEvent{
				ID:        string(rune('a' + i)),
				Timestamp: now.AddDate(0, 0, -8),
				Intensity: 5,
				Trigger:   "old",
			})
		}

		total := 0
		for _, b := range WeeklyUrgeHistogram(urges, now) {
			total += b.Count
		}
		if total != 0 {
			t.Errorf("histogram total = %d, want 0 for events 8 days old", total)
		}
	})

	t.Run("every in-window event lands in exactly one bucket", func(t *testing.T) {
		urges := []models.UrgeEvent{
			{ID: "1", Timestamp: now, Trigger: "x"},
			{ID: "2", Timestamp: now.AddDate(0, 0, -3), Trigger: "x"},
			{ID: "3", Timestamp: now.AddDate(0, 0, -3), Trigger: "x"},
			{ID: "4", Timestamp: now.AddDate(0, 0, -6), Trigger: "x"},
			{ID: "5", Timestamp: now.AddDate(0, 0, -7), Trigger: "x"}, // outside
		}

		total := 0
		for _, b := range WeeklyUrgeHistogram(urges, now) {
			total += b.Count
		}
		if total != 4 {
			t.Errorf("histogram total = %d, want 4", total)
		}
	})

	t.Run("calendar dates split events under 24h apart", func(t *testing.T) {
		// 23:00 and 03:00 next day are 4h apart but different buckets.
		evening := mustTime(t, "2024-03-09T23:00:00Z")
		morning := mustTime(t, "2024-03-10T03:00:00Z")
		urges := []models.UrgeEvent{
			{ID: "1", Timestamp: evening, Trigger: "x"},
			{ID: "2", Timestamp: morning, Trigger: "x"},
		}

		buckets := WeeklyUrgeHistogram(urges, now)
		if buckets[5].Count != 1 || buckets[6].Count != 1 {
			t.Errorf("expected one event in each of the last two buckets, got %d and %d",
				buckets[5].Count, buckets[6].Count)
		}
	})
}

func TestMilestoneProgress(t *testing.T) {
	t.Run("threshold reached", func(t *testing.T) {
		for _, m := range MilestoneProgress(3) {
			if m.DayThreshold != 3 {
				continue
			}
			if m.CompletionPercent != 100 {
				t.Errorf("CompletionPercent = %v, want 100", m.CompletionPercent)
			}
			if !m.Unlocked {
				t.Error("milestone at threshold should be unlocked")
			}
		}
	})

	t.Run("partway there", func(t *testing.T) {
		for _, m := range MilestoneProgress(2) {
			if m.DayThreshold != 3 {
				continue
			}
			if math.Abs(m.CompletionPercent-66.666) > 0.01 {
				t.Errorf("CompletionPercent = %v, want ~66.67", m.CompletionPercent)
			}
			if m.Unlocked {
				t.Error("milestone below threshold should be locked")
			}
		}
	})

	t.Run("completion never exceeds 100", func(t *testing.T) {
		for _, m := range MilestoneProgress(5000) {
			if m.CompletionPercent > 100 {
				t.Errorf("milestone %d: CompletionPercent = %v", m.DayThreshold, m.CompletionPercent)
			}
			if !m.Unlocked {
				t.Errorf("milestone %d should be unlocked after 5000 days", m.DayThreshold)
			}
		}
	})

	t.Run("covers the reference thresholds", func(t *testing.T) {
		want := map[int]bool{1: true, 3: true, 14: true, 30: true, 90: true}
		for _, m := range MilestoneProgress(0) {
			delete(want, m.DayThreshold)
		}
		if len(want) != 0 {
			t.Errorf("missing thresholds: %v", want)
		}
	})
}

func TestGoalProgress(t *testing.T) {
	now := mustTime(t, "2024-01-08T00:00:00Z") // 7 full days after start

	p := &models.Profile{
		StartedAt: mustTime(t, "2024-01-01T00:00:00Z"),
		DailyCost: 10,
		Goal:      &models.SavingsGoal{Name: "New bike", TargetCost: 100},
	}

	status, ok := GoalProgress(p, now)
	if !ok {
		t.Fatal("expected goal progress for a set goal")
	}
	if status.MoneySaved != 70 {
		t.Errorf("MoneySaved = %v, want 70", status.MoneySaved)
	}
	if status.Percent != 70 {
		t.Errorf("Percent = %v, want 70", status.Percent)
	}
	if status.Reached {
		t.Error("goal should not be reached at 70%")
	}
	if !status.HasEstimate || status.DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d (estimate %v), want 3", status.DaysRemaining, status.HasEstimate)
	}
}

func TestGoalProgress_NoGoal(t *testing.T) {
	now := mustTime(t, "2024-01-08T00:00:00Z")
	p := &models.Profile{StartedAt: mustTime(t, "2024-01-01T00:00:00Z"), DailyCost: 10}

	if _, ok := GoalProgress(p, now); ok {
		t.Error("expected no goal progress without a goal")
	}
	if _, ok := GoalProgress(nil, now); ok {
		t.Error("expected no goal progress for nil profile")
	}
}

func TestGoalProgress_ZeroDailyCost(t *testing.T) {
	now := mustTime(t, "2024-01-08T00:00:00Z")
	p := &models.Profile{
		StartedAt: mustTime(t, "2024-01-01T00:00:00Z"),
		DailyCost: 0,
		Goal:      &models.SavingsGoal{Name: "Trip", TargetCost: 500},
	}

	status, ok := GoalProgress(p, now)
	if !ok {
		t.Fatal("expected goal progress for a set goal")
	}
	if status.MoneySaved != 0 {
		t.Errorf("MoneySaved = %v, want 0 with zero daily cost", status.MoneySaved)
	}
	if status.HasEstimate {
		t.Error("no days-remaining estimate should exist with zero daily cost")
	}
}

func TestGoalProgress_Reached(t *testing.T) {
	now := mustTime(t, "2024-01-31T00:00:00Z") // 30 days
	p := &models.Profile{
		StartedAt: mustTime(t, "2024-01-01T00:00:00Z"),
		DailyCost: 10,
		Goal:      &models.SavingsGoal{Name: "Console", TargetCost: 250},
	}

	status, ok := GoalProgress(p, now)
	if !ok {
		t.Fatal("expected goal progress")
	}
	if !status.Reached {
		t.Errorf("goal should be reached with %v saved of %v", status.MoneySaved, status.TargetCost)
	}
	if status.DaysRemaining != 0 {
		t.Errorf("DaysRemaining = %d, want 0 when reached", status.DaysRemaining)
	}
}
