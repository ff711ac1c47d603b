// Package metrics derives every displayed statistic from the persisted
// facts and an explicit reference time. Nothing here reads the clock,
// touches storage, or mutates its inputs: the same inputs always produce
// the same outputs.
package metrics

import (
	"math"
	"time"

	"github.com/jstrand/ashline/internal/constants"
	"github.com/jstrand/ashline/internal/models"
)

// DaysSober is the whole number of days elapsed since startedAt, never
// negative. A start edited into the future yields 0, not a negative streak.
func DaysSober(startedAt, now time.Time) int {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

// HoursSoberRemainder is the hour component of the streak beyond whole
// days, in [0, 24). Clamped to 0 under the same future-start rule.
func HoursSoberRemainder(startedAt, now time.Time) int {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/time.Hour) % 24
}

// MoneySaved is the streak valued at the habit's daily cost. A zero or
// unset cost always yields 0.
func MoneySaved(p *models.Profile, now time.Time) float64 {
	if p == nil || p.DailyCost <= 0 {
		return 0
	}
	return float64(DaysSober(p.StartedAt, now)) * p.DailyCost
}

// DayCount is one histogram bucket: the number of urges whose local
// calendar date equals Date.
type DayCount struct {
	Date    time.Time
	Weekday time.Weekday
	Count   int
}

// WeeklyUrgeHistogram buckets urges by calendar day over the window
// now-6d .. now inclusive, oldest first. Comparison is by calendar date in
// now's location, not by rolling 24h distance: two events 20 hours apart
// can land in different buckets when they straddle midnight.
func WeeklyUrgeHistogram(urges []models.UrgeEvent, now time.Time) [7]DayCount {
	loc := now.Location()

	var buckets [7]DayCount
	for i := range buckets {
		day := now.AddDate(0, 0, i-6)
		y, m, d := day.In(loc).Date()
		buckets[i].Date = time.Date(y, m, d, 0, 0, 0, 0, loc)
		buckets[i].Weekday = buckets[i].Date.Weekday()
	}

	for _, u := range urges {
		y, m, d := u.Timestamp.In(loc).Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, loc)
		for i := range buckets {
			if buckets[i].Date.Equal(date) {
				buckets[i].Count++
				break
			}
		}
	}

	return buckets
}

// UrgesResisted is the lifetime count of logged urges.
func UrgesResisted(urges []models.UrgeEvent) int {
	return len(urges)
}

// Milestone is a catalog entry paired with derived completion state.
type Milestone struct {
	DayThreshold      int
	Title             string
	Description       string
	CompletionPercent float64 // 0-100, linear toward the threshold
	Unlocked          bool
}

// MilestoneProgress applies the health-milestone catalog to a streak
// length. Recomputed on every read, never stored.
func MilestoneProgress(days int) []Milestone {
	out := make([]Milestone, 0, len(constants.Milestones))
	for _, def := range constants.Milestones {
		m := Milestone{
			DayThreshold: def.DayThreshold,
			Title:        def.Title,
			Description:  def.Description,
			Unlocked:     days >= def.DayThreshold,
		}
		m.CompletionPercent = math.Min(100, float64(days)/float64(def.DayThreshold)*100)
		out = append(out, m)
	}
	return out
}

// GoalStatus is the derived state of the savings goal.
type GoalStatus struct {
	Name          string
	TargetCost    float64
	MoneySaved    float64
	Percent       float64
	Reached       bool
	DaysRemaining int  // valid only when HasEstimate
	HasEstimate   bool // false when DailyCost is 0 (no division by zero)
}

// GoalProgress reports progress toward the savings goal. The second return
// is false when no goal is set.
func GoalProgress(p *models.Profile, now time.Time) (GoalStatus, bool) {
	if p == nil || p.Goal == nil || p.Goal.TargetCost <= 0 {
		return GoalStatus{}, false
	}

	saved := MoneySaved(p, now)
	status := GoalStatus{
		Name:       p.Goal.Name,
		TargetCost: p.Goal.TargetCost,
		MoneySaved: saved,
		Percent:    saved / p.Goal.TargetCost * 100,
		Reached:    saved >= p.Goal.TargetCost,
	}

	if p.DailyCost > 0 {
		status.HasEstimate = true
		if !status.Reached {
			status.DaysRemaining = int(math.Ceil((p.Goal.TargetCost - saved) / p.DailyCost))
		}
	}

	return status, true
}
