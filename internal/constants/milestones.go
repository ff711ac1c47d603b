package constants

// MilestoneDef is a named biological-recovery claim tied to a day threshold.
type MilestoneDef struct {
	DayThreshold int
	Title        string
	Description  string
}

// Milestones is the fixed health-milestone catalog, ascending by threshold.
// Completion percentages are derived at read time and never stored.
var Milestones = []MilestoneDef{
	{DayThreshold: 1, Title: "First 24 Hours", Description: "Oxygen and carbon monoxide levels in your blood return to normal."},
	{DayThreshold: 3, Title: "Three Days Clean", Description: "The substance is physically out of your system; cravings peak and begin to fall."},
	{DayThreshold: 14, Title: "Two Weeks", Description: "Circulation improves and withdrawal symptoms fade noticeably."},
	{DayThreshold: 30, Title: "One Month", Description: "Sleep, mood, and energy stabilize as your brain chemistry rebalances."},
	{DayThreshold: 90, Title: "Three Months", Description: "Relapse risk drops sharply; new routines have replaced old ones."},
}
