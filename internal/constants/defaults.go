package constants

const (
	// DefaultDailyCost is assumed when onboarding collects no habit cost.
	// Money-saved math treats a zero cost as "always zero", so the
	// onboarding wizard seeds this instead of leaving the field empty.
	DefaultDailyCost = 10.0

	// DefaultReminderTime is the initial daily check-in reminder (HH:MM).
	DefaultReminderTime = "09:00"

	// MaxUrgeIntensity bounds the 1-based craving scale.
	MaxUrgeIntensity = 10
)
