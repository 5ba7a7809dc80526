package domain

type FrequencyKind string

const (
	FrequencyNone     FrequencyKind = "none"
	FrequencyWeekly   FrequencyKind = "weekly"
	FrequencyInterval FrequencyKind = "interval"
)

// ValidFrequencyKinds is the canonical set of accepted frequency kind strings.
var ValidFrequencyKinds = map[string]bool{
	"none": true, "weekly": true, "interval": true,
}

// StreakOutcome describes what a single completion did to a streak run.
type StreakOutcome string

const (
	StreakStarted   StreakOutcome = "started"
	StreakContinued StreakOutcome = "continued"
	StreakReset     StreakOutcome = "reset"
	// StreakBackdated marks a completion older than the last recorded one.
	// The run is left as it was.
	StreakBackdated StreakOutcome = "backdated"
)
