package slumber

// Stage represents a scheduling stage for system execution.
// Systems are executed in stage order: Before → Default → After.
type Stage int

const (
	// Before stage runs first. MovementSystem samples player state here so
	// that every later system sees this tick's movement.
	Before Stage = iota

	// Default stage runs second. SleepSystem decides on skipping the night here.
	Default

	// After stage runs last. SlumberSystem moves the world clock here.
	After

	// stageCount is the total number of stages.
	stageCount
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case Before:
		return "Before"
	case Default:
		return "Default"
	case After:
		return "After"
	default:
		return "Unknown"
	}
}
