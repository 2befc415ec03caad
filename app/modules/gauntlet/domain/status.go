package gauntletdomain

// Status is the lifecycle state of a gauntlet.
type Status string

const (
	StatusSetup     Status = "setup"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransition reports whether a gauntlet may move from one status to
// another. Setup leads to active; active leads to completed or cancelled.
// Terminal states never transition.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusSetup:
		return to == StatusActive || to == StatusCancelled
	case StatusActive:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// AcceptsMatches reports whether matches may be processed for a gauntlet
// in the given status.
func AcceptsMatches(s Status) bool {
	return s == StatusActive
}
