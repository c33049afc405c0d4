package domain

type CheckoutStatus string

const (
	StatusIncomplete       CheckoutStatus = "incomplete"
	StatusReadyForComplete CheckoutStatus = "ready_for_complete"
	StatusCompleted        CheckoutStatus = "completed"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	switch from {
	case StatusIncomplete:
		return to == StatusReadyForComplete || to == StatusIncomplete
	case StatusReadyForComplete:
		return to == StatusCompleted || to == StatusIncomplete
	default:
		return false
	}
}
