package constant

// DispatchState defines the possible states of a bulk-send operation.
type DispatchState int

const (
	// DispatchIdle represents the state with no send in progress.
	DispatchIdle DispatchState = iota
	// DispatchConfirming represents the state awaiting user confirmation.
	DispatchConfirming
	// DispatchSending represents the state with the bulk request in flight.
	DispatchSending
	// DispatchCompleted represents the state after a successful server summary.
	DispatchCompleted
	// DispatchFailed represents the state after a server error or connectivity failure.
	DispatchFailed
)

func (s DispatchState) String() string {
	switch s {
	case DispatchIdle:
		return "idle"
	case DispatchConfirming:
		return "confirming"
	case DispatchSending:
		return "sending"
	case DispatchCompleted:
		return "completed"
	case DispatchFailed:
		return "failed"
	default:
		return "unknown"
	}
}
