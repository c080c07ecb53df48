package dto

// Dispatch actions accepted by the orchestrator endpoint.
const (
	DispatchActionRequest = "request"
	DispatchActionConfirm = "confirm"
	DispatchActionCancel  = "cancel"
)

// DispatchRequest drives the send state machine for one day bucket.
type DispatchRequest struct {
	Action    string `json:"action"`
	ResendAck bool   `json:"resend_ack"` // second gate for an already-sent day
}

// DispatchProgress is the transient counter pair of the most recent bulk
// send. It is only ever written whole, from one complete server response.
type DispatchProgress struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}

// DispatchStatus describes the orchestrator after one action.
type DispatchStatus struct {
	State              string           `json:"state"`
	Locked             bool             `json:"locked"`
	NeedsResendConfirm bool             `json:"needs_resend_confirm"`
	Progress           DispatchProgress `json:"progress"`
	Message            string           `json:"message,omitempty"`
}

// ComposeResponse is the manual single-message fallback: a prefilled native
// composer URI for one appointment. Fire-and-forget; only a session-local
// attempted flag is recorded, never the server-authoritative sent flag.
type ComposeResponse struct {
	Phone string `json:"phone"`
	Body  string `json:"body"`
	URI   string `json:"uri"`
}
