package notify

import "context"

// Notification is a human-readable message about a ledger change
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Sink delivers notifications to an external channel. Delivery is
// best-effort: a failed send must never affect the write that
// triggered it.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}
