package ports

import "context"

// Slot names of the durable per-browser storage.
const (
	SlotToken = "token"
	SlotUser  = "user"
)

// SessionStorage is durable string storage scoped to one browser session.
type SessionStorage interface {
	// Get returns the slot value and whether it was present.
	Get(ctx context.Context, slot string) (string, bool, error)
	Set(ctx context.Context, slot, value string) error
	Delete(ctx context.Context, slots ...string) error
}
