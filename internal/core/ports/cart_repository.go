package ports

import (
	"context"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

// CartKey identifies one ordering session: a browser at a table of an event.
type CartKey struct {
	SessionID   string
	EventID     string
	TableNumber string
}

// CartRepository persists carts between requests.
type CartRepository interface {
	// Load returns the stored cart, or an empty cart when none exists.
	Load(ctx context.Context, key CartKey) (*domain.Cart, error)
	Save(ctx context.Context, key CartKey, cart *domain.Cart) error
	Delete(ctx context.Context, key CartKey) error
	// Rekey moves every cart of one session id to another.
	Rekey(ctx context.Context, fromSessionID, toSessionID string) error
}
