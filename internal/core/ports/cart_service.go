package ports

import (
	"context"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

// AddItemInput is one "add to cart" action from the menu page.
type AddItemInput struct {
	ItemID    string
	Name      string
	UnitPrice float64
	Quantity  int
}

// CartService applies cart actions and submits carts as orders.
type CartService interface {
	Get(ctx context.Context, key CartKey) (*domain.Cart, error)
	AddItem(ctx context.Context, key CartKey, in AddItemInput) (*domain.Cart, error)
	SetQuantity(ctx context.Context, key CartKey, itemID string, quantity int) (*domain.Cart, error)
	Clear(ctx context.Context, key CartKey) error
	Submit(ctx context.Context, key CartKey) (*domain.OrderConfirmation, error)
	// MoveSession follows a browser whose session id was rotated.
	MoveSession(ctx context.Context, fromSessionID, toSessionID string)
}
