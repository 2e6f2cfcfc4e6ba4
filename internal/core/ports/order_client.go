package ports

import (
	"context"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

// OrderSubmitter places orders on the remote API.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderConfirmation, error)
}

// TableResolver maps a QR table number to the table id orders need.
type TableResolver interface {
	ResolveTable(ctx context.Context, eventID, tableNumber string) (*domain.Table, error)
}

// OrderStatusUpdater changes an order's status on behalf of a signed-in user.
// It returns domain.ErrUnauthorized when the remote rejects token.
type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) error
}
