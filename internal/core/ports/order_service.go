package ports

import "context"

// SessionHandle is the part of a browser session an order action needs.
type SessionHandle interface {
	IsAuthenticated() bool
	Token() string
	Invalidate(ctx context.Context, reason string)
}

// OrderService changes order status for signed-in staff.
type OrderService interface {
	UpdateStatus(ctx context.Context, session SessionHandle, orderID, status string) error
}
