package domain

// OrderStatus is the kitchen-side lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderReady      OrderStatus = "READY"
	OrderServed     OrderStatus = "SERVED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderReady, OrderServed:
		return true
	}
	return false
}

// OrderContext identifies where an order is placed.
type OrderContext struct {
	EventID string
	TableID string
}

// OrderItem is one (menu item, quantity) pair of a submitted order.
type OrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// OrderRequest is handed to the order collaborator.
type OrderRequest struct {
	EventID string      `json:"eventId"`
	TableID string      `json:"tableId"`
	Items   []OrderItem `json:"items"`
}

// OrderConfirmation is what the order collaborator returns.
type OrderConfirmation struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status,omitempty"`
}

// Table is a numbered table of an event, as printed on its QR code.
type Table struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}
