package handler

import "github.com/Nikhil2247/digital-frontend/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Profile *domain.Profile `json:"profile"`
	Home    string          `json:"home"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Profile       *domain.Profile `json:"profile"`
	Home          string          `json:"home,omitempty"`
}

// --- Navigation ---

type navResponse struct {
	Path     string          `json:"path"`
	Decision domain.Decision `json:"decision"`
	Redirect string          `json:"redirect,omitempty"`
}

// --- Cart ---

type addItemRequest struct {
	ItemID    string  `json:"item_id"    validate:"required"`
	Name      string  `json:"name"       validate:"required,max=200"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartLineResponse struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
}

type submitResponse struct {
	OrderID string             `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

// --- Orders ---

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	lines := cart.Lines()
	resp := cartResponse{
		Lines: make([]cartLineResponse, 0, len(lines)),
		Total: cart.Total(),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
		resp.ItemCount += l.Quantity
	}
	return resp
}
