package domain

import "fmt"

// CartLine is one menu item in a cart.
type CartLine struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal returns quantity × unit price.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Cart holds at most one line per item, in the order items were first added.
// A Cart is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

// NewCart rebuilds a cart from stored lines, merging duplicate item ids and
// dropping empty lines.
func NewCart(lines ...CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.ItemID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// AddItem adds quantity units of an item, merging with an existing line.
func (c *Cart) AddItem(itemID, name string, unitPrice float64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("add %q: %w", itemID, ErrInvalidQuantity)
	}
	if unitPrice < 0 {
		return fmt.Errorf("add %q: %w", itemID, ErrInvalidPrice)
	}
	if i := c.index(itemID); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, CartLine{
		ItemID:    itemID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return nil
}

// SetQuantity overwrites the quantity of an existing line. Zero removes the
// line; an unknown item is left alone.
func (c *Cart) SetQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("set %q: %w", itemID, ErrInvalidQuantity)
	}
	i := c.index(itemID)
	if i < 0 {
		return nil
	}
	if quantity == 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = quantity
	return nil
}

// Total sums every line's subtotal.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for itemID, if any.
func (c *Cart) Line(itemID string) (CartLine, bool) {
	if i := c.index(itemID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// OrderItems projects the cart onto the (item, quantity) pairs an order needs.
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, len(c.lines))
	for i, l := range c.lines {
		items[i] = OrderItem{MenuItemID: l.ItemID, Quantity: l.Quantity}
	}
	return items
}

func (c *Cart) index(itemID string) int {
	for i, l := range c.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}
