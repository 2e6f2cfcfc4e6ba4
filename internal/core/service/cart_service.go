package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
	"github.com/Nikhil2247/digital-frontend/internal/metrics"
)

// CartService applies cart actions to persisted carts and submits them as
// orders. Concurrent actions on the same key are not serialized.
type CartService struct {
	repo   ports.CartRepository
	orders ports.OrderSubmitter
	tables ports.TableResolver
	policy *bluemonday.Policy
	log    zerolog.Logger
}

func NewCartService(repo ports.CartRepository, orders ports.OrderSubmitter, tables ports.TableResolver, log zerolog.Logger) *CartService {
	return &CartService{
		repo:   repo,
		orders: orders,
		tables: tables,
		policy: bluemonday.StrictPolicy(),
		log:    log,
	}
}

// Get returns the cart for key, empty if nothing was stored yet.
func (s *CartService) Get(ctx context.Context, key ports.CartKey) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// AddItem merges in.Quantity units of an item into the cart.
func (s *CartService) AddItem(ctx context.Context, key ports.CartKey, in ports.AddItemInput) (*domain.Cart, error) {
	cart, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(s.policy.Sanitize(in.Name))
	if err := cart.AddItem(in.ItemID, name, in.UnitPrice, in.Quantity); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, key, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	metrics.CartItemsAddedTotal.Add(float64(in.Quantity))
	return cart, nil
}

// SetQuantity overwrites an item's quantity; zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, key ports.CartKey, itemID string, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	if err := s.store(ctx, key, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, key ports.CartKey) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// MoveSession hands every cart of one browser session to a new session id.
// A failure is logged and leaves the carts with the old id.
func (s *CartService) MoveSession(ctx context.Context, fromSessionID, toSessionID string) {
	if fromSessionID == "" || fromSessionID == toSessionID {
		return
	}
	if err := s.repo.Rekey(ctx, fromSessionID, toSessionID); err != nil {
		s.log.Warn().Err(err).Msg("failed to move carts to rotated session")
	}
}

// Submit places the cart as an order for the table named by key and empties
// it. When the order collaborator fails the stored cart is left untouched.
func (s *CartService) Submit(ctx context.Context, key ports.CartKey) (*domain.OrderConfirmation, error) {
	cart, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		metrics.OrdersSubmittedTotal.WithLabelValues("empty_cart").Inc()
		return nil, domain.ErrEmptyCart
	}

	table, err := s.tables.ResolveTable(ctx, key.EventID, key.TableNumber)
	if err != nil {
		metrics.OrdersSubmittedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("submit order: %w", err)
	}

	total := cart.Total()
	confirmation, err := SubmitCart(ctx, cart, s.orders, domain.OrderContext{
		EventID: key.EventID,
		TableID: table.ID,
	})
	if err != nil {
		metrics.OrdersSubmittedTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).
			Str("event_id", key.EventID).
			Str("table", key.TableNumber).
			Msg("order submission failed")
		return nil, err
	}

	metrics.OrdersSubmittedTotal.WithLabelValues("ok").Inc()
	metrics.OrderValue.Observe(total)

	// The order already exists remotely; a failed delete is only logged.
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("order_id", confirmation.ID).Msg("failed to clear submitted cart")
	}

	s.log.Info().
		Str("order_id", confirmation.ID).
		Str("event_id", key.EventID).
		Str("table_id", table.ID).
		Float64("total", total).
		Msg("order submitted")

	return confirmation, nil
}

// SubmitCart hands the cart's (item, quantity) pairs to submitter and clears
// the cart on success. On failure the cart is not modified.
func SubmitCart(ctx context.Context, cart *domain.Cart, submitter ports.OrderSubmitter, oc domain.OrderContext) (*domain.OrderConfirmation, error) {
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	confirmation, err := submitter.SubmitOrder(ctx, domain.OrderRequest{
		EventID: oc.EventID,
		TableID: oc.TableID,
		Items:   cart.OrderItems(),
	})
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	if confirmation == nil {
		return nil, errors.New("submit order: empty confirmation")
	}
	cart.Clear()
	return confirmation, nil
}

func (s *CartService) store(ctx context.Context, key ports.CartKey, cart *domain.Cart) error {
	if cart.IsEmpty() {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	}
	if err := s.repo.Save(ctx, key, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
