package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

// OrderService moves orders through the kitchen lifecycle for vendors.
type OrderService struct {
	updater ports.OrderStatusUpdater
	log     zerolog.Logger
}

func NewOrderService(updater ports.OrderStatusUpdater, log zerolog.Logger) *OrderService {
	return &OrderService{updater: updater, log: log}
}

// UpdateStatus forwards a status change with the session's token. A token the
// remote API refuses ends the session.
func (s *OrderService) UpdateStatus(ctx context.Context, session ports.SessionHandle, orderID, status string) error {
	st := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !st.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if !session.IsAuthenticated() {
		return domain.ErrUnauthorized
	}

	err := s.updater.UpdateOrderStatus(ctx, session.Token(), orderID, st)
	if errors.Is(err, domain.ErrUnauthorized) {
		session.Invalidate(ctx, "order status update rejected token")
		return err
	}
	if err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}

	s.log.Info().Str("order_id", orderID).Str("status", string(st)).Msg("order status updated")
	return nil
}
