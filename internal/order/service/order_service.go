package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"grillhouse/internal/domain"
	"grillhouse/internal/dto"
	apperrors "grillhouse/internal/errors"
	"grillhouse/internal/order/lifecycle"
	"grillhouse/internal/order/repository"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context, statusFilter string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, expected, next string) error
}

type Broadcaster interface {
	Broadcast(event any)
}

// maxStatusAttempts bounds the optimistic-update loop on ChangeStatus; each
// retry re-reads the committed state, so interleavings beyond this depth
// mean the order is churning and the caller should resubmit.
const maxStatusAttempts = 3

// OrderService composes the store, the lifecycle table and the broadcaster
// behind the two order operations. Events are emitted only after the
// triggering write has durably committed.
type OrderService struct {
	orders      OrderRepository
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewOrderService(orders OrderRepository, broadcaster Broadcaster, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:      orders,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// PlaceOrder persists the order and announces it to live clients. This is
// the only path that emits a new_order event, so a failed write never
// produces a phantom notification.
func (s *OrderService) PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("orderId", created.ID),
		zap.Float64("totalAmount", created.TotalAmount),
		zap.Int("itemCount", len(created.Items)),
	)

	s.broadcaster.Broadcast(dto.NewOrderEvent(created))
	return created, nil
}

// ChangeStatus validates the requested transition against the order's
// committed status and applies it with a compare-and-set. When a concurrent
// writer wins the race, the loop re-reads the new committed state and
// re-validates against it, so the transition either succeeds from that
// state or fails with a TransitionError naming it; a stale read can never
// overwrite a committed change.
func (s *OrderService) ChangeStatus(ctx context.Context, id uint, requested string) (*domain.Order, error) {
	for attempt := 1; attempt <= maxStatusAttempts; attempt++ {
		order, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := lifecycle.Transition(order.Status, requested); err != nil {
			return nil, err
		}

		err = s.orders.UpdateStatus(ctx, id, order.Status, requested)
		if errors.Is(err, repository.ErrStaleStatus) {
			s.logger.Debug("lost status race, re-reading",
				zap.Uint("orderId", id),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		updated, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.logger.Info("order status changed",
			zap.Uint("orderId", id),
			zap.String("from", order.Status),
			zap.String("to", requested),
		)

		s.broadcaster.Broadcast(dto.OrderUpdatedEvent(updated))
		return updated, nil
	}

	return nil, apperrors.NewPersistenceError("too many concurrent status updates", nil)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, statusFilter string) ([]domain.Order, error) {
	return s.orders.List(ctx, statusFilter)
}
