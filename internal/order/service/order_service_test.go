package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grillhouse/internal/domain"
	"grillhouse/internal/dto"
	apperrors "grillhouse/internal/errors"
	"grillhouse/internal/order/repository"
	"grillhouse/internal/testutil"
)

// Mock implementations

type mockOrderRepository struct {
	CreateFunc       func(ctx context.Context, order domain.Order) (*domain.Order, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Order, error)
	ListFunc         func(ctx context.Context, statusFilter string) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id uint, expected, next string) error
}

func (m *mockOrderRepository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	return m.CreateFunc(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) List(ctx context.Context, statusFilter string) ([]domain.Order, error) {
	return m.ListFunc(ctx, statusFilter)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, expected, next string) error {
	return m.UpdateStatusFunc(ctx, id, expected, next)
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []any
}

func (b *recordingBroadcaster) Broadcast(event any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBroadcaster) all() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]any(nil), b.events...)
}

func hydratedOrder(id uint, status string) *domain.Order {
	return &domain.Order{
		ID:            id,
		CustomerName:  "John Doe",
		CustomerPhone: "1234567890",
		TotalAmount:   25.98,
		Status:        status,
		Items: []domain.OrderItem{
			{ID: 1, OrderID: id, MenuItemID: 1, MenuItemName: "Classic Burger", Quantity: 2, Price: 12.99},
		},
	}
}

// Tests

func TestPlaceOrder_BroadcastsAfterPersist(t *testing.T) {
	created := hydratedOrder(7, domain.OrderStatusPending)
	repo := &mockOrderRepository{
		CreateFunc: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
			return created, nil
		},
	}
	bcast := &recordingBroadcaster{}

	svc := NewOrderService(repo, bcast, zap.NewNop())

	result, err := svc.PlaceOrder(context.Background(), domain.Order{})
	require.NoError(t, err)
	assert.Equal(t, created, result)

	events := bcast.all()
	require.Len(t, events, 1)
	event, ok := events[0].(dto.OrderEvent)
	require.True(t, ok)
	assert.Equal(t, dto.EventNewOrder, event.Type)
	assert.Equal(t, uint(7), event.Order.ID)
	assert.Equal(t, domain.OrderStatusPending, event.Order.Status)
}

func TestPlaceOrder_NoBroadcastOnFailure(t *testing.T) {
	repo := &mockOrderRepository{
		CreateFunc: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
			return nil, apperrors.NewValidationError("validation failed")
		},
	}
	bcast := &recordingBroadcaster{}

	svc := NewOrderService(repo, bcast, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), domain.Order{})
	require.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Empty(t, bcast.all())
}

func TestChangeStatus_Success(t *testing.T) {
	status := domain.OrderStatusPending
	var updatedPair [2]string

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return hydratedOrder(id, status), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, expected, next string) error {
			updatedPair = [2]string{expected, next}
			status = next
			return nil
		},
	}
	bcast := &recordingBroadcaster{}

	svc := NewOrderService(repo, bcast, zap.NewNop())

	result, err := svc.ChangeStatus(context.Background(), 7, domain.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, result.Status)
	assert.Equal(t, [2]string{domain.OrderStatusPending, domain.OrderStatusPreparing}, updatedPair)

	events := bcast.all()
	require.Len(t, events, 1)
	event := events[0].(dto.OrderEvent)
	assert.Equal(t, dto.EventOrderUpdated, event.Type)
	assert.Equal(t, domain.OrderStatusPreparing, event.Order.Status)
}

func TestChangeStatus_IllegalTransition(t *testing.T) {
	updateCalled := false
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return hydratedOrder(id, domain.OrderStatusCompleted), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, expected, next string) error {
			updateCalled = true
			return nil
		},
	}
	bcast := &recordingBroadcaster{}

	svc := NewOrderService(repo, bcast, zap.NewNop())

	_, err := svc.ChangeStatus(context.Background(), 7, domain.OrderStatusCancelled)

	te, ok := apperrors.IsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusCompleted, te.Current)
	assert.Equal(t, domain.OrderStatusCancelled, te.Requested)
	assert.False(t, updateCalled, "illegal transition must not reach the store")
	assert.Empty(t, bcast.all(), "failed transition must not broadcast")
}

func TestChangeStatus_NotFound(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order with id 9999 not found")
		},
	}

	svc := NewOrderService(repo, &recordingBroadcaster{}, zap.NewNop())

	_, err := svc.ChangeStatus(context.Background(), 9999, domain.OrderStatusPreparing)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestChangeStatus_RetriesAfterLostRace(t *testing.T) {
	// First read sees pending; the CAS loses because another writer moved
	// the order to preparing. The retry must re-validate from preparing.
	status := domain.OrderStatusPending
	casAttempts := 0

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return hydratedOrder(id, status), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, expected, next string) error {
			casAttempts++
			if casAttempts == 1 {
				status = domain.OrderStatusPreparing // concurrent writer commits
				return repository.ErrStaleStatus
			}
			status = next
			return nil
		},
	}
	bcast := &recordingBroadcaster{}

	svc := NewOrderService(repo, bcast, zap.NewNop())

	result, err := svc.ChangeStatus(context.Background(), 7, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, result.Status)
	assert.Equal(t, 2, casAttempts)
	assert.Len(t, bcast.all(), 1)
}

func TestChangeStatus_LostRaceAgainstTerminalState(t *testing.T) {
	status := domain.OrderStatusPending

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return hydratedOrder(id, status), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, expected, next string) error {
			status = domain.OrderStatusCancelled // concurrent writer wins
			return repository.ErrStaleStatus
		},
	}
	bcast := &recordingBroadcaster{}

	svc := NewOrderService(repo, bcast, zap.NewNop())

	_, err := svc.ChangeStatus(context.Background(), 7, domain.OrderStatusPreparing)

	te, ok := apperrors.IsTransitionError(err)
	require.True(t, ok, "retry must fail against the committed terminal state, got %v", err)
	assert.Equal(t, domain.OrderStatusCancelled, te.Current)
	assert.Empty(t, bcast.all())
}

// Integration: two concurrent writers over the real store. Exactly one CAS
// wins the race from pending; the loser observes the winner's committed
// state, so the final status is always explainable by a serial ordering.
func TestChangeStatus_ConcurrentWriters_NoLostUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSQLiteOrderRepository(db)
	svc := NewOrderService(repo, &recordingBroadcaster{}, zap.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Order{
		CustomerName:  "Race",
		CustomerPhone: "555",
		TotalAmount:   12.99,
		Items:         []domain.OrderItem{{MenuItemID: 1, MenuItemName: "Classic Burger", Quantity: 1, Price: 12.99}},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	targets := []string{domain.OrderStatusPreparing, domain.OrderStatusCancelled}

	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			_, errs[i] = svc.ChangeStatus(ctx, created.ID, target)
		}(i, target)
	}
	wg.Wait()

	final, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	switch {
	case errs[0] == nil && errs[1] == nil:
		// preparing won first, cancellation then applied from preparing.
		assert.Equal(t, domain.OrderStatusCancelled, final.Status)
	case errs[0] == nil:
		assert.Equal(t, domain.OrderStatusPreparing, final.Status)
		_, ok := apperrors.IsTransitionError(errs[1])
		assert.True(t, ok)
	case errs[1] == nil:
		// cancellation won first; preparing must have failed against it.
		assert.Equal(t, domain.OrderStatusCancelled, final.Status)
		_, ok := apperrors.IsTransitionError(errs[0])
		assert.True(t, ok)
	default:
		t.Fatalf("both writers failed: %v / %v", errs[0], errs[1])
	}
}
