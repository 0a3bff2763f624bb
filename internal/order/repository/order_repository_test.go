package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grillhouse/internal/domain"
	apperrors "grillhouse/internal/errors"
	"grillhouse/internal/testutil"
)

func testOrder() domain.Order {
	return domain.Order{
		CustomerName:  "John Doe",
		CustomerPhone: "1234567890",
		TotalAmount:   25.98,
		Items: []domain.OrderItem{
			{MenuItemID: 1, MenuItemName: "Classic Burger", Quantity: 2, Price: 12.99},
		},
	}
}

func TestOrderRepository_Create_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)

	created, err := repo.Create(context.Background(), testOrder())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "John Doe", created.CustomerName)
	assert.Equal(t, domain.OrderStatusPending, created.Status)
	assert.InDelta(t, 25.98, created.TotalAmount, 0.0001)
	assert.InDelta(t, created.ItemsTotal(), created.TotalAmount, 0.005)
	assert.False(t, created.CreatedAt.IsZero())

	require.Len(t, created.Items, 1)
	item := created.Items[0]
	assert.Equal(t, created.ID, item.OrderID)
	assert.Equal(t, uint(1), item.MenuItemID)
	assert.Equal(t, "Classic Burger", item.MenuItemName)
	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 12.99, item.Price, 0.0001)
}

func TestOrderRepository_Create_ItemsInInsertionOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)

	order := domain.Order{
		CustomerName:  "Jane Doe",
		CustomerPhone: "555",
		TotalAmount:   21.97,
		Items: []domain.OrderItem{
			{MenuItemID: 5, MenuItemName: "Pepperoni Pizza", Quantity: 1, Price: 16.99},
			{MenuItemID: 9, MenuItemName: "French Fries", Quantity: 1, Price: 4.98},
		},
	}

	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "Pepperoni Pizza", created.Items[0].MenuItemName)
	assert.Equal(t, "French Fries", created.Items[1].MenuItemName)
}

func TestOrderRepository_Create_ValidationFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)

	tests := []struct {
		name   string
		mutate func(*domain.Order)
		field  string
	}{
		{"missing name", func(o *domain.Order) { o.CustomerName = "" }, "customer_name"},
		{"blank name", func(o *domain.Order) { o.CustomerName = "   " }, "customer_name"},
		{"missing phone", func(o *domain.Order) { o.CustomerPhone = "" }, "customer_phone"},
		{"no items", func(o *domain.Order) { o.Items = nil }, "items"},
		{"zero quantity", func(o *domain.Order) { o.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"negative quantity", func(o *domain.Order) { o.Items[0].Quantity = -1 }, "items[0].quantity"},
		{"zero total", func(o *domain.Order) { o.TotalAmount = 0 }, "total_amount"},
		{"total mismatch", func(o *domain.Order) { o.TotalAmount = 99.99 }, "total_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testOrder()
			tt.mutate(&order)

			created, err := repo.Create(context.Background(), order)
			assert.Nil(t, created)

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok, "expected ValidationError, got %v", err)

			found := false
			for _, d := range ve.Details {
				if d.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a detail for field %s, got %v", tt.field, ve.Details)
		})
	}
}

func TestOrderRepository_Create_FailureLeavesNoRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)

	order := testOrder()
	order.Items[0].Quantity = 0

	_, err := repo.Create(context.Background(), order)
	require.Error(t, err)

	var orders, items int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&orders))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&items))
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)

	order, err := repo.FindByID(context.Background(), 9999)
	assert.Nil(t, order)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, testOrder())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := repo.Create(ctx, testOrder())
	require.NoError(t, err)

	orders, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Len(t, orders[0].Items, 1)
	assert.Len(t, orders[1].Items, 1)
}

func TestOrderRepository_List_StatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)
	ctx := context.Background()

	kept, err := repo.Create(ctx, testOrder())
	require.NoError(t, err)
	moved, err := repo.Create(ctx, testOrder())
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, moved.ID, domain.OrderStatusPending, domain.OrderStatusPreparing))

	pending, err := repo.List(ctx, domain.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, kept.ID, pending[0].ID)

	preparing, err := repo.List(ctx, domain.OrderStatusPreparing)
	require.NoError(t, err)
	require.Len(t, preparing, 1)
	assert.Equal(t, moved.ID, preparing[0].ID)
}

func TestOrderRepository_UpdateStatus_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, testOrder())
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, created.ID, domain.OrderStatusPending, domain.OrderStatusPreparing)
	require.NoError(t, err)

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestOrderRepository_UpdateStatus_StaleExpectation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, testOrder())
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.OrderStatusPending, domain.OrderStatusPreparing))

	// A second writer still expecting "pending" must observe the conflict.
	err = repo.UpdateStatus(ctx, created.ID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrStaleStatus)

	current, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, current.Status)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), 9999, domain.OrderStatusPending, domain.OrderStatusPreparing)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
