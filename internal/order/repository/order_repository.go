package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"grillhouse/internal/domain"
	apperrors "grillhouse/internal/errors"
)

// ErrStaleStatus is returned by UpdateStatus when the order's status no
// longer matches the expected value, meaning a concurrent writer committed
// first. Callers re-read the order and re-validate against its new state.
var ErrStaleStatus = errors.New("order status changed concurrently")

// totalTolerance absorbs float rounding when comparing a submitted total
// against the sum of its line items (half a cent).
const totalTolerance = 0.005

type SQLiteOrderRepository struct {
	db *sql.DB
}

func NewSQLiteOrderRepository(db *sql.DB) *SQLiteOrderRepository {
	return &SQLiteOrderRepository{db: db}
}

// Create persists the order and all of its line items as one transaction:
// a concurrent reader sees either the whole order or nothing. The returned
// order is fully hydrated with items in insertion order.
func (r *SQLiteOrderRepository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewPersistenceError("beginning order transaction", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_name, customer_phone, customer_email, total_amount, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.CustomerName, order.CustomerPhone, order.CustomerEmail,
		order.TotalAmount, domain.OrderStatusPending, order.Notes, now, now,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("inserting order", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, apperrors.NewPersistenceError("getting order id", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, menu_item_name, quantity, price)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, apperrors.NewPersistenceError("preparing order item insert", err)
	}
	defer stmt.Close()

	for _, item := range order.Items {
		if _, err := stmt.ExecContext(ctx, orderID, item.MenuItemID, item.MenuItemName, item.Quantity, item.Price); err != nil {
			return nil, apperrors.NewPersistenceError("inserting order item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewPersistenceError("committing order", err)
	}

	return r.FindByID(ctx, uint(orderID))
}

func (r *SQLiteOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_email, total_amount,
		       status, notes, created_at, updated_at
		FROM orders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
		&order.TotalAmount, &order.Status, &order.Notes,
		&order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying order by id", err)
	}

	items, err := r.findItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// List returns orders newest first, each hydrated with its line items. An
// empty statusFilter returns every order.
func (r *SQLiteOrderRepository) List(ctx context.Context, statusFilter string) ([]domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_email, total_amount,
		       status, notes, created_at, updated_at
		FROM orders`
	var args []any

	if statusFilter != "" {
		query += ` WHERE status = ?`
		args = append(args, statusFilter)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
			&order.TotalAmount, &order.Status, &order.Notes,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewPersistenceError("scanning order row", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("iterating order rows", err)
	}

	for i := range orders {
		items, err := r.findItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateStatus is a compare-and-set: the row is updated only if its status
// still equals expected. It does not judge transition legality; that is the
// lifecycle table's job. Returns NotFoundError for an unknown id and
// ErrStaleStatus when a concurrent writer got there first.
func (r *SQLiteOrderRepository) UpdateStatus(ctx context.Context, id uint, expected, next string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		next, time.Now().UTC(), id, expected,
	)
	if err != nil {
		return apperrors.NewPersistenceError("updating order status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistenceError("getting rows affected", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return apperrors.NewPersistenceError("checking order existence", err)
	}
	if exists == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return ErrStaleStatus
}

func (r *SQLiteOrderRepository) findItems(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, menu_item_name, quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id`, orderID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying order items", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &item.Price)
		if err != nil {
			return nil, apperrors.NewPersistenceError("scanning order item row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("iterating order item rows", err)
	}

	return items, nil
}

func validateOrder(order domain.Order) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(order.CustomerName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customer_name",
			Message: "customer_name is required",
		})
	}

	if strings.TrimSpace(order.CustomerPhone) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customer_phone",
			Message: "customer_phone is required",
		})
	}

	if len(order.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range order.Items {
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be at least 1",
			})
		}

		if item.Price < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].price", idx),
				Message: "price must be non-negative",
			})
		}
	}

	if order.TotalAmount <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "total_amount",
			Message: "total_amount must be positive",
		})
	} else if len(order.Items) > 0 && math.Abs(order.TotalAmount-order.ItemsTotal()) > totalTolerance {
		details = append(details, apperrors.ValidationDetail{
			Field:   "total_amount",
			Message: "total_amount does not match the sum of item prices",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
