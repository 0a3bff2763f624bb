package domain

import "time"

type Order struct {
	ID            uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	TotalAmount   float64
	Status        string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ItemsTotal sums price*quantity over the order's line items.
func (o Order) ItemsTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}
