package domain

// OrderItem is one menu selection within an order. Name and price are a
// snapshot taken at order time: later edits or deletion of the referenced
// menu item must not change what the customer was charged.
type OrderItem struct {
	ID           uint
	OrderID      uint
	MenuItemID   uint
	MenuItemName string
	Quantity     int
	Price        float64
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
