package dto

import "grillhouse/internal/domain"

// Event types pushed to live connections.
const (
	EventNewOrder     = "new_order"
	EventOrderUpdated = "order_updated"
	EventMenuUpdated  = "menu_updated"
)

// Menu event actions.
const (
	MenuActionCreated = "created"
	MenuActionUpdated = "updated"
	MenuActionDeleted = "deleted"
)

type OrderEvent struct {
	Type  string        `json:"type"`
	Order OrderResponse `json:"order"`
}

func NewOrderEvent(o *domain.Order) OrderEvent {
	return OrderEvent{Type: EventNewOrder, Order: OrderFromDomain(o)}
}

func OrderUpdatedEvent(o *domain.Order) OrderEvent {
	return OrderEvent{Type: EventOrderUpdated, Order: OrderFromDomain(o)}
}

type MenuEvent struct {
	Type   string            `json:"type"`
	Action string            `json:"action"`
	Item   *MenuItemResponse `json:"item,omitempty"`
	ID     uint              `json:"id,omitempty"`
}

func MenuItemCreatedEvent(m *domain.MenuItem) MenuEvent {
	item := MenuItemFromDomain(m)
	return MenuEvent{Type: EventMenuUpdated, Action: MenuActionCreated, Item: &item}
}

func MenuItemUpdatedEvent(m *domain.MenuItem) MenuEvent {
	item := MenuItemFromDomain(m)
	return MenuEvent{Type: EventMenuUpdated, Action: MenuActionUpdated, Item: &item}
}

func MenuItemDeletedEvent(id uint) MenuEvent {
	return MenuEvent{Type: EventMenuUpdated, Action: MenuActionDeleted, ID: id}
}
