package dto

import (
	"time"

	"grillhouse/internal/domain"
)

type PlaceOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail *string            `json:"customer_email,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	TotalAmount   float64            `json:"total_amount"`
	Items         []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	MenuItemID uint    `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	CustomerEmail *string             `json:"customer_email"`
	TotalAmount   float64             `json:"total_amount"`
	Status        string              `json:"status"`
	Notes         *string             `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Items         []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ID           uint    `json:"id"`
	OrderID      uint    `json:"order_id"`
	MenuItemID   uint    `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

func OrderFromDomain(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:           item.ID,
			OrderID:      item.OrderID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Price:        item.Price,
		}
	}

	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}
