package dto

import (
	"time"

	"grillhouse/internal/domain"
)

type CreateMenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// UpdateMenuItemRequest carries a partial update; nil fields are left
// unchanged.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

type MenuItemResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

func MenuItemFromDomain(m *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
	}
}
