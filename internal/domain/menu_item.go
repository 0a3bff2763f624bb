package domain

import "time"

// MenuFilter narrows a catalog listing; zero values mean no filtering.
type MenuFilter struct {
	Category  string
	Available *bool
}

// MenuPatch is a partial update; nil fields keep the stored value.
type MenuPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Available   *bool
}

type MenuItem struct {
	ID          uint
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    *string
	Available   bool
	CreatedAt   time.Time
}
