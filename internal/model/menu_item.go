package model

import "time"

// MenuItem is a dish sold by a stand. Price is in euros.
type MenuItem struct {
	ID          int64     `json:"item_id"`
	StandID     int64     `json:"stand_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	IsVegan     bool      `json:"is_vegan"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateMenuItemRequest struct {
	StandID     int64    `json:"stand_id" binding:"required,gt=0"`
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	IsVegan     *bool    `json:"is_vegan"`
	Available   *bool    `json:"available"`
}

type UpdateMenuItemRequest struct {
	StandID     *int64   `json:"stand_id,omitempty" binding:"omitempty,gt=0"`
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	IsVegan     *bool    `json:"is_vegan,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}
