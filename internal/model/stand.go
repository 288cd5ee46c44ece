package model

import "time"

// Stand is a food vendor listing
type Stand struct {
	ID           int64     `json:"stand_id"`
	Name         string    `json:"name"`
	Location     *string   `json:"location"`
	Category     *string   `json:"category"`
	OwnerID      *int64    `json:"owner_id"`
	OpeningHours *string   `json:"opening_hours"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// Computed on read from OpeningHours, not stored.
	IsOpenNow bool `json:"is_open_now"`
}

type CreateStandRequest struct {
	Name         string  `json:"name" binding:"required"`
	Location     *string `json:"location"`
	Category     *string `json:"category"`
	OwnerID      *int64  `json:"owner_id"` // Honoured for admins only
	OpeningHours *string `json:"opening_hours"`
	IsActive     *bool   `json:"is_active"`
}

type UpdateStandRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Location     *string `json:"location,omitempty"`
	Category     *string `json:"category,omitempty"`
	OwnerID      *int64  `json:"owner_id,omitempty"`
	OpeningHours *string `json:"opening_hours,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// StandFilters contains optional filters for stand listings
type StandFilters struct {
	Category *string
	OwnerID  *int64
	IsActive *bool
	OpenNow  bool
}

// OpenStatus describes whether a stand is open at a given instant
type OpenStatus struct {
	StandID      int64     `json:"stand_id"`
	OpeningHours *string   `json:"opening_hours"`
	IsOpenNow    bool      `json:"is_open_now"`
	Days         []string  `json:"days,omitempty"`
	Window       string    `json:"window,omitempty"`
	Overnight    bool      `json:"overnight"`
	CheckedAt    time.Time `json:"checked_at"`
}
