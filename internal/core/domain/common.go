package domain

import "time"

// Timestamps holds the standard bookkeeping columns shared by board entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
