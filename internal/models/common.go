package models

import "time"

// Timestamps mirrors the created_at/updated_at columns present on most tables.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
