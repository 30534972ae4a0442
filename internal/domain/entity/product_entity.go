package entity

import "time"

// Product is catalog glue around the identity core: plain CRUD with
// public reads, admin-only writes.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Section     string
	Quantity    int
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
