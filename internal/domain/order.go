package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order represents a placed order
type Order struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	UserID     uuid.UUID   `json:"user_id" db:"user_id"`
	Status     string      `json:"status" db:"status"`
	TotalCents int64       `json:"total_cents" db:"total_cents"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// OrderItem is one line of an order. Display fields are copied from the
// cart line at checkout time, so the order remains accurate even if the
// artwork is later edited or removed.
type OrderItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OrderID    uuid.UUID `json:"order_id" db:"order_id"`
	ArtworkID  uuid.UUID `json:"artwork_id" db:"artwork_id"`
	Title      string    `json:"title" db:"title"`
	ArtistName string    `json:"artist_name" db:"artist_name"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	PriceCents int64     `json:"price_cents" db:"price_cents"`
	Quantity   int       `json:"quantity" db:"quantity"`
}
