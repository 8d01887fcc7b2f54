package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Order is a purchase event. Transfer orders carry a ParentOrderID and a null
// amount; loading a transfer later flips the parent's status to "transferred".
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID            string         `bun:"id,pk,type:uuid"`
	Created       time.Time      `bun:"created,notnull"`
	CustomerID    string         `bun:"customer_id,notnull,type:uuid"`
	PromoID       *string        `bun:"promo_id,type:uuid"`
	Amount        *float64       `bun:"amount,type:numeric"`
	ParentOrderID *string        `bun:"parent_order_id,type:uuid"`
	Status        string         `bun:"status,notnull"`
	Meta          map[string]any `bun:"meta,type:jsonb"`
}

// OrderItem is one (product, quantity) line of an order.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID        int64  `bun:"id,pk,autoincrement"`
	OrderID   string `bun:"order_id,notnull,type:uuid"`
	ProductID string `bun:"product_id,notnull,type:uuid"`
	Quantity  int    `bun:"quantity,notnull"`
}
