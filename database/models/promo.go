package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Promo is a discount or comp instrument tied to a product. CreatedBy is a
// required foreign key into users, resolved from the static username table.
type Promo struct {
	bun.BaseModel `bun:"table:promos,alias:pr"`

	ID              string         `bun:"id,pk,type:uuid"`
	Created         time.Time      `bun:"created,notnull"`
	Updated         time.Time      `bun:"updated,notnull"`
	CreatedBy       string         `bun:"created_by,notnull,type:uuid"`
	UpdatedBy       *string        `bun:"updated_by,type:uuid"`
	Price           *float64       `bun:"price,type:numeric"`
	PercentDiscount *float64       `bun:"percent_discount,type:numeric"`
	FlatDiscount    *float64       `bun:"flat_discount,type:numeric"`
	ProductID       string         `bun:"product_id,notnull,type:uuid"`
	RecipientName   *string        `bun:"recipient_name"`
	Status          string         `bun:"status,notnull,default:'active'"`
	Type            string         `bun:"type,notnull"`
	Meta            map[string]any `bun:"meta,type:jsonb"`
}
