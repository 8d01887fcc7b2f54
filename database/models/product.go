package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID            string         `bun:"id,pk,type:uuid"`
	Status        string         `bun:"status,notnull,default:'inactive'"`
	Type          string         `bun:"type,notnull"`
	Description   string         `bun:"description,notnull"`
	Name          string         `bun:"name,notnull"`
	Price         float64        `bun:"price,notnull,type:numeric"`
	Promo         bool           `bun:"promo"`
	Created       time.Time      `bun:"created,notnull"`
	Updated       time.Time      `bun:"updated,notnull"`
	UpdatedBy     *string        `bun:"updated_by,type:uuid"`
	Meta          map[string]any `bun:"meta,type:jsonb"`
	EventID       *string        `bun:"event_id,type:uuid"`
	AdmissionTier *string        `bun:"admission_tier"`
	MaxQuantity   *int           `bun:"max_quantity"`
}
