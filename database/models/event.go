package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID             string         `bun:"id,pk,type:uuid"`
	Date           time.Time      `bun:"date,notnull"`
	Name           string         `bun:"name"`
	OpeningSales   *time.Time     `bun:"opening_sales"`
	SalesEnabled   bool           `bun:"sales_enabled,notnull"`
	MaxCapacity    *int           `bun:"max_capacity"`
	AlcoholRevenue *float64       `bun:"alcohol_revenue,type:numeric"`
	Budget         *float64       `bun:"budget,type:numeric"`
	FoodRevenue    *float64       `bun:"food_revenue,type:numeric"`
	Status         string         `bun:"status"`
	Created        *time.Time     `bun:"created"`
	Updated        *time.Time     `bun:"updated"`
	UpdatedBy      *string        `bun:"updated_by,type:uuid"`
	Meta           map[string]any `bun:"meta,type:jsonb"`
}
