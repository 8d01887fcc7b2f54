package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Guest struct {
	bun.BaseModel `bun:"table:guests,alias:g"`

	ID            string         `bun:"id,pk,type:uuid"`
	CheckInTime   *time.Time     `bun:"check_in_time"`
	Created       time.Time      `bun:"created,notnull"`
	CreatedBy     *string        `bun:"created_by,type:uuid"`
	CreatedReason *string        `bun:"created_reason"`
	EventID       string         `bun:"event_id,notnull,type:uuid"`
	FirstName     string         `bun:"first_name,notnull"`
	LastName      string         `bun:"last_name,notnull"`
	Status        string         `bun:"status,notnull,default:'active'"`
	OrderID       *string        `bun:"order_id,type:uuid"`
	Updated       time.Time      `bun:"updated,notnull"`
	UpdatedBy     *string        `bun:"updated_by,type:uuid"`
	AdmissionTier string         `bun:"admission_tier,notnull"`
	Meta          map[string]any `bun:"meta,type:jsonb"`
}
