package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Customer is deduplicated by normalized email: exactly one row per distinct
// trimmed, lower-cased address, keeping the earliest legacy record's names.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        string         `bun:"id,pk,type:uuid"`
	Email     string         `bun:"email,notnull,unique"`
	FirstName string         `bun:"first_name,notnull"`
	LastName  string         `bun:"last_name,notnull"`
	Created   time.Time      `bun:"created,notnull"`
	Updated   time.Time      `bun:"updated,notnull"`
	UpdatedBy *string        `bun:"updated_by,type:uuid"`
	Meta      map[string]any `bun:"meta,type:jsonb"`
}
