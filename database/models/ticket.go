package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket is the scannable credential attached to a guest. A guest holds
// exactly one ticket after migration.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:tk"`

	ID      string    `bun:"id,pk,type:uuid"`
	Status  string    `bun:"status,notnull,default:'active'"`
	GuestID string    `bun:"guest_id,notnull,type:uuid"`
	Created time.Time `bun:"created,notnull"`
	Updated time.Time `bun:"updated,notnull"`
}
