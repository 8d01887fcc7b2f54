package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Transaction is an immutable ledger entry for an order's settlement. The
// migration only produces type "sale"; refunds and voids come later.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID                     string         `bun:"id,pk,type:uuid"`
	Created                time.Time      `bun:"created,notnull"`
	Amount                 float64        `bun:"amount,type:numeric"`
	Type                   string         `bun:"type,notnull"`
	OrderID                string         `bun:"order_id,notnull,type:uuid"`
	ProcessorCreatedAt     *time.Time     `bun:"processor_created_at"`
	ProcessorTransactionID *string        `bun:"processor_transaction_id"`
	Processor              *string        `bun:"processor"`
	ParentTransactionID    *string        `bun:"parent_transaction_id,type:uuid"`
	Meta                   map[string]any `bun:"meta,type:jsonb"`
}
