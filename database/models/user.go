package models

import (
	"github.com/uptrace/bun"
)

// User is an operator account. Only operators pre-listed in the static
// username table are migrated; everyone migrated signs in with Google.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             string         `bun:"id,pk,type:uuid"`
	Username       string         `bun:"username,notnull,unique"`
	SubClaim       *string        `bun:"sub_claim,unique"`
	DisplayName    string         `bun:"display_name,notnull"`
	Password       *string        `bun:"password"`
	RefreshTokenID *string        `bun:"refresh_token_id,type:uuid"`
	Role           string         `bun:"role,notnull"`
	Authority      string         `bun:"authority,notnull"`
	Status         string         `bun:"status,notnull,default:'active'"`
	Meta           map[string]any `bun:"meta,type:jsonb"`
}
