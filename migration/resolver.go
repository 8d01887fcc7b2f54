package migration

import (
	"fmt"
	"strings"
)

// UserMap resolves legacy operator usernames to the static UUIDs assigned
// to them up front, so records can reference users before any login happens
// against the new database.
type UserMap map[string]string

// Resolve returns the UUID for a username and errors when the username was
// never assigned one. Used for columns that cannot be null.
func (m UserMap) Resolve(username string) (string, error) {
	id, ok := m[username]
	if !ok {
		return "", fmt.Errorf("no user id assigned to username %q", username)
	}
	return id, nil
}

// ResolveOptional returns a pointer to the UUID for a username, or nil when
// the username has no assignment. Used for nullable attribution columns.
func (m UserMap) ResolveOptional(username string) *string {
	if id, ok := m[username]; ok {
		return &id
	}
	return nil
}

// CustomerIndex maps normalized emails to the customer UUIDs generated
// during the customer stage.
type CustomerIndex map[string]string

func (idx CustomerIndex) Resolve(email string) (string, error) {
	id, ok := idx[NormalizeEmail(email)]
	if !ok {
		return "", fmt.Errorf("no customer found for email %q", email)
	}
	return id, nil
}

// NormalizeEmail lowercases and trims an email address. Every email lookup
// and every stored customer email goes through this.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
