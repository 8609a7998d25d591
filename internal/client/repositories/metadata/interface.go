// Package metadata is a small JSON key/value store on the client database.
// The session cache (see package session) keeps the cookie jar and the last
// resolved identity in it.
package metadata

import (
	"context"
)

// Repository stores JSON documents by key. Keys are namespaced by a dotted
// prefix ("session.cookies") so a group can be dropped with DeletePrefix.
type Repository interface {
	// Load decodes the value under key into v. It reports false, leaving v
	// untouched, when key is absent.
	Load(ctx context.Context, key string, v any) (bool, error)
	Store(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
