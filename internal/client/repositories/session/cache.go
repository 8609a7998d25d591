// Package session is the process-wide session cache: the backend cookies and
// the last identity the backend confirmed. Only the session store and the
// HTTP client's cookie jar write to it.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
)

const (
	keyPrefix   = "session."
	identityKey = keyPrefix + "identity"
	cookiesKey  = keyPrefix + "cookies"
)

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// Cache persists session state in the metadata table.
type Cache struct {
	db *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(c.db)
}

// LoadIdentity returns the cached identity, or the zero Identity when none is
// cached.
func (c *Cache) LoadIdentity(ctx context.Context) (models.Identity, error) {
	var id models.Identity
	if _, err := c.repo().Load(ctx, identityKey, &id); err != nil {
		return models.Identity{}, err
	}
	return id, nil
}

func (c *Cache) SaveIdentity(ctx context.Context, id models.Identity) error {
	return c.repo().Store(ctx, identityKey, id)
}

// ClearIdentity forgets the cached identity but keeps the cookies.
func (c *Cache) ClearIdentity(ctx context.Context) error {
	return c.repo().Delete(ctx, identityKey)
}

// LoadCookies returns the persisted cookies, dropping those already expired.
func (c *Cache) LoadCookies(ctx context.Context) ([]*http.Cookie, error) {
	var stored []storedCookie
	if _, err := c.repo().Load(ctx, cookiesKey, &stored); err != nil {
		return nil, err
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		if !s.Expires.IsZero() && s.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     s.Name,
			Value:    s.Value,
			Path:     s.Path,
			Domain:   s.Domain,
			Expires:  s.Expires,
			Secure:   s.Secure,
			HttpOnly: s.HttpOnly,
		})
	}
	return cookies, nil
}

// SaveCookies replaces the persisted cookie set. An empty set deletes it.
func (c *Cache) SaveCookies(ctx context.Context, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return c.repo().Delete(ctx, cookiesKey)
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, ck := range cookies {
		stored = append(stored, storedCookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     ck.Path,
			Domain:   ck.Domain,
			Expires:  ck.Expires,
			Secure:   ck.Secure,
			HttpOnly: ck.HttpOnly,
		})
	}
	return c.repo().Store(ctx, cookiesKey, stored)
}

// Clear drops the identity and the cookies in one transaction.
func (c *Cache) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, c.db, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).DeletePrefix(ctx, keyPrefix)
	})
}
