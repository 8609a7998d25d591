package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"golang.org/x/net/publicsuffix"
)

// CookieStore persists the cookies the backend sets.
type CookieStore interface {
	LoadCookies(ctx context.Context) ([]*http.Cookie, error)
	SaveCookies(ctx context.Context, cookies []*http.Cookie) error
}

// Jar is an http.CookieJar that mirrors the backend's cookies into a
// CookieStore so a session survives restarts. It is the only holder of the
// session cookie.
type Jar struct {
	mu    sync.Mutex
	inner *cookiejar.Jar
	base  *url.URL
	store CookieStore
	log   logging.Logger
}

func newInnerJar() *cookiejar.Jar {
	// cookiejar.New always returns a nil error.
	j, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return j
}

// NewJar builds a jar for the backend at base and seeds it from store.
// A nil store keeps cookies in memory only.
func NewJar(ctx context.Context, base *url.URL, store CookieStore, log logging.Logger) (*Jar, error) {
	j := &Jar{inner: newInnerJar(), base: base, store: store, log: log}
	if store == nil {
		return j, nil
	}

	cookies, err := store.LoadCookies(ctx)
	if err != nil {
		return nil, err
	}
	if len(cookies) > 0 {
		j.inner.SetCookies(base, cookies)
	}
	return j, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	j.persist()
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.inner.Cookies(u)
}

// Has reports whether a cookie called name would be sent to the backend.
func (j *Jar) Has(name string) bool {
	for _, c := range j.Cookies(j.base) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Clear forgets every cookie, in memory and in the store.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner = newInnerJar()
	j.persist()
}

// persist must be called with mu held. The jar only reports name and value,
// so cookies are stored scoped to the backend root.
func (j *Jar) persist() {
	if j.store == nil {
		return
	}

	current := j.inner.Cookies(j.base)
	out := make([]*http.Cookie, 0, len(current))
	for _, c := range current {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/", HttpOnly: true})
	}

	if err := j.store.SaveCookies(context.Background(), out); err != nil {
		j.log.Warn(context.Background(), "failed to persist cookies", "error", err)
	}
}
