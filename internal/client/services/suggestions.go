package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

// SuggestionStore holds the backend's latest outfit suggestion. Only the
// newest request may write its result; answers to superseded requests are
// dropped.
type SuggestionStore struct {
	client client.Client
	cond   Conditions
	log    logging.Logger

	mu         sync.Mutex
	outfits    []models.Outfit
	composite  string
	query      string
	loading    bool
	fetched    bool
	autoLoaded bool
	gen        uint64
	mounted    bool
}

func NewSuggestionStore(c client.Client, cond Conditions, log logging.Logger) *SuggestionStore {
	return &SuggestionStore{client: c, cond: cond, log: log, mounted: true}
}

// AutoLoad fetches a first suggestion once per store lifetime, when the
// today section is shown to a signed-in user and nothing was fetched yet.
// Failures are only logged.
func (s *SuggestionStore) AutoLoad(ctx context.Context) {
	if s.cond.Section() != SectionToday || s.cond.Identity().IsZero() {
		return
	}

	s.mu.Lock()
	if !s.mounted || s.autoLoaded || s.fetched || s.loading {
		s.mu.Unlock()
		return
	}
	s.autoLoaded = true
	s.mu.Unlock()

	if err := s.fetch(ctx, ""); err != nil {
		s.log.Warn(ctx, "suggestion auto-load failed", "error", err)
	}
}

// Request fetches a suggestion for the current temperature and stored query.
func (s *SuggestionStore) Request(ctx context.Context) error {
	return s.fetch(ctx, "")
}

// RequestQuery is Request with a one-off query. After a successful answer q
// becomes the stored query.
func (s *SuggestionStore) RequestQuery(ctx context.Context, q string) error {
	return s.fetch(ctx, q)
}

func (s *SuggestionStore) fetch(ctx context.Context, override string) error {
	temperature := s.cond.Temperature()
	override = strings.TrimSpace(override)

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.loading = true
	query := override
	if query == "" {
		query = strings.TrimSpace(s.query)
	}
	s.mu.Unlock()

	res, err := s.client.SuggestOutfits(ctx, client.SuggestRequest{Temperature: &temperature, Query: query})

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || gen != s.gen {
		s.log.Debug(ctx, "dropping stale suggestion", "generation", gen)
		return nil
	}
	s.loading = false
	if err != nil {
		return err
	}

	s.outfits = res.Outfits
	if s.outfits == nil {
		s.outfits = []models.Outfit{}
	}
	s.composite = res.CompositeImageURL
	s.fetched = true
	if override != "" {
		s.query = override
	}
	return nil
}

func (s *SuggestionStore) Outfits() []models.Outfit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Outfit, len(s.outfits))
	for i, o := range s.outfits {
		out[i] = o.Clone()
	}
	return out
}

func (s *SuggestionStore) CompositeImageURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composite
}

func (s *SuggestionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SuggestionStore) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetQuery stores the free-text query used by later requests.
func (s *SuggestionStore) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

func (s *SuggestionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
}
