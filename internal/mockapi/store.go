package mockapi

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/rs/xid"
)

var (
	errEmailTaken     = errors.New("email already registered")
	errOutfitNotFound = errors.New("outfit not found")
)

type user struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
}

// store is the in-memory database of the mock backend. A wardrobe id equals
// its owner's user id.
type store struct {
	mu      sync.Mutex
	users   map[string]*user
	byID    map[string]*user
	outfits map[string][]models.Outfit
	plans   map[string]models.BackendWeeklyPlan
}

func newStore() *store {
	return &store{
		users:   make(map[string]*user),
		byID:    make(map[string]*user),
		outfits: make(map[string][]models.Outfit),
		plans:   make(map[string]models.BackendWeeklyPlan),
	}
}

func (s *store) addUser(username, email string, hash []byte) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.users[key]; ok {
		return nil, errEmailTaken
	}
	u := &user{ID: xid.New().String(), Username: username, Email: email, PasswordHash: hash}
	s.users[key] = u
	s.byID[u.ID] = u
	return u, nil
}

func (s *store) userByEmail(email string) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	return u, ok
}

func (s *store) userByID(id string) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	return u, ok
}

func (s *store) listOutfits(userID string) []models.Outfit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Outfit, 0, len(s.outfits[userID]))
	for _, o := range s.outfits[userID] {
		out = append(out, o.Clone())
	}
	return out
}

func (s *store) addOutfit(userID string, o models.Outfit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outfits[userID] = append(s.outfits[userID], o)
}

func (s *store) deleteOutfit(userID, outfitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.outfits[userID]
	i := slices.IndexFunc(list, func(o models.Outfit) bool { return o.OutfitID == outfitID })
	if i < 0 {
		return errOutfitNotFound
	}
	s.outfits[userID] = slices.Delete(list, i, i+1)
	return nil
}

func (s *store) updateOutfit(userID, outfitID string, tags models.Tags) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outfits[userID] {
		if s.outfits[userID][i].OutfitID == outfitID {
			s.outfits[userID][i].Tags = tags.Clone()
			return nil
		}
	}
	return errOutfitNotFound
}

func (s *store) savePlan(userID string, p models.BackendWeeklyPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[userID] = p
}

func (s *store) plan(userID string) (models.BackendWeeklyPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[userID]
	return p, ok
}
