package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

// DashboardOptions configures a Dashboard and the stores it owns.
type DashboardOptions struct {
	Temperature     float64
	Planner         PlannerOptions
	FlashSuccessTTL time.Duration
	FlashErrorTTL   time.Duration
}

// unauthorizedNotifier is implemented by clients that report 401s.
type unauthorizedNotifier interface {
	SetUnauthorizedHandler(fn func(ctx context.Context))
}

// Dashboard owns the stores, the active section and the current
// temperature. Cross-store coordination happens here only.
type Dashboard struct {
	Session     *SessionStore
	Outfits     *OutfitStore
	Suggestions *SuggestionStore
	Planner     *PlannerStore
	Chat        *ChatStore
	Modals      *ModalStore
	Flash       *Flash

	log logging.Logger

	mu          sync.Mutex
	section     Section
	temperature float64
}

func NewDashboard(c client.Client, cache SessionCache, jar CookieJar, nav Navigator, opts DashboardOptions, log logging.Logger) *Dashboard {
	d := &Dashboard{
		log:         log,
		section:     SectionToday,
		temperature: opts.Temperature,
	}

	d.Flash = NewFlash(opts.FlashSuccessTTL, opts.FlashErrorTTL)
	d.Modals = NewModalStore()
	d.Session = NewSessionStore(c, cache, jar, nav, log.With("store", "session"))
	d.Outfits = NewOutfitStore(c, d, d.Flash, log.With("store", "outfits"))
	d.Suggestions = NewSuggestionStore(c, d, log.With("store", "suggestions"))
	d.Planner = NewPlannerStore(c, d, d.Outfits, opts.Planner, log.With("store", "planner"))
	d.Chat = NewChatStore(c, d, log.With("store", "chat"))

	if n, ok := c.(unauthorizedNotifier); ok {
		n.SetUnauthorizedHandler(d.Session.HandleUnauthorized)
	}
	return d
}

func (d *Dashboard) Identity() models.Identity {
	return d.Session.Identity()
}

func (d *Dashboard) Section() Section {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.section
}

func (d *Dashboard) Temperature() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.temperature
}

func (d *Dashboard) SetTemperature(t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.temperature = t
}

// Start resolves the session and, when signed in, loads the active section.
func (d *Dashboard) Start(ctx context.Context) (models.Identity, error) {
	id, err := d.Session.ResolveSession(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	d.activate(ctx, d.Section())
	return id, nil
}

// SetSection switches the active view and triggers its loads. Wardrobe and
// design re-list the inventory; today auto-loads a suggestion.
func (d *Dashboard) SetSection(ctx context.Context, s Section) error {
	if !s.Valid() {
		return fmt.Errorf("%w: unknown section %q", common.ErrValidation, s)
	}

	d.mu.Lock()
	d.section = s
	d.mu.Unlock()

	d.activate(ctx, s)
	return nil
}

func (d *Dashboard) activate(ctx context.Context, s Section) {
	switch s {
	case SectionWardrobe:
		d.Outfits.Refresh(ctx)
	case SectionDesign:
		d.Outfits.ForceRefresh(ctx)
	case SectionToday:
		d.Suggestions.AutoLoad(ctx)
	}
}

// Close detaches every store.
func (d *Dashboard) Close() {
	d.Session.Close()
	d.Outfits.Close()
	d.Suggestions.Close()
	d.Planner.Close()
	d.Chat.Close()
	d.Flash.Close()
}
