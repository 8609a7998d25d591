package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/config"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

// PlannerOptions configures PlannerStore.
type PlannerOptions struct {
	Horizon   int
	Mode      string
	Labels    string
	StepDelay time.Duration
}

// PlannerStore builds a multi-day outfit plan. A run clears the previous
// plan first and installs the new one only when it finishes.
type PlannerStore struct {
	client   client.Client
	cond     Conditions
	resolver OutfitResolver
	log      logging.Logger
	opts     PlannerOptions
	now      func() time.Time

	mu         sync.Mutex
	plan       models.WeeklyPlan
	progress   models.Progress
	planning   bool
	mounted    bool
	onProgress func(models.Progress)
}

func NewPlannerStore(c client.Client, cond Conditions, resolver OutfitResolver, opts PlannerOptions, log logging.Logger) *PlannerStore {
	if opts.Horizon <= 0 {
		opts.Horizon = 3
	}
	if opts.Mode == "" {
		opts.Mode = config.PlanModeSequential
	}
	if opts.Labels == "" {
		opts.Labels = models.LabelsRelative
	}
	return &PlannerStore{
		client:   c,
		cond:     cond,
		resolver: resolver,
		log:      log,
		opts:     opts,
		now:      time.Now,
		progress: models.Progress{Total: opts.Horizon},
		mounted:  true,
	}
}

// OnProgress registers fn to receive progress after each unit of work.
func (p *PlannerStore) OnProgress(fn func(models.Progress)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onProgress = fn
}

// PlanWeek plans the configured horizon. Days that could not be planned are
// logged and left out, possibly leaving an empty plan. An error means the
// run was aborted and no plan was installed.
func (p *PlannerStore) PlanWeek(ctx context.Context) (models.WeeklyPlan, error) {
	if p.cond.Identity().IsZero() {
		return models.WeeklyPlan{}, common.ErrNoIdentity
	}

	n := p.opts.Horizon

	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return models.WeeklyPlan{}, nil
	}
	if p.planning {
		p.mu.Unlock()
		return models.WeeklyPlan{}, common.ErrBusy
	}
	p.planning = true
	p.plan = models.WeeklyPlan{}
	p.progress = models.Progress{Total: n}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.planning = false
		p.progress = models.Progress{Total: n}
		p.mu.Unlock()
	}()

	var (
		days   []models.PlanDay
		failed int
		err    error
	)
	switch p.opts.Mode {
	case config.PlanModeBackend:
		days, failed, err = p.planOnBackend(ctx, n)
	default:
		days, failed, err = p.planSequentially(ctx, n)
	}
	if err != nil {
		return models.WeeklyPlan{}, err
	}

	plan := models.WeeklyPlan{Days: days}

	p.mu.Lock()
	if p.mounted {
		p.plan = plan
	}
	p.mu.Unlock()

	if failed > 0 {
		p.log.Warn(ctx, "plan is incomplete", "planned", len(days), "failed", failed,
			"error", fmt.Errorf("%w: %d of %d days could not be planned", common.ErrPartialFailure, failed, n))
	}
	return plan, nil
}

func (p *PlannerStore) step(current, total int) {
	p.mu.Lock()
	p.progress = models.Progress{Current: current, Total: total}
	fn := p.onProgress
	p.mu.Unlock()

	if fn != nil {
		fn(models.Progress{Current: current, Total: total})
	}
}

func (p *PlannerStore) limiter() *rate.Limiter {
	if p.opts.StepDelay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(p.opts.StepDelay), 1)
}

// fatal reports errors that end the whole run instead of a single day.
func fatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, common.ErrUnauthorized)
}

func (p *PlannerStore) startOfDay() time.Time {
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// planSequentially asks for one suggestion per day and keeps its first
// outfit as the day's pick.
func (p *PlannerStore) planSequentially(ctx context.Context, n int) ([]models.PlanDay, int, error) {
	temperature := p.cond.Temperature()
	labels := models.DayLabels(p.opts.Labels, n)
	today := p.startOfDay()
	lim := p.limiter()

	days := make([]models.PlanDay, 0, n)
	failed := 0

	for i := 0; i < n; i++ {
		if err := lim.Wait(ctx); err != nil {
			return nil, 0, err
		}

		res, err := p.client.SuggestOutfits(ctx, client.SuggestRequest{Temperature: &temperature})
		switch {
		case err != nil && fatal(ctx, err):
			return nil, 0, err
		case err != nil:
			failed++
			p.log.Warn(ctx, "planning day failed", "day", labels[i], "error", fmt.Errorf("%w: %w", common.ErrPartialFailure, err))
		case len(res.Outfits) == 0:
			failed++
			p.log.Warn(ctx, "no outfit suggested for day", "day", labels[i], "error", common.ErrPartialFailure)
		default:
			pick := res.Outfits[0].Clone()
			refs := make([]models.OutfitRef, 0, len(res.Outfits))
			for _, o := range res.Outfits {
				refs = append(refs, models.OutfitRef(o.OutfitID))
			}
			days = append(days, models.PlanDay{
				Day:               labels[i],
				Date:              today.AddDate(0, 0, i),
				Outfits:           refs,
				Outfit:            &pick,
				CompositeImageURL: res.CompositeImageURL,
			})
		}

		p.step(i+1, n)
	}
	return days, failed, nil
}

// planOnBackend lets the backend build the plan, then resolves each day's
// outfit references against the inventory.
func (p *PlannerStore) planOnBackend(ctx context.Context, n int) ([]models.PlanDay, int, error) {
	temperature := p.cond.Temperature()

	if _, err := p.client.CreateWeeklyPlan(ctx, &temperature); err != nil {
		return nil, 0, err
	}
	plans, err := p.client.GetWeeklyPlans(ctx)
	if err != nil {
		return nil, 0, err
	}
	latest, ok := models.LatestPlan(plans)
	if !ok {
		return nil, 0, fmt.Errorf("%w: backend returned no weekly plan", common.ErrRequestFailed)
	}

	backendDays := latest.OrderedDays()
	if len(backendDays) > n {
		backendDays = backendDays[:n]
	}

	labels := models.DayLabels(p.opts.Labels, n)
	today := p.startOfDay()
	days := make([]models.PlanDay, 0, len(backendDays))
	failed := 0
	refreshed := false

	for i, bd := range backendDays {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		refs := make([]models.OutfitRef, 0, len(bd.OutfitIDs))
		for _, id := range bd.OutfitIDs {
			refs = append(refs, models.OutfitRef(id))
		}

		pick, found := p.resolve(refs)
		if !found && len(refs) > 0 && !refreshed {
			p.resolver.ForceRefresh(ctx)
			refreshed = true
			pick, found = p.resolve(refs)
		}

		if !found {
			failed++
			p.log.Warn(ctx, "no resolvable outfit for day", "day", bd.Day, "error", common.ErrPartialFailure)
		} else {
			day := models.PlanDay{
				Day:               labels[i],
				Date:              today.AddDate(0, 0, i),
				Outfits:           refs,
				Outfit:            &pick,
				CompositeImageURL: bd.ImageURL,
			}
			if p.opts.Labels == models.LabelsWeekdays && bd.Day != "" {
				day.Day = bd.Day
			}
			if d, err := time.ParseInLocation(time.DateOnly, bd.Date, today.Location()); err == nil {
				day.Date = d
			}
			days = append(days, day)
		}

		p.step(i+1, n)
	}

	for i := len(backendDays); i < n; i++ {
		failed++
		p.log.Warn(ctx, "backend plan has no entry for day", "day", labels[i], "error", common.ErrPartialFailure)
		p.step(i+1, n)
	}
	return days, failed, nil
}

// resolve returns the first reference the inventory knows.
func (p *PlannerStore) resolve(refs []models.OutfitRef) (models.Outfit, bool) {
	for _, ref := range refs {
		if o, ok := p.resolver.Find(string(ref)); ok {
			return o, true
		}
	}
	return models.Outfit{}, false
}

func (p *PlannerStore) Plan() models.WeeklyPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return models.WeeklyPlan{Days: append([]models.PlanDay(nil), p.plan.Days...)}
}

func (p *PlannerStore) Progress() models.Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

func (p *PlannerStore) Planning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.planning
}

func (p *PlannerStore) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = false
}
