package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/config"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

// fakeResolver is an inventory whose contents appear after a refresh.
type fakeResolver struct {
	mu        sync.Mutex
	known     map[string]models.Outfit
	onRefresh map[string]models.Outfit
	refreshes int
}

func (r *fakeResolver) Find(id string) (models.Outfit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.known[id]
	return o, ok
}

func (r *fakeResolver) ForceRefresh(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
	if r.known == nil {
		r.known = make(map[string]models.Outfit)
	}
	for id, o := range r.onRefresh {
		r.known[id] = o
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 2, 15, 30, 0, 0, time.UTC)
}

func newPlanner(c client.Client, r OutfitResolver, opts PlannerOptions) *PlannerStore {
	p := NewPlannerStore(c, signedInAt(SectionWeek), r, opts, logging.Nop())
	p.now = fixedNow
	return p
}

// countingSuggest answers per call; failOn lists the 1-based calls that fail.
func countingSuggest(failOn ...int) func(ctx context.Context, req client.SuggestRequest) (models.SuggestionResult, error) {
	var mu sync.Mutex
	n := 0
	return func(ctx context.Context, req client.SuggestRequest) (models.SuggestionResult, error) {
		mu.Lock()
		n++
		call := n
		mu.Unlock()

		for _, f := range failOn {
			if f == call {
				return models.SuggestionResult{}, apiErr(http.StatusBadRequest, "No outfits found in wardrobe. Please add some outfits first.")
			}
		}
		return suggestion("o" + string(rune('0'+call))), nil
	}
}

func TestPlanWeek_Sequential(t *testing.T) {
	c := &fakeClient{SuggestFn: countingSuggest()}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Horizon: 3})

	var seen []models.Progress
	p.OnProgress(func(pr models.Progress) { seen = append(seen, pr) })

	plan, err := p.PlanWeek(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, plan.Len())

	assert.Equal(t, []string{"Today", "Tomorrow", "Day After Tomorrow"}, []string{plan.Days[0].Day, plan.Days[1].Day, plan.Days[2].Day})
	assert.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), plan.Days[1].Date)
	require.NotNil(t, plan.Days[0].Outfit)
	assert.Equal(t, "o1", plan.Days[0].Outfit.OutfitID)
	assert.Equal(t, []models.OutfitRef{"o2"}, plan.Days[1].Outfits)

	assert.Equal(t, []models.Progress{{Current: 1, Total: 3}, {Current: 2, Total: 3}, {Current: 3, Total: 3}}, seen)
	assert.Equal(t, models.Progress{Current: 0, Total: 3}, p.Progress())
	assert.False(t, p.Planning())
	assert.Equal(t, 3, p.Plan().Len())

	for _, req := range c.LastSuggestReqs {
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 22.0, *req.Temperature)
	}
}

func TestPlanWeek_OneDayFails(t *testing.T) {
	c := &fakeClient{SuggestFn: countingSuggest(2)}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Horizon: 3})

	plan, err := p.PlanWeek(context.Background())
	require.NoError(t, err, "a single failed day does not fail the run")
	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, 2, p.Plan().Len(), "partial plan is installed")
	assert.Equal(t, models.Progress{Current: 0, Total: 3}, p.Progress())
	assert.Equal(t, "Day After Tomorrow", plan.Days[1].Day)
}

func TestPlanWeek_UnauthorizedAborts(t *testing.T) {
	c := &fakeClient{SuggestErr: apiErr(http.StatusUnauthorized, "Session expired")}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Horizon: 3})

	_, err := p.PlanWeek(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, errors.Is(err, common.ErrPartialFailure))
	assert.Equal(t, 1, c.Calls("SuggestOutfits"))
	assert.Zero(t, p.Plan().Len())
}

func TestPlanWeek_ClearsPreviousPlanAtStart(t *testing.T) {
	c := &fakeClient{SuggestFn: countingSuggest()}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Horizon: 2})

	_, err := p.PlanWeek(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, p.Plan().Len())

	var during []int
	c.SuggestFn = func(ctx context.Context, req client.SuggestRequest) (models.SuggestionResult, error) {
		during = append(during, p.Plan().Len())
		return models.SuggestionResult{}, errors.New("boom")
	}
	plan, err := p.PlanWeek(context.Background())
	require.NoError(t, err, "a run where every day failed still completes")

	assert.Equal(t, []int{0, 0}, during)
	assert.Zero(t, plan.Len())
	assert.Zero(t, p.Plan().Len(), "the empty plan replaces the previous one")
}

func TestPlanWeek_NoIdentity(t *testing.T) {
	c := &fakeClient{}
	p := NewPlannerStore(c, &fakeConditions{}, &fakeResolver{}, PlannerOptions{}, logging.Nop())

	_, err := p.PlanWeek(context.Background())
	require.ErrorIs(t, err, common.ErrNoIdentity)
	assert.Zero(t, c.Calls("SuggestOutfits"))
}

func TestPlanWeek_Busy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	c := &fakeClient{}
	c.SuggestFn = func(ctx context.Context, req client.SuggestRequest) (models.SuggestionResult, error) {
		once.Do(func() { close(started) })
		<-release
		return suggestion("o1"), nil
	}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Horizon: 1})

	done := make(chan error, 1)
	go func() {
		_, err := p.PlanWeek(context.Background())
		done <- err
	}()
	<-started

	_, err := p.PlanWeek(context.Background())
	require.ErrorIs(t, err, common.ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestPlanWeek_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &fakeClient{SuggestFn: countingSuggest()}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Horizon: 3, StepDelay: time.Hour})

	_, err := p.PlanWeek(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, p.Plan().Len())
}

func backendPlan(days map[string]models.BackendDailyPlan) []models.BackendWeeklyPlan {
	return []models.BackendWeeklyPlan{
		{PlanID: "old", CreatedAt: "2026-01-01T00:00:00", DailyPlans: map[string]models.BackendDailyPlan{}},
		{PlanID: "new", CreatedAt: "2026-03-02T10:00:00", DailyPlans: days},
	}
}

func TestPlanWeek_BackendResolvesAfterRefresh(t *testing.T) {
	c := &fakeClient{PlansRet: backendPlan(map[string]models.BackendDailyPlan{
		"day1": {Date: "2026-03-02", Day: "Monday", OutfitIDs: []string{"o1"}},
		"day2": {Date: "2026-03-03", Day: "Tuesday", OutfitIDs: []string{"o2"}},
		"day3": {Date: "2026-03-04", Day: "Wednesday", OutfitIDs: []string{"o3"}},
	})}
	r := &fakeResolver{
		known:     map[string]models.Outfit{"o1": {OutfitID: "o1"}},
		onRefresh: map[string]models.Outfit{"o2": {OutfitID: "o2"}, "o3": {OutfitID: "o3"}},
	}
	p := newPlanner(c, r, PlannerOptions{Horizon: 3, Mode: config.PlanModeBackend, Labels: models.LabelsWeekdays})

	plan, err := p.PlanWeek(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, plan.Len())
	assert.Equal(t, 1, r.refreshes)

	assert.Equal(t, "Monday", plan.Days[0].Day)
	assert.Equal(t, "o3", plan.Days[2].Outfit.OutfitID)
	assert.Equal(t, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), plan.Days[2].Date)
	require.NotNil(t, c.LastPlanTemp)
	assert.Equal(t, 22.0, *c.LastPlanTemp)
}

func TestPlanWeek_BackendUnresolvableDay(t *testing.T) {
	c := &fakeClient{PlansRet: backendPlan(map[string]models.BackendDailyPlan{
		"day1": {Date: "2026-03-02", OutfitIDs: []string{"o1"}},
		"day2": {Date: "2026-03-03", OutfitIDs: []string{"gone"}},
	})}
	r := &fakeResolver{known: map[string]models.Outfit{"o1": {OutfitID: "o1"}}}
	p := newPlanner(c, r, PlannerOptions{Horizon: 3, Mode: config.PlanModeBackend})
	var seen []models.Progress
	p.OnProgress(func(pr models.Progress) { seen = append(seen, pr) })

	plan, err := p.PlanWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Len(), "missing third day and unresolvable second day are left out")
	assert.Equal(t, 1, r.refreshes)
	assert.Equal(t, []models.Progress{{Current: 1, Total: 3}, {Current: 2, Total: 3}, {Current: 3, Total: 3}}, seen,
		"days the backend left out still advance progress")
}

func TestPlanWeek_BackendCreateFails(t *testing.T) {
	c := &fakeClient{CreatePlanErr: apiErr(http.StatusBadRequest, "No outfits found in wardrobe. Please add some outfits first.")}
	p := newPlanner(c, &fakeResolver{}, PlannerOptions{Mode: config.PlanModeBackend})

	_, err := p.PlanWeek(context.Background())
	require.ErrorIs(t, err, common.ErrRequestFailed)
	assert.False(t, errors.Is(err, common.ErrPartialFailure))
	assert.Zero(t, c.Calls("GetWeeklyPlans"))
}
