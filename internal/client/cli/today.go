package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/client/services"
	"github.com/dmitrijs2005/wardrobe/internal/common"
)

// Today shows the suggestion for today. A query replaces the stored one
// and always triggers a new request.
func (a *App) Today(ctx context.Context, query string) error {
	if err := a.dash.SetSection(ctx, services.SectionToday); err != nil {
		return err
	}

	s := a.dash.Suggestions
	switch {
	case query != "":
		if err := s.RequestQuery(ctx, query); err != nil {
			return err
		}
	case len(s.Outfits()) == 0 && s.CompositeImageURL() == "":
		if err := s.Request(ctx); err != nil {
			return err
		}
	}

	a.printSuggestion()
	return nil
}

func (a *App) SetTemperature(ctx context.Context, value string) error {
	t, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: temperature must be a number", common.ErrValidation)
	}
	a.dash.SetTemperature(t)
	a.printf("Temperature set to %.1f°C\n", t)
	return nil
}

// Plan builds a new multi-day plan, reporting progress as days complete.
// A partially built plan is printed before the partial failure is reported.
func (a *App) Plan(ctx context.Context) error {
	if err := a.dash.SetSection(ctx, services.SectionWeek); err != nil {
		return err
	}

	a.dash.Planner.OnProgress(func(p models.Progress) {
		a.printf("Planning... %d/%d\n", p.Current, p.Total)
	})
	defer a.dash.Planner.OnProgress(nil)

	plan, err := a.dash.Planner.PlanWeek(ctx)
	if err != nil {
		return err
	}

	a.printPlan(plan)
	return nil
}

func (a *App) Week(ctx context.Context) error {
	if err := a.dash.SetSection(ctx, services.SectionWeek); err != nil {
		return err
	}
	a.printPlan(a.dash.Planner.Plan())
	return nil
}

func (a *App) Chat(ctx context.Context, message string) error {
	if err := a.dash.SetSection(ctx, services.SectionChat); err != nil {
		return err
	}

	reply, err := a.dash.Chat.Send(ctx, message)
	if err != nil {
		return err
	}
	a.printChatMessage(reply)
	return nil
}
