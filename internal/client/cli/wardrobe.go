package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/client/services"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/filex"
)

var errOutfitNotFound = errors.New("outfit not found")

// View switches the dashboard section.
func (a *App) View(ctx context.Context, section services.Section) error {
	if err := a.dash.SetSection(ctx, section); err != nil {
		return err
	}
	a.printf("Switched to %s\n", section)

	switch section {
	case services.SectionAccount:
		return a.WhoAmI(ctx)
	case services.SectionWardrobe:
		a.printOutfits(a.dash.Outfits.Outfits())
	case services.SectionToday:
		a.printSuggestion()
	case services.SectionWeek:
		a.printPlan(a.dash.Planner.Plan())
	case services.SectionChat:
		for _, m := range a.dash.Chat.Messages() {
			a.printChatMessage(m)
		}
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.dash.SetSection(ctx, services.SectionWardrobe); err != nil {
		return err
	}
	a.printOutfits(a.dash.Outfits.Outfits())
	return nil
}

func (a *App) Groups(ctx context.Context) error {
	if err := a.dash.SetSection(ctx, services.SectionWardrobe); err != nil {
		return err
	}
	grouped := a.dash.Outfits.Grouped()
	for _, g := range models.CategoryGroupOrder {
		a.printf("%s (%d)\n", models.CategoryGroups[g].Label, len(grouped[g]))
		for _, o := range grouped[g] {
			a.printf("  %s\n", outfitLine(o))
		}
	}
	return nil
}

// find looks an outfit up in the inventory, re-listing once on a miss.
func (a *App) find(ctx context.Context, id string) (models.Outfit, error) {
	if o, ok := a.dash.Outfits.Find(id); ok {
		return o, nil
	}
	a.dash.Outfits.ForceRefresh(ctx)
	if o, ok := a.dash.Outfits.Find(id); ok {
		return o, nil
	}
	return models.Outfit{}, fmt.Errorf("%w: %s", errOutfitNotFound, id)
}

func (a *App) Show(ctx context.Context, id string) error {
	o, err := a.find(ctx, id)
	if err != nil {
		return err
	}

	a.dash.Modals.OpenDetail(o)
	defer a.dash.Modals.CloseDetail()

	detail, _ := a.dash.Modals.Detail()
	a.printOutfitDetail(detail)
	return nil
}

// Upload reads an image from disk and sends it. The outcome is shown by the
// flash banner, so only a concurrent upload is reported as an error here.
func (a *App) Upload(ctx context.Context, path string) error {
	name, contentType, data, err := filex.ReadFile(path)
	if err != nil {
		return err
	}

	_, err = a.dash.Outfits.Upload(ctx, models.UploadFile{Name: name, ContentType: contentType, Data: data})
	if errors.Is(err, common.ErrBusy) {
		return err
	}
	if err != nil {
		a.log.Debug(ctx, "upload failed", "file", name, "error", err)
	}
	return nil
}

// Delete asks for confirmation and removes the outfit.
func (a *App) Delete(ctx context.Context, id string) error {
	var removeErr error
	a.dash.Modals.OpenConfirm(services.ConfirmConfig{
		Title:       "Delete outfit",
		Message:     fmt.Sprintf("Delete outfit %s? This cannot be undone.", id),
		ConfirmText: "y",
		CancelText:  "N",
		OnConfirm: func() {
			removeErr = a.dash.Outfits.Remove(ctx, id)
		},
	})

	cfg, _ := a.dash.Modals.Pending()
	ok, err := getConfirmation(a.reader, cfg.Message, cfg.ConfirmText, cfg.CancelText, a.out)
	if err != nil {
		a.dash.Modals.Cancel()
		return err
	}
	if !ok {
		a.dash.Modals.Cancel()
		a.println("Cancelled")
		return nil
	}

	a.dash.Modals.Confirm()
	if removeErr != nil {
		return removeErr
	}
	a.println("Deleted", id)
	return nil
}

// Tag edits an outfit's tags. Without pairs it prompts for name=value lines.
// An empty value removes the tag; the full merged mapping is sent.
func (a *App) Tag(ctx context.Context, id string, pairs []string) error {
	o, err := a.find(ctx, id)
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		a.printf("Current tags:\n")
		a.printTags(o.Tags)
		pairs, err = getTagPairs(a.reader, a.out)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			a.println("No changes")
			return nil
		}
	}

	edits, err := models.TagsFromPairs(pairs)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	merged := models.MergeTags(o.Tags, edits)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	if err := a.dash.Outfits.Update(ctx, id, merged); err != nil {
		return err
	}
	a.println("Updated", id)
	return nil
}
