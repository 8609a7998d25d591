package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

func outfitLine(o models.Outfit) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{models.TagCategory, "color"} {
		if v := o.Tags.String(key); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return o.OutfitID
	}
	return fmt.Sprintf("%s  %s", o.OutfitID, strings.Join(parts, ", "))
}

func (a *App) printOutfits(outfits []models.Outfit) {
	if a.dash.Outfits.Loading() {
		a.println("Loading...")
		return
	}
	if len(outfits) == 0 {
		a.println("Your wardrobe is empty. Use 'upload <path>' to add outfits.")
		return
	}
	for _, o := range outfits {
		a.println(outfitLine(o))
	}
}

func (a *App) printTags(tags models.Tags) {
	if len(tags) == 0 {
		a.println("  (no tags)")
		return
	}
	for _, k := range tags.Keys() {
		a.printf("  %s = %v\n", k, tags[k])
	}
}

func (a *App) printOutfitDetail(o models.Outfit) {
	a.printf("Outfit %s\n", o.OutfitID)
	a.printf("  image: %s\n", o.ImageURL)
	a.printTags(o.Tags)
}

func (a *App) printSuggestion() {
	s := a.dash.Suggestions
	outfits := s.Outfits()
	if len(outfits) == 0 {
		a.println("No suggestion yet. Use 'today [query]' to ask for one.")
		return
	}

	header := fmt.Sprintf("Suggested for %.0f°C", a.dash.Temperature())
	if q := s.Query(); q != "" {
		header += fmt.Sprintf(" (%s)", q)
	}
	a.println(header)
	for _, o := range outfits {
		a.printf("  %s\n", outfitLine(o))
	}
	if url := s.CompositeImageURL(); url != "" {
		a.printf("  look: %s\n", url)
	}
}

func (a *App) printPlan(plan models.WeeklyPlan) {
	if plan.Len() == 0 {
		a.println("No plan yet. Use 'plan' to create one.")
		return
	}
	for _, d := range plan.Days {
		line := fmt.Sprintf("%-20s %s", d.Day, d.Date.Format("Mon 02 Jan"))
		if d.Outfit != nil {
			line += "  " + outfitLine(*d.Outfit)
		}
		a.println(line)
		if d.CompositeImageURL != "" {
			a.printf("  look: %s\n", d.CompositeImageURL)
		}
	}
}

func (a *App) printChatMessage(m models.ChatMessage) {
	a.printf("%s: %s\n", m.Role, m.Content)
	for _, u := range m.ImageURLs {
		a.printf("  %s\n", u)
	}
}
