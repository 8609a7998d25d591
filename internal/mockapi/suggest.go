package mockapi

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

// coldBelow is the temperature under which an outer layer is added.
const coldBelow = 15.0

func wornGroups(temperature *float64) []models.CategoryGroup {
	groups := []models.CategoryGroup{models.GroupUpperWear, models.GroupBottomWear, models.GroupFootwear}
	if temperature != nil && *temperature < coldBelow {
		groups = append(groups, models.GroupOuterWear)
	}
	return groups
}

// score counts query words found in the outfit's tag values.
func score(o models.Outfit, words []string) int {
	var b strings.Builder
	for _, v := range o.Tags {
		if s, ok := v.(string); ok {
			b.WriteString(strings.ToLower(s))
			b.WriteByte(' ')
		}
	}
	values := b.String()

	n := 0
	for _, w := range words {
		if strings.Contains(values, w) {
			n++
		}
	}
	return n
}

// suggest picks the best scoring outfit of each worn group. Without any
// categorized outfit it falls back to the first item of the wardrobe.
func suggest(outfits []models.Outfit, temperature *float64, query string) []models.Outfit {
	words := strings.Fields(strings.ToLower(query))
	grouped := models.GroupByCategory(outfits)

	picked := make([]models.Outfit, 0, 4)
	for _, g := range wornGroups(temperature) {
		best, bestScore := -1, -1
		for i, o := range grouped[g] {
			if sc := score(o, words); sc > bestScore {
				best, bestScore = i, sc
			}
		}
		if best >= 0 {
			picked = append(picked, grouped[g][best])
		}
	}
	if len(picked) == 0 {
		picked = append(picked, outfits[0])
	}
	return picked
}

// planDay rotates through each worn group so consecutive days differ.
func planDay(outfits []models.Outfit, day int) []models.Outfit {
	grouped := models.GroupByCategory(outfits)

	picked := make([]models.Outfit, 0, 3)
	for _, g := range wornGroups(nil) {
		if items := grouped[g]; len(items) > 0 {
			picked = append(picked, items[day%len(items)])
		}
	}
	if len(picked) == 0 {
		picked = append(picked, outfits[day%len(outfits)])
	}
	return picked
}

func chatReply(outfits []models.Outfit, message string, temperature *float64) (string, []string) {
	if len(outfits) == 0 {
		return "Your wardrobe is empty. Upload a few items and I can start suggesting outfits.", nil
	}

	picked := suggest(outfits, temperature, message)
	names := make([]string, 0, len(picked))
	images := make([]string, 0, len(picked))
	for _, o := range picked {
		name := o.Tags.String(models.TagCategory)
		if c := o.Tags.String("color"); c != "" {
			name = c + " " + name
		}
		names = append(names, strings.TrimSpace(name))
		images = append(images, o.ImageURL)
	}

	reply := "How about pairing " + strings.Join(names, ", ") + "?"
	if temperature != nil {
		reply = fmt.Sprintf("At %.0f°C, how about pairing %s?", *temperature, strings.Join(names, ", "))
	}
	return reply, images
}
