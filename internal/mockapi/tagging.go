package mockapi

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// longestMatch returns the option whose normalized form is the longest
// substring of name, so "denim_jacket" tags as Denim Jacket, not Jacket.
func longestMatch(name string, options []string) string {
	best := ""
	for _, opt := range options {
		if opt == "ETC" {
			continue
		}
		n := normalize(opt)
		if n != "" && strings.Contains(name, n) && len(n) > len(normalize(best)) {
			best = opt
		}
	}
	return best
}

// tagFromFileName stands in for the backend's image tagger: it recognizes
// taxonomy categories and colors in the file name.
func tagFromFileName(fileName string) models.Tags {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	name := normalize(base)

	tags := models.Tags{}

	var (
		bestGroup    models.CategoryGroup
		bestCategory string
	)
	for _, g := range models.CategoryGroupOrder {
		c := longestMatch(name, models.CategoryGroups[g].Categories)
		if len(normalize(c)) > len(normalize(bestCategory)) {
			bestGroup, bestCategory = g, c
		}
	}
	if bestCategory == "" {
		bestGroup, bestCategory = models.GroupOtherItems, "ETC"
	}
	tags[models.TagCategoryGroup] = string(bestGroup)
	tags[models.TagCategory] = bestCategory

	if color := longestMatch(name, models.GenericAttributes["color"]); color != "" {
		tags["color"] = color
	}
	return tags
}
