package services

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

// Section is the active dashboard view.
type Section string

const (
	SectionToday    Section = "today"
	SectionWardrobe Section = "wardrobe"
	SectionDesign   Section = "design"
	SectionWeek     Section = "week"
	SectionChat     Section = "chat"
	SectionAccount  Section = "account"
)

// Sections lists every section in menu order.
var Sections = []Section{SectionToday, SectionWardrobe, SectionDesign, SectionWeek, SectionChat, SectionAccount}

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// Conditions is the view state stores gate their work on. The Dashboard
// implements it.
type Conditions interface {
	Identity() models.Identity
	Section() Section
	Temperature() float64
}

// Navigator performs the redirects stores ask for.
type Navigator interface {
	// ToSignIn sends the user to the sign-in view. reason is "" or
	// common.SessionExpiredReason.
	ToSignIn(ctx context.Context, reason string)
}

// OutfitResolver resolves outfit references against the inventory.
type OutfitResolver interface {
	Find(id string) (models.Outfit, bool)
	ForceRefresh(ctx context.Context)
}
