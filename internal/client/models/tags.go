package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Tags is the open-schema tag mapping of an outfit. Keys vary by category
// group; only the well-known keys below are interpreted by the client.
type Tags map[string]any

const (
	TagCategory      = "category"
	TagCategoryGroup = "categoryGroup"
)

// CategoryGroup is the coarse classification that decides which specific
// attributes apply to an item.
type CategoryGroup string

const (
	GroupUpperWear  CategoryGroup = "upperWear"
	GroupBottomWear CategoryGroup = "bottomWear"
	GroupOuterWear  CategoryGroup = "outerWear"
	GroupFootwear   CategoryGroup = "footwear"
	GroupOtherItems CategoryGroup = "otherItems"
)

// CategoryGroupOrder is the display order of the groups.
var CategoryGroupOrder = []CategoryGroup{GroupUpperWear, GroupBottomWear, GroupOuterWear, GroupFootwear, GroupOtherItems}

// Valid reports whether g is one of the fixed enumeration values.
func (g CategoryGroup) Valid() bool {
	return slices.Contains(CategoryGroupOrder, g)
}

var (
	ErrIncorrectTag     = errors.New("tag must be name=value")
	ErrUnknownGroup     = errors.New("unknown category group")
	ErrUnknownAttribute = errors.New("value not allowed for attribute")
)

// CategoryGroupInfo describes one group of the taxonomy.
type CategoryGroupInfo struct {
	Label      string
	Categories []string
}

var GenericAttributes = map[string][]string{
	"color": {
		"White", "Ivory", "Beige",
		"Light Gray", "Dark Gray", "Black",
		"Light Yellow", "Yellow", "Turmeric",
		"Orange", "Coral", "Red", "Pink", "Hot Pink",
		"Light Green", "Green", "Olive", "Dark Olive",
		"Teal", "Khaki", "Cyan", "Sky Blue",
		"Blue", "Navy", "Lavender", "Purple",
		"Burgundy", "Camel", "Brown", "Dark Brown",
		"Magenta",
		"ETC",
	},
	"season":   {"Spring", "Summer", "Fall", "Winter"},
	"material": {"Cotton", "Polyester", "Linen", "Denim", "Wool", "Nylon", "Leather", "Synthetic", "ETC"},
	"pattern":  {"Solid", "Striped", "Checked", "Graphic", "Printed", "Floral", "ETC"},
	"occasion": {"Daily", "Casual", "Formal", "Sports", "Party", "ETC"},
}

var SpecificAttributes = map[CategoryGroup]map[string][]string{
	GroupUpperWear: {
		"neckline": {
			"Round", "Scoop (U)", "Boat", "V-Neck", "Deep-V", "Square", "Surplice",
			"Shirt Collar", "Stand Collar", "Wide Collar", "Mockneck", "Turtleneck",
			"Strapless", "Thick Strap", "Thin Strap", "Sweetheart", "Off-Shoulder",
			"Asymmetric", "Halter", "Illusion", "Keyhole", "Suit Collar", "ETC",
		},
		"sleeveLength": {"Sleeveless", "Cap Sleeve", "Short Sleeve", "3/4 Sleeve", "Long Sleeve", "ETC"},
		"topLength":    {"Crop", "Waist", "Hip", "Knee", "ETC"},
	},
	GroupBottomWear: {
		"fit":    {"Slim", "Regular", "Relaxed", "Skinny", "Baggy", "ETC"},
		"length": {"Above Knee", "Knee Length", "Ankle", "Full", "ETC"},
		"rise":   {"Low Rise", "Mid Rise", "High Rise", "ETC"},
	},
	GroupOuterWear: {
		"thickness": {"Lightweight", "Midweight", "Heavy", "ETC"},
	},
	GroupFootwear: {
		"usageType": {"Casual", "Formal", "Sports", "Daily", "ETC"},
	},
	GroupOtherItems: {},
}

var CategoryGroups = map[CategoryGroup]CategoryGroupInfo{
	GroupUpperWear: {Label: "Upper Wear", Categories: []string{
		"T-Shirt", "Long Sleeve T-Shirt", "Sleeveless T-Shirt", "Polo Shirt", "Tank Top",
		"Cami Top", "Crop Top", "Blouse", "Shirt", "Casual Shirt", "Formal Shirt",
		"Sweatshirt", "Hoodie", "Sweater", "Sweater Vest", "Cardigan", "Sports Top",
		"Bodysuit", "Kurti", "ETC",
	}},
	GroupBottomWear: {Label: "Bottom Wear", Categories: []string{
		"Jeans", "Trousers", "Shorts", "Joggers", "Track Pants", "Chinos",
		"Cargo Pants", "Skirt", "Leggings", "Formal Pants", "ETC",
	}},
	GroupOuterWear: {Label: "Outer Wear", Categories: []string{
		"Jacket", "Denim Jacket", "Hooded Jacket", "Bomber Jacket", "Coat",
		"Blazer", "Overcoat", "Sweater Jacket", "ETC",
	}},
	GroupFootwear: {Label: "Footwear", Categories: []string{
		"Sneakers", "Running Shoes", "Loafers", "Sandals", "Slippers", "Boots",
		"Ethnic Footwear", "Formal Shoes", "ETC",
	}},
	GroupOtherItems: {Label: "Accessories & Others", Categories: []string{
		"Underwear", "Homewear", "Beachwear", "Co-ords", "Hair Accessories", "Eyewear",
		"Ties", "Scarves", "Mufflers", "Watches", "Gloves", "Belts", "Socks", "Tights",
		"Wallets & Purses", "Other Accessories", "Traditional Wear", "ETC",
	}},
}

// String returns the tag value under key when it is a string.
func (t Tags) String(key string) string {
	s, _ := t[key].(string)
	return s
}

// Group returns the categoryGroup tag, or "" when absent.
func (t Tags) Group() CategoryGroup {
	return CategoryGroup(t.String(TagCategoryGroup))
}

// Clone returns a shallow copy of t.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	return maps.Clone(t)
}

// Keys returns the tag keys sorted alphabetically.
func (t Tags) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Validate checks the well-known keys against the taxonomy. categoryGroup
// must be one of the enumeration; category and attribute values are checked
// only when they are strings with a known option list. Unknown keys pass.
func (t Tags) Validate() error {
	raw, present := t[TagCategoryGroup]
	if !present {
		return nil
	}
	s, ok := raw.(string)
	group := CategoryGroup(s)
	if !ok || !group.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownGroup, raw)
	}

	if category := t.String(TagCategory); category != "" {
		if !slices.Contains(CategoryGroups[group].Categories, category) {
			return fmt.Errorf("%w: %s=%s", ErrUnknownAttribute, TagCategory, category)
		}
	}

	for key, value := range t {
		s, ok := value.(string)
		if !ok {
			continue
		}
		options, known := GenericAttributes[key]
		if !known {
			options, known = SpecificAttributes[group][key]
		}
		if known && !slices.Contains(options, s) {
			return fmt.Errorf("%w: %s=%s", ErrUnknownAttribute, key, s)
		}
	}
	return nil
}

// MergeTags overlays edits on a copy of original. An empty string value
// removes the key. The result is the full mapping to send with an update.
func MergeTags(original, edits Tags) Tags {
	merged := original.Clone()
	if merged == nil {
		merged = Tags{}
	}
	for k, v := range edits {
		if s, isString := v.(string); isString && s == "" {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}

// TagsFromPairs parses "name=value" items as entered on the command line.
func TagsFromPairs(pairs []string) (Tags, error) {
	tags := make(Tags, len(pairs))
	for _, item := range pairs {
		name, value, ok := strings.Cut(item, "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || strings.Contains(value, "=") {
			return nil, ErrIncorrectTag
		}
		tags[name] = value
	}
	return tags, nil
}

// GroupByCategory buckets outfits by category group, preserving input order
// within a group. Items with a missing or unknown group land in otherItems.
// Every group is present in the result, possibly empty.
func GroupByCategory(outfits []Outfit) map[CategoryGroup][]Outfit {
	groups := make(map[CategoryGroup][]Outfit, len(CategoryGroupOrder))
	for _, g := range CategoryGroupOrder {
		groups[g] = []Outfit{}
	}
	for _, o := range outfits {
		g := o.Tags.Group()
		if !g.Valid() {
			g = GroupOtherItems
		}
		groups[g] = append(groups[g], o)
	}
	return groups
}
