package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// PlanDay is one entry of a weekly plan. Outfits always lists the day's
// outfit references; Outfit is the resolved pick when available.
type PlanDay struct {
	Day               string
	Date              time.Time
	Outfits           []OutfitRef
	Outfit            *Outfit
	CompositeImageURL string
}

// WeeklyPlan is an ordered sequence of days over the planning horizon.
type WeeklyPlan struct {
	Days []PlanDay
}

// Len returns the number of planned days.
func (p WeeklyPlan) Len() int {
	return len(p.Days)
}

// Progress reports how many units of a multi-step operation completed.
type Progress struct {
	Current int
	Total   int
}

// BackendDailyPlan is one day of a plan produced by the backend planner.
type BackendDailyPlan struct {
	Date      string   `json:"date"`
	Day       string   `json:"day"`
	ImageURL  string   `json:"image_url,omitempty"`
	OutfitIDs []string `json:"outfit_ids"`
}

// BackendWeeklyPlan is a stored plan; DailyPlans is keyed day1, day2, ...
type BackendWeeklyPlan struct {
	PlanID     string                      `json:"plan_id"`
	WardrobeID string                      `json:"wardrobe_id"`
	CreatedAt  string                      `json:"created_at"`
	WeekStart  string                      `json:"week_start"`
	DailyPlans map[string]BackendDailyPlan `json:"daily_plans"`
}

// OrderedDays returns the daily plans sorted by their numeric key suffix
// (day1 before day2 before day10). Keys without a number sort last, by name.
func (p BackendWeeklyPlan) OrderedDays() []BackendDailyPlan {
	keys := make([]string, 0, len(p.DailyPlans))
	for k := range p.DailyPlans {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iok := dayNumber(keys[i])
		nj, jok := dayNumber(keys[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})

	days := make([]BackendDailyPlan, 0, len(keys))
	for _, k := range keys {
		days = append(days, p.DailyPlans[k])
	}
	return days
}

func dayNumber(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "day"))
	return n, err == nil
}

// LatestPlan picks the plan with the greatest CreatedAt (RFC 3339 strings
// compare chronologically). It returns false for an empty list.
func LatestPlan(plans []BackendWeeklyPlan) (BackendWeeklyPlan, bool) {
	if len(plans) == 0 {
		return BackendWeeklyPlan{}, false
	}
	latest := plans[0]
	for _, p := range plans[1:] {
		if p.CreatedAt > latest.CreatedAt {
			latest = p
		}
	}
	return latest, true
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Label styles for DayLabels.
const (
	LabelsWeekdays = "weekdays"
	LabelsRelative = "relative"
)

// DayLabels names n planning days. "weekdays" cycles Monday..Sunday;
// "relative" yields Today, Tomorrow, Day After Tomorrow, then "In N days".
func DayLabels(style string, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		if style == LabelsWeekdays {
			labels[i] = weekdays[i%len(weekdays)]
			continue
		}
		switch i {
		case 0:
			labels[i] = "Today"
		case 1:
			labels[i] = "Tomorrow"
		case 2:
			labels[i] = "Day After Tomorrow"
		default:
			labels[i] = "In " + strconv.Itoa(i) + " days"
		}
	}
	return labels
}
