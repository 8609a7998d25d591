package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedDays_NumericOrder(t *testing.T) {
	p := BackendWeeklyPlan{DailyPlans: map[string]BackendDailyPlan{
		"day10": {Day: "ten"},
		"day2":  {Day: "two"},
		"extra": {Day: "extra"},
		"day1":  {Day: "one"},
	}}

	var got []string
	for _, d := range p.OrderedDays() {
		got = append(got, d.Day)
	}
	require.Equal(t, []string{"one", "two", "ten", "extra"}, got)
}

func TestLatestPlan(t *testing.T) {
	_, ok := LatestPlan(nil)
	require.False(t, ok)

	latest, ok := LatestPlan([]BackendWeeklyPlan{
		{PlanID: "a", CreatedAt: "2026-10-01T08:00:00Z"},
		{PlanID: "b", CreatedAt: "2026-10-13T08:00:00Z"},
		{PlanID: "c", CreatedAt: "2026-10-05T08:00:00Z"},
	})
	require.True(t, ok)
	require.Equal(t, "b", latest.PlanID)
}

func TestDayLabels(t *testing.T) {
	require.Equal(t, []string{"Today", "Tomorrow", "Day After Tomorrow"}, DayLabels(LabelsRelative, 3))
	require.Equal(t, "In 4 days", DayLabels(LabelsRelative, 5)[4])

	week := DayLabels(LabelsWeekdays, 8)
	require.Equal(t, "Monday", week[0])
	require.Equal(t, "Sunday", week[6])
	require.Equal(t, "Monday", week[7])
}

func TestIdentity(t *testing.T) {
	require.True(t, Identity{}.IsZero())
	require.Equal(t, "alice", Identity{UserID: "u1", Username: "alice", Email: "a@x"}.DisplayName())
	require.Equal(t, "a@x", Identity{UserID: "u1", Email: "a@x"}.DisplayName())
	require.Equal(t, "u1", Identity{UserID: "u1"}.DisplayName())
}
