package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wardrobe/internal/common"
)

func TestToday(t *testing.T) {
	a := newTestApp(t, "")
	uploaded(t, a, "black_jeans.png")
	before := a.srv.Calls("POST", "/outfit/suggest-outfit")

	require.NoError(t, a.Today(context.Background(), ""))
	assert.Contains(t, a.out.String(), "Suggested for 22°C")
	require.NoError(t, a.Today(context.Background(), ""))
	assert.Equal(t, before+1, a.srv.Calls("POST", "/outfit/suggest-outfit"), "shown suggestion is reused")

	a.out.Reset()
	require.NoError(t, a.Today(context.Background(), "casual wear"))
	assert.Contains(t, a.out.String(), "(casual wear)")
	assert.Equal(t, before+2, a.srv.Calls("POST", "/outfit/suggest-outfit"))
}

func TestToday_EmptyWardrobe(t *testing.T) {
	a := newTestApp(t, "")
	a.signedIn(t)

	err := a.Today(context.Background(), "")
	require.ErrorIs(t, err, common.ErrRequestFailed)
	assert.Contains(t, userMessage(err), "No outfits found in wardrobe")
}

func TestSetTemperature(t *testing.T) {
	a := newTestApp(t, "")

	require.NoError(t, a.SetTemperature(context.Background(), "-3.5"))
	assert.Equal(t, -3.5, a.dash.Temperature())
	require.ErrorIs(t, a.SetTemperature(context.Background(), "warm"), common.ErrValidation)
}

func TestPlan(t *testing.T) {
	a := newTestApp(t, "")
	uploaded(t, a, "black_jeans.png")

	require.NoError(t, a.Plan(context.Background()))
	out := a.out.String()
	assert.Contains(t, out, "Planning... 3/3")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Day After Tomorrow")
	assert.Equal(t, 3, a.dash.Planner.Plan().Len())

	a.out.Reset()
	require.NoError(t, a.Week(context.Background()))
	assert.Contains(t, a.out.String(), "Tomorrow")
}

func TestPlan_AllDaysFailedPrintsEmptyPlan(t *testing.T) {
	a := newTestApp(t, "")
	uploaded(t, a, "black_jeans.png")

	a.srv.Fail(http.MethodPost, "/outfit/suggest-outfit", http.StatusInternalServerError, "Suggestion service unavailable")
	require.NoError(t, a.Plan(context.Background()))
	assert.Contains(t, a.out.String(), "No plan yet")
}

func TestWeek_Empty(t *testing.T) {
	a := newTestApp(t, "")
	a.signedIn(t)

	require.NoError(t, a.Week(context.Background()))
	assert.Contains(t, a.out.String(), "No plan yet")
}

func TestChat(t *testing.T) {
	a := newTestApp(t, "")
	uploaded(t, a, "black_jeans.png")

	require.NoError(t, a.Chat(context.Background(), "what should I wear?"))
	assert.Contains(t, a.out.String(), "ai: ")
	assert.Len(t, a.dash.Chat.Messages(), 3)

	require.ErrorIs(t, a.Chat(context.Background(), "  "), common.ErrValidation)
}
