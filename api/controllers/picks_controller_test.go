package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"PickEm/api/bracket"
	"PickEm/api/controllers"
	"PickEm/api/models"
	"PickEm/api/submit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitPicks posts a raw submission. The endpoint answers 200 whether or
// not the picks were accepted.
func submitPicks(t *testing.T, e *testEnv, body interface{}, token string) submit.Response {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/submit-picks", body, token)
	requireStatus(t, w, http.StatusOK)
	var out submit.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSubmitPicksStoresAndReplays(t *testing.T) {
	e := newTestEnv(t, openConfig())
	u, token := e.user("sam", false)
	g1, r2, r3 := e.game("East", 1, 1), e.game("East", 2, 1), e.game("East", 3, 1)
	duke := e.team("Duke")

	before := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response

	out := submitPicks(t, e, map[string]interface{}{
		"user_picks": []bracket.Pick{
			{GameID: int(g1.ID), TeamID: int(duke.ID)},
			{GameID: int(r2.ID), TeamID: int(duke.ID)},
		},
		"winner_pick": "Duke",
		"final_score": 150,
	}, token)
	assert.True(t, out.Success)
	assert.Equal(t, "Picks saved!", out.Message)

	saved, err := (&models.User{}).FindUserByID(e.db, u.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.WinnerID)
	assert.Equal(t, duke.ID, *saved.WinnerID)
	assert.Equal(t, 150, *saved.FinalScore)
	assert.EqualValues(t, 2, e.pickCount(u.ID))

	// The open session is dropped and rebuilt from the stored picks.
	after := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	assert.NotEqual(t, before.SessionID, after.SessionID)
	assert.Equal(t, "150", after.FinalScore)
	assert.Zero(t, after.Skipped)
	assert.True(t, seedByID(after.Games, g1.ID).Teams[bracket.Top].Active)
	assert.Equal(t, "Duke", seedByID(after.Games, r2.ID).Teams[bracket.Top].Name)
	assert.Equal(t, "Duke", seedByID(after.Games, r3.ID).Teams[bracket.Top].Name)
}

func TestSubmitPicksSkipsUnreachableSavedPicks(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)
	g1, r2 := e.game("East", 1, 1), e.game("East", 2, 1)

	// Duke loses the opener yet is picked again in round two.
	out := submitPicks(t, e, map[string]interface{}{
		"user_picks": []bracket.Pick{
			{GameID: int(g1.ID), TeamID: int(e.team("Mt St Mary's").ID)},
			{GameID: int(r2.ID), TeamID: int(e.team("Duke").ID)},
		},
	}, token)
	require.True(t, out.Success)

	state := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	assert.Equal(t, 1, state.Skipped)
	assert.Equal(t, "Mt St Mary's", seedByID(state.Games, r2.ID).Teams[bracket.Top].Name)
}

func TestSubmitPicksDeclines(t *testing.T) {
	e := newTestEnv(t, openConfig())
	u, token := e.user("sam", false)
	g1 := e.game("East", 1, 1)
	duke := e.team("Duke")
	pick := []bracket.Pick{{GameID: int(g1.ID), TeamID: int(duke.ID)}}

	cases := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{"non-numeric final score", map[string]interface{}{"user_picks": pick, "final_score": "abc"}, "Final score must be a number"},
		{"unknown champion", map[string]interface{}{"user_picks": pick, "winner_pick": "Gonzaga Bulldogs"}, "Unknown champion pick"},
		{"unknown game", map[string]interface{}{"user_picks": []bracket.Pick{{GameID: 9999, TeamID: int(duke.ID)}}}, "Unknown game 9999"},
		{"unknown team", map[string]interface{}{"user_picks": []bracket.Pick{{GameID: int(g1.ID), TeamID: 9999}}}, "Unknown team 9999"},
		{"duplicate game", map[string]interface{}{"user_picks": append(pick, pick...)}, fmt.Sprintf("Duplicate pick for game %d", g1.ID)},
		{"zero ids", map[string]interface{}{"user_picks": []bracket.Pick{{}}}, "Invalid submission"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := submitPicks(t, e, tc.body, token)
			assert.False(t, out.Success)
			assert.Equal(t, tc.want, out.Message)
		})
	}
	assert.Zero(t, e.pickCount(u.ID))

	w := e.do(http.MethodPost, "/api/v1/submit-picks", []int{1, 2}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitPicksWhenLocked(t *testing.T) {
	e := newTestEnv(t, lockedConfig())
	u, token := e.user("sam", false)

	out := submitPicks(t, e, map[string]interface{}{
		"user_picks": []bracket.Pick{{GameID: int(e.game("East", 1, 1).ID), TeamID: int(e.team("Duke").ID)}},
	}, token)
	assert.False(t, out.Success)
	assert.Equal(t, "Picks are locked", out.Message)
	assert.Zero(t, e.pickCount(u.ID))
}
