package controllers_test

import (
	"net/http"
	"testing"

	"PickEm/api/bracket"
	"PickEm/api/controllers"
	"PickEm/api/models"
	"PickEm/api/submit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBracketStartsFromSeededTeams(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)

	w := e.do(http.MethodGet, "/api/v1/bracket", nil, token)
	requireStatus(t, w, http.StatusOK)
	body := decode[controllers.BracketResponse](t, w)

	assert.NotEmpty(t, body.Response.SessionID)
	assert.False(t, body.Response.Locked)
	assert.Nil(t, body.Response.Champion)
	require.Len(t, body.Response.Games, 64)
	assert.Equal(t, bracket.StageWinner, body.Response.Games[63].Stage)

	opener := seedByID(body.Response.Games, e.game("East", 1, 1).ID)
	assert.Equal(t, "Duke", opener.Teams[bracket.Top].Name)
	assert.Equal(t, 1, opener.Teams[bracket.Top].Seed)
	assert.Equal(t, "Mt St Mary's", opener.Teams[bracket.Bottom].Name)

	second := seedByID(body.Response.Games, e.game("East", 2, 1).ID)
	assert.True(t, second.Teams[bracket.Top].Empty())
	assert.True(t, second.Teams[bracket.Bottom].Empty())

	again := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token))
	assert.Equal(t, body.Response.SessionID, again.Response.SessionID)
}

func TestSelectWinnerAdvancesAndClearsDependents(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)
	g1, g2 := e.game("East", 1, 1), e.game("East", 1, 2)
	r2, r3 := e.game("East", 2, 1), e.game("East", 3, 1)
	duke := e.team("Duke")

	sess := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response.SessionID

	w := e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		SessionID: sess, GameID: int(g1.ID), Position: position(bracket.Top),
	}, token)
	requireStatus(t, w, http.StatusOK)
	sel := decode[controllers.SelectResponse](t, w).Response
	assert.True(t, sel.Result.Applied)
	require.NotNil(t, sel.Result.Destination)
	assert.Equal(t, bracket.Top, sel.Result.Destination.Position)
	assert.Equal(t, "Duke", seedByID(sel.Bracket.Games, r2.ID).Teams[bracket.Top].Name)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(g2.ID), Position: position(bracket.Top),
	}, token)
	requireStatus(t, w, http.StatusOK)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(r2.ID), TeamID: intPtr(int(duke.ID)),
	}, token)
	requireStatus(t, w, http.StatusOK)
	sel = decode[controllers.SelectResponse](t, w).Response
	assert.Equal(t, "Miss. St.", seedByID(sel.Bracket.Games, r2.ID).Teams[bracket.Bottom].Name)
	assert.Equal(t, "Duke", seedByID(sel.Bracket.Games, r3.ID).Teams[bracket.Top].Name)

	// Duke losing the opener drops the team from every later round.
	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(g1.ID), Position: position(bracket.Bottom),
	}, token)
	requireStatus(t, w, http.StatusOK)
	sel = decode[controllers.SelectResponse](t, w).Response
	assert.Len(t, sel.Result.Cleared, 2)

	round2 := seedByID(sel.Bracket.Games, r2.ID)
	assert.Equal(t, "Mt St Mary's", round2.Teams[bracket.Top].Name)
	assert.False(t, round2.Teams[bracket.Top].Active)
	assert.False(t, round2.Teams[bracket.Bottom].Active)
	assert.True(t, seedByID(sel.Bracket.Games, r3.ID).Teams[bracket.Top].Empty())
}

func TestSelectWinnerRejectsBadRequests(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)
	g1 := e.game("East", 1, 1)

	w := e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{GameID: int(g1.ID)}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: 9999, Position: position(bracket.Top),
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(g1.ID), TeamID: intPtr(int(e.team("Houston").ID)),
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		SessionID: "stale", GameID: int(g1.ID), Position: position(bracket.Top),
	}, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", map[string]interface{}{
		"game_id": g1.ID, "position": "left",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(g1.ID), Position: position(bracket.Top),
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitBracketSavesPicks(t *testing.T) {
	e := newTestEnv(t, openConfig())
	u, token := e.user("sam", false)
	g1, g2 := e.game("East", 1, 1), e.game("East", 1, 2)

	for _, sel := range []controllers.SelectRequest{
		{GameID: int(g1.ID), Position: position(bracket.Top)},
		{GameID: int(g2.ID), Position: position(bracket.Bottom)},
	} {
		requireStatus(t, e.do(http.MethodPost, "/api/v1/bracket/select", sel, token), http.StatusOK)
	}

	w := e.do(http.MethodPost, "/api/v1/bracket/submit", controllers.SubmitBracketRequest{FinalScore: strPtr("abc")}, token)
	requireStatus(t, w, http.StatusUnprocessableEntity)
	out := decode[submit.Outcome](t, w).Response
	assert.False(t, out.Success)
	assert.Equal(t, "Final score must be a number", out.Message)
	assert.Zero(t, e.pickCount(u.ID))

	w = e.do(http.MethodPost, "/api/v1/bracket/submit", controllers.SubmitBracketRequest{FinalScore: strPtr(" 145 ")}, token)
	requireStatus(t, w, http.StatusOK)
	out = decode[submit.Outcome](t, w).Response
	assert.True(t, out.Success)
	assert.Equal(t, "Picks saved!", out.Message)

	assert.EqualValues(t, 2, e.pickCount(u.ID))
	saved, err := (&models.User{}).FindUserByID(e.db, u.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.FinalScore)
	assert.Equal(t, 145, *saved.FinalScore)
	assert.Nil(t, saved.WinnerID)

	state := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	assert.Equal(t, "145", state.FinalScore)
	assert.Equal(t, "Picks saved!", state.Notice)
}

func TestPickingThroughToChampion(t *testing.T) {
	e := newTestEnv(t, openConfig())
	u, token := e.user("sam", false)

	start := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	var last controllers.BracketResponse
	for _, g := range start.Games {
		if g.Stage == bracket.StageWinner {
			continue
		}
		w := e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
			GameID: g.GameID, Position: position(bracket.Top),
		}, token)
		requireStatus(t, w, http.StatusOK)
		last = decode[controllers.SelectResponse](t, w).Response.Bracket
	}

	require.NotNil(t, last.Champion)
	assert.Equal(t, "Auburn", last.Champion.Name)

	w := e.do(http.MethodPost, "/api/v1/bracket/submit", controllers.SubmitBracketRequest{FinalScore: strPtr("150")}, token)
	requireStatus(t, w, http.StatusOK)

	assert.EqualValues(t, 63, e.pickCount(u.ID))
	saved, err := (&models.User{}).FindUserByID(e.db, u.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.Winner)
	assert.Equal(t, "Auburn", saved.Winner.Name)
}

func TestResetBracketClearsSavedPicks(t *testing.T) {
	e := newTestEnv(t, openConfig())
	u, token := e.user("sam", false)
	g1 := e.game("East", 1, 1)

	first := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	requireStatus(t, e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(g1.ID), Position: position(bracket.Top),
	}, token), http.StatusOK)
	requireStatus(t, e.do(http.MethodPost, "/api/v1/bracket/submit", controllers.SubmitBracketRequest{FinalScore: strPtr("120")}, token), http.StatusOK)
	require.EqualValues(t, 1, e.pickCount(u.ID))

	requireStatus(t, e.do(http.MethodPost, "/api/v1/bracket/reset", nil, token), http.StatusOK)
	assert.Zero(t, e.pickCount(u.ID))
	saved, err := (&models.User{}).FindUserByID(e.db, u.ID)
	require.NoError(t, err)
	assert.Nil(t, saved.FinalScore)

	fresh := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	assert.NotEqual(t, first.SessionID, fresh.SessionID)
	assert.Empty(t, fresh.FinalScore)
	opener := seedByID(fresh.Games, g1.ID)
	assert.False(t, opener.Teams[bracket.Top].Active)
}

func TestLockedBracketRefusesChanges(t *testing.T) {
	e := newTestEnv(t, lockedConfig())
	u, token := e.user("sam", false)
	g1 := e.game("East", 1, 1)

	state := decode[controllers.BracketResponse](t, e.do(http.MethodGet, "/api/v1/bracket", nil, token)).Response
	assert.True(t, state.Locked)

	w := e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(g1.ID), Position: position(bracket.Top),
	}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/api/v1/bracket/reset", nil, token).Code)

	w = e.do(http.MethodPost, "/api/v1/bracket/submit", controllers.SubmitBracketRequest{FinalScore: strPtr("140")}, token)
	requireStatus(t, w, http.StatusUnprocessableEntity)
	assert.Equal(t, "Picks are locked", decode[submit.Outcome](t, w).Response.Message)
	assert.Zero(t, e.pickCount(u.ID))
}
