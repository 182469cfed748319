package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"PickEm/api/bracket"
	"PickEm/api/controllers"
	"PickEm/api/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGamesListsUpcomingWithPickers(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, sam := e.user("sam", false)
	_, alex := e.user("alex", false)
	g1 := e.game("East", 1, 1)

	require.True(t, submitPicks(t, e, map[string]interface{}{
		"user_picks": []bracket.Pick{{GameID: int(g1.ID), TeamID: int(e.team("Duke").ID)}},
	}, sam).Success)
	require.True(t, submitPicks(t, e, map[string]interface{}{
		"user_picks": []bracket.Pick{{GameID: int(g1.ID), TeamID: int(e.team("Mt St Mary's").ID)}},
	}, alex).Success)

	all := decode[[]controllers.UpcomingGameDTO](t, e.do(http.MethodGet, "/api/v1/games", nil, sam)).Response
	assert.Len(t, all, 32)

	w := e.do(http.MethodGet, "/api/v1/games?q=DUKE", nil, sam)
	requireStatus(t, w, http.StatusOK)
	games := decode[[]controllers.UpcomingGameDTO](t, w).Response
	require.Len(t, games, 1)
	assert.Equal(t, g1.ID, games[0].GameID)
	assert.Equal(t, "Duke", games[0].Team1.Name)
	assert.Equal(t, []string{"Sam"}, games[0].Team1Pickers)
	assert.Equal(t, []string{"Alex"}, games[0].Team2Pickers)
	assert.Nil(t, games[0].Live)

	none := decode[[]controllers.UpcomingGameDTO](t, e.do(http.MethodGet, "/api/v1/games?q=nobody", nil, sam)).Response
	assert.Empty(t, none)
}

func TestAdminRoutesNeedAdmin(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/v1/admin/games", nil, token).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/v1/admin/games", nil, "").Code)
}

func TestSetGameResult(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, admin := e.user("boss", true)
	g1, r2 := e.game("East", 1, 1), e.game("East", 2, 1)
	duke := e.team("Duke")

	listed := decode[[]controllers.GameDTO](t, e.do(http.MethodGet, "/api/v1/admin/games", nil, admin)).Response
	assert.Len(t, listed, 63)

	path := fmt.Sprintf("/api/v1/admin/games/%d/result", g1.ID)
	w := e.do(http.MethodPost, path, controllers.GameResultRequest{WinnerID: &duke.ID}, admin)
	requireStatus(t, w, http.StatusOK)
	res := decode[controllers.GameResultResponse](t, w).Response
	require.NotNil(t, res.Game.WinnerID)
	assert.Equal(t, duke.ID, *res.Game.WinnerID)
	assert.Equal(t, r2.ID, res.DownstreamGameID)

	next := e.game("East", 2, 1)
	require.NotNil(t, next.Team1ID)
	assert.Equal(t, duke.ID, *next.Team1ID)

	upcoming := decode[[]controllers.UpcomingGameDTO](t, e.do(http.MethodGet, "/api/v1/games", nil, admin)).Response
	assert.Len(t, upcoming, 31)

	houston := e.team("Houston")
	assert.Equal(t, http.StatusUnprocessableEntity,
		e.do(http.MethodPost, path, controllers.GameResultRequest{WinnerID: &houston.ID}, admin).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		e.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/games/%d/result", r2.ID), controllers.GameResultRequest{WinnerID: &duke.ID}, admin).Code)
	assert.Equal(t, http.StatusNotFound,
		e.do(http.MethodPost, "/api/v1/admin/games/9999/result", controllers.GameResultRequest{WinnerID: &duke.ID}, admin).Code)
	assert.Equal(t, http.StatusBadRequest,
		e.do(http.MethodPost, "/api/v1/admin/games/abc/result", controllers.GameResultRequest{}, admin).Code)

	// A null winner clears the result again.
	requireStatus(t, e.do(http.MethodPost, path, controllers.GameResultRequest{}, admin), http.StatusOK)
	assert.Nil(t, e.game("East", 2, 1).Team1ID)
}

func TestScoreboardRanksByPoints(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, admin := e.user("boss", true)
	_, sam := e.user("sam", false)
	_, alex := e.user("alex", false)
	g1 := e.game("East", 1, 1)
	duke := e.team("Duke")

	require.True(t, submitPicks(t, e, map[string]interface{}{
		"user_picks":  []bracket.Pick{{GameID: int(g1.ID), TeamID: int(duke.ID)}},
		"winner_pick": "Duke",
		"final_score": "141",
	}, sam).Success)
	require.True(t, submitPicks(t, e, map[string]interface{}{
		"user_picks": []bracket.Pick{{GameID: int(g1.ID), TeamID: int(e.team("Mt St Mary's").ID)}},
	}, alex).Success)

	requireStatus(t, e.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/games/%d/result", g1.ID),
		controllers.GameResultRequest{WinnerID: &duke.ID}, admin), http.StatusOK)

	w := e.do(http.MethodGet, "/api/v1/scoreboard", nil, sam)
	requireStatus(t, w, http.StatusOK)
	entries := decode[[]scoring.Entry](t, w).Response
	require.Len(t, entries, 3)

	top := entries[0]
	assert.Equal(t, "Sam", top.Username)
	assert.Equal(t, scoring.RoundPoints[1]+1, top.CurrentPoints)
	assert.Equal(t, 1, top.CorrectPicks)
	assert.Equal(t, "Duke", top.ChampionName)
	require.NotNil(t, top.FinalScoreGuess)
	assert.Equal(t, 141, *top.FinalScoreGuess)

	for _, entry := range entries[1:] {
		assert.Zero(t, entry.CurrentPoints)
	}
}

func TestGetRules(t *testing.T) {
	e := newTestEnv(t, openConfig())

	w := e.do(http.MethodGet, "/api/v1/rules", nil, "")
	requireStatus(t, w, http.StatusOK)
	rules := decode[controllers.RulesResponse](t, w).Response
	assert.Equal(t, 10, rules.RoundPoints[6])
	assert.True(t, rules.SeedBonus)
	assert.False(t, rules.Locked)
	assert.NotEmpty(t, rules.LockTime)
}

func TestGetTeams(t *testing.T) {
	e := newTestEnv(t, openConfig())

	teams := decode[[]controllers.TeamDTO](t, e.do(http.MethodGet, "/api/v1/teams", nil, "")).Response
	require.Len(t, teams, 64)
	assert.Equal(t, "Duke", teams[0].Name)
	assert.Empty(t, teams[0].Logo)
}

func TestLiveScoresDisabled(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)

	assert.Equal(t, http.StatusServiceUnavailable, e.do(http.MethodGet, "/api/v1/live-scores", nil, token).Code)
}

func TestMetricsExposeSelections(t *testing.T) {
	e := newTestEnv(t, openConfig())
	_, token := e.user("sam", false)

	requireStatus(t, e.do(http.MethodPost, "/api/v1/bracket/select", controllers.SelectRequest{
		GameID: int(e.game("East", 1, 1).ID), Position: position(bracket.Top),
	}, token), http.StatusOK)

	w := e.do(http.MethodGet, "/metrics", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `pickem_bracket_selections_total{stage="region"} 1`)
	assert.Contains(t, w.Body.String(), "pickem_picking_sessions 1")
}
