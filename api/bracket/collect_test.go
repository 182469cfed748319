package bracket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPicksEmptyBracket(t *testing.T) {
	sub := newTestBracket(t).CollectPicks("")

	assert.NotNil(t, sub.Picks)
	assert.Empty(t, sub.Picks)
	assert.Nil(t, sub.ChampionPick)

	raw, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_picks":[],"winner_pick":null,"final_score":""}`, string(raw))
}

func TestCollectPicksHasOnePickPerDecidedGame(t *testing.T) {
	b := newTestBracket(t)
	for i := 0; i < 8; i++ {
		pick(t, b, "south-1", i, Position(i%2))
	}
	advanceTop(t, b, "south-2")

	sub := b.CollectPicks("")
	require.Len(t, sub.Picks, 9)

	seen := map[int]bool{}
	for _, p := range sub.Picks {
		assert.False(t, seen[p.GameID], "duplicate pick for game %d", p.GameID)
		seen[p.GameID] = true

		g, ok := b.Game(p.GameID)
		require.True(t, ok)
		w, ok := g.Winner()
		require.True(t, ok)
		assert.Equal(t, w.TeamID, p.TeamID)
	}
}

func TestCollectPicksIsASnapshot(t *testing.T) {
	b := newTestBracket(t)
	advanceTop(t, b, "east-1", "east-2", "east-3", "east-4", "final-four-right")
	pick(t, b, ChampionshipID, 0, Bottom)

	sub := b.CollectPicks("")
	require.NotNil(t, sub.ChampionPick)

	pick(t, b, "east-1", 0, Bottom)

	assert.Equal(t, "East 1-0", *sub.ChampionPick)
	assert.Len(t, sub.Picks, 6)
}
