package picker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"PickEm/api/bracket"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClicks(t *testing.T) {
	clicks, err := ParseClicks(strings.NewReader("# opening round\n1 top\n\n2 bottom\n3 1\n"))
	require.NoError(t, err)
	require.Len(t, clicks, 3)
	assert.Equal(t, Click{Line: 2, GameID: 1, Position: bracket.Top}, clicks[0])
	assert.Equal(t, bracket.Bottom, clicks[1].Position)
	assert.Equal(t, bracket.Bottom, clicks[2].Position)
}

func TestParseClicksErrors(t *testing.T) {
	for _, input := range []string{"1", "x top", "1 middle", "1 top extra"} {
		_, err := ParseClicks(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrBadClick, input)
	}
}

func skeleton(t *testing.T) *bracket.Bracket {
	t.Helper()
	seeds, err := bracket.Skeleton(bracket.DefaultLayout(), 8)
	require.NoError(t, err)
	for i := range seeds {
		if seeds[i].Round == 1 {
			seeds[i].Teams[bracket.Top] = bracket.TeamRef{Name: "T" + string(rune('A'+i%26)), TeamID: 100 + i}
			seeds[i].Teams[bracket.Bottom] = bracket.TeamRef{Name: "B" + string(rune('A'+i%26)), TeamID: 200 + i}
		}
	}
	b, err := bracket.New(bracket.DefaultLayout(), seeds)
	require.NoError(t, err)
	return b
}

func TestPlay(t *testing.T) {
	b := skeleton(t)

	applied, err := Play(b, []Click{{Line: 1, GameID: 1, Position: bracket.Top}, {Line: 2, GameID: 2, Position: bracket.Bottom}})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Len(t, b.CollectPicks("").Picks, 2)

	_, err = Play(b, []Click{{Line: 7, GameID: 9999, Position: bracket.Top}})
	assert.ErrorIs(t, err, bracket.ErrUnknownGame)
	assert.Contains(t, err.Error(), "line 7")
}

func TestClientFetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := skeleton(t)

	r := gin.New()
	r.GET(BracketPath, func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer tok" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "response": gin.H{
			"session_id": "abc",
			"layout":     b.Layout,
			"games":      b.Seeds(),
		}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	state, err := (&Client{BaseURL: srv.URL, Token: "tok"}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", state.SessionID)

	restored, err := state.Build()
	require.NoError(t, err)
	assert.Equal(t, b.Seeds(), restored.Seeds())

	_, err = (&Client{BaseURL: srv.URL}).Fetch(context.Background())
	assert.Error(t, err)
}
