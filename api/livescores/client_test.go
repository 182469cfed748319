package livescores

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"games":[{"game":{
	"gameID":"6351",
	"startDate":"03-20-2026",
	"startTime":"12:15PM ET",
	"currentPeriod":"2nd",
	"contestClock":"04:12",
	"home":{"score":"61","names":{"short":"Duke"}},
	"away":{"score":"55","names":{"short":"Baylor"}}
}}]}`

func TestCurrentScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, scoreboardPath, r.URL.Path)
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	games, err := (&Client{BaseURL: srv.URL}).CurrentScores(context.Background())
	require.NoError(t, err)
	require.Contains(t, games, "6351")

	g := games["6351"]
	assert.Equal(t, "Duke", g.Team1Name)
	assert.Equal(t, "61", g.Team1Score)
	assert.Equal(t, "Baylor", g.Team2Name)
	assert.Equal(t, "2nd", g.Period)
	require.NotNil(t, g.GameTime)
	assert.Equal(t, time.Date(2026, 3, 20, 17, 15, 0, 0, time.UTC), g.GameTime.UTC())
}

func TestCurrentScoresBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := (&Client{BaseURL: srv.URL}).CurrentScores(context.Background())
	assert.Error(t, err)
}

func TestParseStartUnknownFormat(t *testing.T) {
	assert.Nil(t, parseStart("TBA", ""))
}
