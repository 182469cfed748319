// Package scoring computes pick'em standings from saved picks and results.
package scoring

import (
	"sort"
	"strings"
)

// RoundPoints is what a correct pick is worth per round, before the seed
// bonus.
var RoundPoints = map[int]int{
	1: 1,
	2: 2,
	3: 3,
	4: 4,
	5: 6,
	6: 10,
}

// Game is the scoring view of a tournament game. Team and winner ids are 0
// when unknown.
type Game struct {
	ID       uint
	Round    int
	Team1ID  uint
	Team2ID  uint
	WinnerID uint
}

func (g Game) Played() bool { return g.WinnerID != 0 }

func (g Game) hasTeam(id uint) bool {
	return id != 0 && (g.Team1ID == id || g.Team2ID == id)
}

// Pick is a user's predicted winner for one game with that team's seed.
type Pick struct {
	GameID uint
	TeamID uint
	Seed   int
}

// Entry is one user's line on the scoreboard.
type Entry struct {
	UserID          uint        `json:"-"`
	Username        string      `json:"username"`
	CurrentPoints   int         `json:"current_points"`
	MaxPoints       int         `json:"max_points"`
	CorrectPicks    int         `json:"correct_picks"`
	RoundScores     map[int]int `json:"round_scores"`
	ChampionName    string      `json:"predicted_champion_name,omitempty"`
	FinalScoreGuess *int        `json:"predicted_final_score,omitempty"`
}

func pointsFor(round, seed int) int {
	return RoundPoints[round] + seed
}

// Score fills the point columns of e. A correct pick earns the round's
// points plus the picked team's seed. The maximum adds every unplayed game
// whose current teams still include the pick.
func Score(e Entry, games []Game, picks []Pick) Entry {
	byGame := make(map[uint]Pick, len(picks))
	for _, p := range picks {
		byGame[p.GameID] = p
	}

	e.CurrentPoints, e.MaxPoints, e.CorrectPicks = 0, 0, 0
	e.RoundScores = make(map[int]int)

	remaining := 0
	for _, g := range games {
		p, ok := byGame[g.ID]
		if !ok {
			continue
		}
		if g.Played() {
			if p.TeamID == g.WinnerID {
				pts := pointsFor(g.Round, p.Seed)
				e.CurrentPoints += pts
				e.RoundScores[g.Round] += pts
				e.CorrectPicks++
			}
			continue
		}
		if g.hasTeam(p.TeamID) {
			remaining += pointsFor(g.Round, p.Seed)
		}
	}
	e.MaxPoints = e.CurrentPoints + remaining
	return e
}

// Rank orders entries by current points, then max points, then name.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CurrentPoints != b.CurrentPoints {
			return a.CurrentPoints > b.CurrentPoints
		}
		if a.MaxPoints != b.MaxPoints {
			return a.MaxPoints > b.MaxPoints
		}
		return strings.ToLower(a.Username) < strings.ToLower(b.Username)
	})
}
