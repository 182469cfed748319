package bracket

type Pick struct {
	GameID int `json:"game_id"`
	TeamID int `json:"team_id"`
}

// Submission is the payload sent when a user saves their bracket.
type Submission struct {
	Picks        []Pick  `json:"user_picks"`
	ChampionPick *string `json:"winner_pick"`
	FinalScore   string  `json:"final_score"`
}

// CollectPicks snapshots the declared winners of every game and the winner
// slot. The result shares nothing with the bracket.
func (b *Bracket) CollectPicks(finalScore string) Submission {
	sub := Submission{Picks: []Pick{}, FinalScore: finalScore}
	for _, g := range b.PlayOrder() {
		if w, ok := g.Winner(); ok {
			sub.Picks = append(sub.Picks, Pick{GameID: g.ID, TeamID: w.TeamID})
		}
	}
	if champ, ok := b.Champion(); ok {
		name := champ.Name
		sub.ChampionPick = &name
	}
	return sub
}
