package controllers

import (
	"fmt"
	"log"
	"time"

	"PickEm/api/bracket"
	"PickEm/api/models"
)

// finalFourAreas maps stored Final Four regions to layout areas.
var finalFourAreas = map[string]string{
	models.RegionFinalFourLeft:  "left",
	models.RegionFinalFourRight: "right",
}

// gameSeed converts a stored game. Only opening-round games carry teams:
// later slots are filled by the user's own picks, not by real results.
func (server *Server) gameSeed(g *models.Game) bracket.GameSeed {
	seed := bracket.GameSeed{GameID: int(g.ID), Order: g.RoundOrder}
	switch {
	case g.Region == models.RegionChampionship:
		seed.Stage = bracket.StageChampionship
	case finalFourAreas[g.Region] != "":
		seed.Stage = bracket.StageFinalFour
		seed.Group = finalFourAreas[g.Region]
	default:
		seed.Stage = bracket.StageRegion
		seed.Group = g.Region
		seed.Round = g.Round
	}
	if g.Round == 1 {
		seed.Teams[bracket.Top] = server.teamRef(g.Team1)
		seed.Teams[bracket.Bottom] = server.teamRef(g.Team2)
	}
	return seed
}

func (server *Server) teamRef(t *models.Team) bracket.TeamRef {
	if t == nil {
		return bracket.TeamRef{}
	}
	return bracket.TeamRef{
		Name:   t.Name,
		TeamID: int(t.ID),
		Seed:   t.Seed,
		Logo:   server.logoURL(t),
	}
}

// buildBracket lays out every stored game in the default layout.
func (server *Server) buildBracket() (*bracket.Bracket, error) {
	games, err := (&models.Game{}).FindAllGames(server.DB)
	if err != nil {
		return nil, err
	}
	seeds := make([]bracket.GameSeed, 0, len(*games))
	for i := range *games {
		seeds = append(seeds, server.gameSeed(&(*games)[i]))
	}
	b, err := bracket.New(bracket.DefaultLayout(), seeds)
	if err != nil {
		return nil, fmt.Errorf("build bracket: %w", err)
	}
	return b, nil
}

// session returns the user's picking session, building it from the stored
// games and replaying their saved picks when there is none.
func (server *Server) session(uid uint) (*pickSession, error) {
	if s, ok := server.sessions.get(uid); ok {
		return s, nil
	}

	b, err := server.buildBracket()
	if err != nil {
		return nil, err
	}
	user, err := (&models.User{}).FindUserByID(server.DB, uid)
	if err != nil {
		return nil, err
	}
	saved, err := (&models.UserPick{}).FindUserPicks(server.DB, uid)
	if err != nil {
		return nil, err
	}

	picks := make(map[int]int, len(saved))
	for _, p := range saved {
		picks[int(p.GameID)] = int(p.PredictedWinnerID)
	}
	skipped := b.Replay(picks)
	if skipped > 0 {
		log.Printf("[bracket] user %d: %d saved picks no longer reachable", uid, skipped)
	}

	s := newPickSession(uid, b, user.FinalScore, server.now())
	s.Skipped = skipped
	return server.sessions.put(s), nil
}

// bracketResponse renders s. The caller holds s.mu.
func (server *Server) bracketResponse(s *pickSession) BracketResponse {
	resp := BracketResponse{
		SessionID:  s.ID,
		Layout:     s.Bracket.Layout,
		Games:      s.Bracket.Seeds(),
		FinalScore: s.FinalScore,
		Skipped:    s.Skipped,
		Locked:     server.locked(),
	}
	if champ, ok := s.Bracket.Champion(); ok {
		resp.Champion = &champ
	}
	if text, visible := s.Notice.Current(); visible {
		resp.Notice = text
	}
	return resp
}

func (server *Server) lockTimeText() string {
	if server.Config.LockTime.IsZero() {
		return ""
	}
	return server.Config.LockTime.UTC().Format(time.RFC3339)
}
