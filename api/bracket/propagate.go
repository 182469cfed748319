package bracket

import "fmt"

// Result describes what a selection changed.
type Result struct {
	Applied     bool      `json:"applied"`
	Destination *SlotRef  `json:"destination,omitempty"`
	Cleared     []SlotRef `json:"cleared,omitempty"`
}

// ApplySelection marks the team in row pos of the game as its winner and
// advances it one round. Whatever the advancing team displaces is removed
// from every later round first, so no pick that depended on it survives.
//
// Selecting an empty row does nothing. Selecting the team that already
// occupies the destination leaves the tree unchanged.
func (b *Bracket) ApplySelection(gameID int, pos Position) (Result, error) {
	game, ok := b.games[gameID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownGame, gameID)
	}
	if !pos.valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidPosition, int(pos))
	}

	team := game.Teams[pos]
	if team.Empty() {
		return Result{}, nil
	}

	game.markWinner(pos)
	res := Result{Applied: true}

	next, ok := b.topology.NextPosition(game.Round.ID)
	if !ok {
		return res, nil
	}
	dest, ok := b.topology.NextSlot(game.Round.ID, next, game.Index)
	if !ok {
		return res, nil
	}
	res.Destination = &dest

	slot := b.slot(dest)
	if slot == nil {
		return res, nil
	}
	if sameLineage(*slot, team) {
		return res, nil
	}

	res.Cleared = b.invalidate(next, *slot)

	advanced := team
	advanced.Active = false
	*slot = advanced

	return res, nil
}

// SelectTeam applies a selection by team id rather than row.
func (b *Bracket) SelectTeam(gameID, teamID int) (Result, error) {
	game, ok := b.games[gameID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownGame, gameID)
	}
	for p, t := range game.Teams {
		if !t.Empty() && t.TeamID == teamID {
			return b.ApplySelection(gameID, Position(p))
		}
	}
	return Result{}, fmt.Errorf("%w: team %d, game %d", ErrTeamNotInGame, teamID, gameID)
}

// invalidate clears every slot from round start onward that holds displaced.
func (b *Bracket) invalidate(start string, displaced TeamRef) []SlotRef {
	if displaced.Empty() {
		return nil
	}

	var cleared []SlotRef
	for id, ok := start, true; ok; id, ok = b.topology.NextPosition(id) {
		round := b.rounds[id]
		for gi, g := range round.Games {
			for p := range g.Teams {
				if sameLineage(g.Teams[p], displaced) {
					g.Teams[p] = TeamRef{}
					cleared = append(cleared, SlotRef{Round: id, Game: gi, Position: Position(p)})
				}
			}
		}
	}
	return cleared
}

// Replay applies saved picks (game id to team id) in play order. Picks whose
// team no longer reaches that game are skipped and counted.
func (b *Bracket) Replay(picks map[int]int) int {
	skipped := 0
	for _, g := range b.PlayOrder() {
		teamID, ok := picks[g.ID]
		if !ok {
			continue
		}
		if _, err := b.SelectTeam(g.ID, teamID); err != nil {
			skipped++
		}
	}
	return skipped
}

// sameLineage matches on origin when both sides carry one and falls back to
// the display name otherwise.
func sameLineage(a, b TeamRef) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	if a.Origin != "" && b.Origin != "" {
		return a.Origin == b.Origin
	}
	return a.Name == b.Name
}
