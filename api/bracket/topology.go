package bracket

type edge struct {
	next string
	seam int
}

// Topology maps every round to the round its winners advance into. It is
// built once per bracket; lookups never touch game state.
type Topology struct {
	edges  map[string]edge
	rounds map[string]*Round
}

func newTopology(b *Bracket) *Topology {
	t := &Topology{
		edges:  make(map[string]edge),
		rounds: b.rounds,
	}

	for _, region := range b.Regions {
		step := 1
		if region.Side == SideRight {
			step = -1
		}
		for i, round := range region.Rounds {
			j := i + step
			if j >= 0 && j < len(region.Rounds) {
				t.edges[round.ID] = edge{next: region.Rounds[j].ID}
				continue
			}
			// Past the region's final round: into its Final Four game.
			t.edges[round.ID] = edge{next: FinalFourID(region.FinalFour), seam: region.Seam}
		}
	}

	for _, al := range b.Layout.FinalFour {
		t.edges[FinalFourID(al.Area)] = edge{next: ChampionshipID, seam: al.Seam}
	}
	t.edges[ChampionshipID] = edge{next: WinnerID}

	return t
}

// NextPosition returns the round that winners of round advance into. The
// winner slot is terminal.
func (t *Topology) NextPosition(round string) (string, bool) {
	e, ok := t.edges[round]
	if !ok {
		return "", false
	}
	if _, exists := t.rounds[e.next]; !exists {
		return "", false
	}
	return e.next, true
}

// NextSlot resolves the row in next that the winner of game gameIndex in
// round from lands in. It reports false when next has no such game.
func (t *Topology) NextSlot(from, next string, gameIndex int) (SlotRef, bool) {
	dest, ok := t.rounds[next]
	if !ok {
		return SlotRef{}, false
	}

	if e, ok := t.edges[from]; ok && e.next == next {
		gameIndex += e.seam
	}

	if dest.Stage == StageWinner {
		return SlotRef{Round: next, Game: 0, Position: Top}, true
	}

	if gameIndex < 0 || gameIndex/2 >= len(dest.Games) {
		return SlotRef{}, false
	}
	return SlotRef{Round: next, Game: gameIndex / 2, Position: Position(gameIndex % 2)}, true
}
