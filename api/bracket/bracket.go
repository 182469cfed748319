package bracket

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Stage string

const (
	StageRegion       Stage = "region"
	StageFinalFour    Stage = "final_four"
	StageChampionship Stage = "championship"
	StageWinner       Stage = "winner"
)

// Position is a team row inside a game.
type Position int

const (
	Top Position = iota
	Bottom
)

var ErrInvalidPosition = errors.New("invalid position")

func (p Position) valid() bool { return p == Top || p == Bottom }

func (p Position) String() string {
	switch p {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return fmt.Sprintf("position(%d)", int(p))
}

func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "0":
		return Top, nil
	case "bottom", "1":
		return Bottom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

func (p Position) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(b []byte) error {
	parsed, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// TeamRef is a team occupying a slot. Origin is the slot the team was
// seeded into and identifies every copy propagated from it.
type TeamRef struct {
	Name   string `json:"name"`
	TeamID int    `json:"team_id,omitempty"`
	Seed   int    `json:"seed,omitempty"`
	Logo   string `json:"logo,omitempty"`
	Origin string `json:"origin,omitempty"`
	Active bool   `json:"active,omitempty"`
}

func (t TeamRef) Empty() bool { return strings.TrimSpace(t.Name) == "" }

// SlotRef addresses one team row: round, game index within the round, row.
type SlotRef struct {
	Round    string   `json:"round"`
	Game     int      `json:"game"`
	Position Position `json:"position"`
}

func (s SlotRef) String() string {
	return fmt.Sprintf("%s/g%d/%s", s.Round, s.Game, s.Position)
}

type Game struct {
	ID    int
	Index int
	Round *Round
	Teams [2]TeamRef
}

// Winner returns the team marked as the game's winner.
func (g *Game) Winner() (TeamRef, bool) {
	for _, t := range g.Teams {
		if t.Active && !t.Empty() {
			return t, true
		}
	}
	return TeamRef{}, false
}

func (g *Game) markWinner(p Position) {
	for i := range g.Teams {
		g.Teams[i].Active = false
	}
	g.Teams[p].Active = true
}

type Round struct {
	ID     string
	Stage  Stage
	Group  string
	Number int
	Games  []*Game
}

type Region struct {
	Name      string
	Side      Side
	FinalFour string
	Seam      int
	Rounds    []*Round
}

// Bracket is one picking session's tree. It is not safe for concurrent use;
// callers serialize selections.
type Bracket struct {
	Layout       Layout
	Regions      []*Region
	FinalFour    map[string]*Round
	Championship *Round
	Winner       *Round

	topology *Topology
	rounds   map[string]*Round
	games    map[int]*Game
}

// GameSeed is the serialized form of a game: the initial state handed over
// by whoever renders the bracket, and the form Seeds exports.
type GameSeed struct {
	GameID int        `json:"game_id"`
	Stage  Stage      `json:"stage"`
	Group  string     `json:"group,omitempty"`
	Round  int        `json:"round,omitempty"`
	Order  int        `json:"order"`
	Teams  [2]TeamRef `json:"teams"`
}

var (
	ErrUnknownStage        = errors.New("unknown stage")
	ErrDuplicateGame       = errors.New("duplicate game id")
	ErrMissingChampionship = errors.New("bracket needs exactly one championship game")
	ErrUnknownGame         = errors.New("unknown game")
	ErrTeamNotInGame       = errors.New("team is not playing in this game")
	ErrInvalidSize         = errors.New("first round size must be a power of two")
)

// New builds the bracket and its topology table from a layout and the
// seeded games.
func New(layout Layout, seeds []GameSeed) (*Bracket, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	b := &Bracket{
		Layout:    layout,
		FinalFour: make(map[string]*Round),
		rounds:    make(map[string]*Round),
		games:     make(map[int]*Game),
	}

	regionRounds := make(map[string]map[int][]GameSeed)
	areaGames := make(map[string][]GameSeed)
	var championship []GameSeed
	var winner *GameSeed

	for i := range seeds {
		s := seeds[i]
		switch s.Stage {
		case StageRegion:
			rl, ok := layout.region(s.Group)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, s.Group)
			}
			if regionRounds[rl.Name] == nil {
				regionRounds[rl.Name] = make(map[int][]GameSeed)
			}
			regionRounds[rl.Name][s.Round] = append(regionRounds[rl.Name][s.Round], s)
		case StageFinalFour:
			al, ok := layout.area(s.Group)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownArea, s.Group)
			}
			areaGames[al.Area] = append(areaGames[al.Area], s)
		case StageChampionship:
			championship = append(championship, s)
		case StageWinner:
			winner = &s
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, s.Stage)
		}
	}
	if len(championship) != 1 {
		return nil, ErrMissingChampionship
	}

	for _, rl := range layout.Regions {
		region := &Region{Name: rl.Name, Side: rl.Side, FinalFour: rl.FinalFour, Seam: rl.Seam}
		numbers := make([]int, 0, len(regionRounds[rl.Name]))
		for n := range regionRounds[rl.Name] {
			numbers = append(numbers, n)
		}
		sort.Ints(numbers)
		for _, n := range numbers {
			round, err := b.addRound(RegionRoundID(rl.Name, n), StageRegion, rl.Name, n, regionRounds[rl.Name][n])
			if err != nil {
				return nil, err
			}
			region.Rounds = append(region.Rounds, round)
		}
		if rl.Side == SideRight {
			for i, j := 0, len(region.Rounds)-1; i < j; i, j = i+1, j-1 {
				region.Rounds[i], region.Rounds[j] = region.Rounds[j], region.Rounds[i]
			}
		}
		b.Regions = append(b.Regions, region)
	}

	for _, al := range layout.FinalFour {
		round, err := b.addRound(FinalFourID(al.Area), StageFinalFour, al.Area, 0, areaGames[al.Area])
		if err != nil {
			return nil, err
		}
		b.FinalFour[al.Area] = round
	}

	round, err := b.addRound(ChampionshipID, StageChampionship, "", 0, championship)
	if err != nil {
		return nil, err
	}
	b.Championship = round

	// The winner slot is a single row, not a game; it is never registered
	// as a selectable game.
	b.Winner = &Round{ID: WinnerID, Stage: StageWinner}
	champion := &Game{Index: 0, Round: b.Winner}
	if winner != nil {
		champion.Teams[Top] = winner.Teams[Top]
		champion.Teams[Top].Active = false
	}
	b.Winner.Games = []*Game{champion}
	b.rounds[WinnerID] = b.Winner

	b.topology = newTopology(b)
	return b, nil
}

func (b *Bracket) addRound(id string, stage Stage, group string, number int, seeds []GameSeed) (*Round, error) {
	sort.SliceStable(seeds, func(i, j int) bool { return seeds[i].Order < seeds[j].Order })

	round := &Round{ID: id, Stage: stage, Group: group, Number: number}
	for i, s := range seeds {
		if _, exists := b.games[s.GameID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateGame, s.GameID)
		}
		g := &Game{ID: s.GameID, Index: i, Round: round, Teams: s.Teams}
		for p := range g.Teams {
			if !g.Teams[p].Empty() && g.Teams[p].Origin == "" {
				g.Teams[p].Origin = SlotRef{Round: id, Game: i, Position: Position(p)}.String()
			}
		}
		round.Games = append(round.Games, g)
		b.games[g.ID] = g
	}
	b.rounds[id] = round
	return round, nil
}

func (b *Bracket) Topology() *Topology { return b.topology }

func (b *Bracket) Game(id int) (*Game, bool) {
	g, ok := b.games[id]
	return g, ok
}

func (b *Bracket) Round(id string) (*Round, bool) {
	r, ok := b.rounds[id]
	return r, ok
}

// Slot returns the team currently occupying ref.
func (b *Bracket) Slot(ref SlotRef) (TeamRef, bool) {
	t := b.slot(ref)
	if t == nil {
		return TeamRef{}, false
	}
	return *t, true
}

func (b *Bracket) slot(ref SlotRef) *TeamRef {
	round, ok := b.rounds[ref.Round]
	if !ok || ref.Game < 0 || ref.Game >= len(round.Games) || !ref.Position.valid() {
		return nil
	}
	return &round.Games[ref.Game].Teams[ref.Position]
}

// Champion is the team in the winner slot.
func (b *Bracket) Champion() (TeamRef, bool) {
	t := b.Winner.Games[0].Teams[Top]
	return t, !t.Empty()
}

// PlayOrder lists every selectable game so that each game comes after the
// games feeding it: region rounds in play order, Final Four, championship.
func (b *Bracket) PlayOrder() []*Game {
	var games []*Game
	for _, region := range b.Regions {
		rounds := append([]*Round(nil), region.Rounds...)
		sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
		for _, r := range rounds {
			games = append(games, r.Games...)
		}
	}
	for _, al := range b.Layout.FinalFour {
		games = append(games, b.FinalFour[al.Area].Games...)
	}
	return append(games, b.Championship.Games...)
}

// Seeds exports the current tree, winner slot included, in a form New
// accepts.
func (b *Bracket) Seeds() []GameSeed {
	games := b.PlayOrder()
	seeds := make([]GameSeed, 0, len(games)+1)
	for _, g := range games {
		seeds = append(seeds, GameSeed{
			GameID: g.ID,
			Stage:  g.Round.Stage,
			Group:  g.Round.Group,
			Round:  g.Round.Number,
			Order:  g.Index + 1,
			Teams:  g.Teams,
		})
	}
	return append(seeds, GameSeed{
		Stage: StageWinner,
		Order: 1,
		Teams: b.Winner.Games[0].Teams,
	})
}

// Skeleton lays out empty games for a layout whose regions open with
// firstRoundGames games each. Game ids are assigned in play order from 1.
func Skeleton(layout Layout, firstRoundGames int) ([]GameSeed, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if firstRoundGames < 1 || firstRoundGames&(firstRoundGames-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, firstRoundGames)
	}

	var seeds []GameSeed
	id := 0
	add := func(stage Stage, group string, round, order int) {
		id++
		seeds = append(seeds, GameSeed{GameID: id, Stage: stage, Group: group, Round: round, Order: order})
	}

	for _, rl := range layout.Regions {
		for round, games := 1, firstRoundGames; games >= 1; round, games = round+1, games/2 {
			for order := 1; order <= games; order++ {
				add(StageRegion, rl.Name, round, order)
			}
		}
	}

	for _, al := range layout.FinalFour {
		slots := 0
		for _, rl := range layout.Regions {
			if strings.EqualFold(rl.FinalFour, al.Area) && rl.Seam+1 > slots {
				slots = rl.Seam + 1
			}
		}
		for order := 1; order <= (slots+1)/2; order++ {
			add(StageFinalFour, al.Area, 0, order)
		}
	}

	add(StageChampionship, "", 0, 1)
	return seeds, nil
}
