package bracket

import (
	"errors"
	"fmt"
	"strings"
)

// Side decides which way a region's rounds are walked. Right-side regions
// are stored in display order, final round first.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// RegionLayout places a region in the bracket. Seam is the index shift
// applied when the region's final round feeds its Final Four game.
type RegionLayout struct {
	Name      string `json:"name"`
	Side      Side   `json:"side"`
	FinalFour string `json:"final_four"`
	Seam      int    `json:"seam"`
}

// FinalFourLayout is one Final Four area. Seam is the index shift applied
// when the area feeds the championship.
type FinalFourLayout struct {
	Area string `json:"area"`
	Seam int    `json:"seam"`
}

type Layout struct {
	Regions   []RegionLayout    `json:"regions"`
	FinalFour []FinalFourLayout `json:"final_four"`
}

var (
	ErrEmptyLayout   = errors.New("layout has no regions")
	ErrUnknownRegion = errors.New("unknown region")
	ErrUnknownArea   = errors.New("unknown final four area")
	ErrInvalidSide   = errors.New("invalid region side")
	ErrCrowdedArea   = errors.New("final four area fed by more than two regions")
)

// DefaultLayout is the four-region tournament. South and West meet in the
// left Final Four game, East and Midwest in the right one; the second region
// of each pair and the right Final Four game each land one slot later.
func DefaultLayout() Layout {
	return Layout{
		Regions: []RegionLayout{
			{Name: "East", Side: SideLeft, FinalFour: "right", Seam: 0},
			{Name: "Midwest", Side: SideRight, FinalFour: "right", Seam: 1},
			{Name: "South", Side: SideLeft, FinalFour: "left", Seam: 0},
			{Name: "West", Side: SideRight, FinalFour: "left", Seam: 1},
		},
		FinalFour: []FinalFourLayout{
			{Area: "left", Seam: 0},
			{Area: "right", Seam: 1},
		},
	}
}

func (l Layout) Validate() error {
	if len(l.Regions) == 0 {
		return ErrEmptyLayout
	}
	feeds := map[string]int{}
	for _, r := range l.Regions {
		if r.Side != SideLeft && r.Side != SideRight {
			return fmt.Errorf("%w: %q for region %q", ErrInvalidSide, r.Side, r.Name)
		}
		if _, ok := l.area(r.FinalFour); !ok {
			return fmt.Errorf("%w: %q for region %q", ErrUnknownArea, r.FinalFour, r.Name)
		}
		// Seam offsets only describe two sources per merge.
		if feeds[r.FinalFour]++; feeds[r.FinalFour] > 2 {
			return fmt.Errorf("%w: %q", ErrCrowdedArea, r.FinalFour)
		}
	}
	return nil
}

func (l Layout) region(name string) (RegionLayout, bool) {
	for _, r := range l.Regions {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return RegionLayout{}, false
}

func (l Layout) area(name string) (FinalFourLayout, bool) {
	for _, a := range l.FinalFour {
		if strings.EqualFold(a.Area, name) {
			return a, true
		}
	}
	return FinalFourLayout{}, false
}

const (
	ChampionshipID = "championship"
	WinnerID       = "winner"
)

// RegionRoundID names round n (1-based, in play order) of a region.
func RegionRoundID(region string, n int) string {
	return fmt.Sprintf("%s-%d", slug(region), n)
}

func FinalFourID(area string) string {
	return "final-four-" + slug(area)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
