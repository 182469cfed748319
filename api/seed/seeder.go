package seed

import (
	"fmt"
	"log"
	"time"

	"PickEm/api/models"

	"gorm.io/gorm"
)

// Regions in seeding order. Each list runs from seed 1 to seed 16.
var Regions = []struct {
	Name  string
	Teams []string
}{
	{"East", []string{"Duke", "Alabama", "Wisconsin", "Arizona", "Oregon", "BYU", "Saint Mary's", "Miss. St.",
		"Baylor", "Vanderbilt", "VCU", "Liberty", "Akron", "Montana", "Robert Morris", "Mt St Mary's"}},
	{"Midwest", []string{"Houston", "Tennessee", "Kentucky", "Purdue", "Clemson", "Illinois", "UCLA", "Gonzaga",
		"Georgia", "Utah St.", "Xavier", "McNeese", "High Point", "Troy", "Wofford", "SIUE"}},
	{"South", []string{"Auburn", "Michigan St.", "Iowa St.", "Texas A&M", "Michigan", "Ole Miss", "Marquette", "Louisville",
		"Creighton", "New Mexico", "N. Carolina", "UC San Diego", "Yale", "Lipscomb", "Bryant", "Alabama St."}},
	{"West", []string{"Florida", "St. John's", "Texas Tech", "Maryland", "Memphis", "Missouri", "Kansas", "UConn",
		"Oklahoma", "Arkansas", "Drake", "Colo St.", "Grand Canyon", "UNCW", "Omaha", "Norfolk St."}},
}

// seedOrder places each opening game, keyed by its better seed, so that
// adjacent games meet in the next round.
var seedOrder = map[int]int{1: 1, 8: 2, 5: 3, 4: 4, 6: 5, 3: 6, 7: 7, 2: 8}

// finalFourSources lists, per Final Four game, the regions feeding it as
// source 1 and source 2.
var finalFourSources = []struct {
	Region  string
	Sources [2]string
}{
	{models.RegionFinalFourLeft, [2]string{"South", "West"}},
	{models.RegionFinalFourRight, [2]string{"East", "Midwest"}},
}

// GameTime is the placeholder tip-off for every seeded game.
var GameTime = time.Date(2026, time.March, 19, 16, 0, 0, 0, time.UTC)

// Clear deletes picks, games and teams, and the guesses that point at teams.
func Clear(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserPick{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Model(&models.User{}).
			Updates(map[string]interface{}{"winner_id": nil, "final_score": nil}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Game{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Team{}).Error
	})
}

// Load seeds 64 teams and the 63 games linking them into one bracket.
func Load(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		teams, err := seedTeams(tx)
		if err != nil {
			return fmt.Errorf("seed teams: %w", err)
		}
		log.Println("[seed] Teams seeded.")

		prev, err := seedRoundOne(tx, teams)
		if err != nil {
			return fmt.Errorf("seed round 1: %w", err)
		}
		log.Println("[seed] Round 1 games seeded.")

		for round := 2; round <= 4; round++ {
			next := make(map[string][]models.Game)
			for _, r := range Regions {
				games, err := pairGames(tx, round, r.Name, prev[r.Name])
				if err != nil {
					return fmt.Errorf("seed round %d: %w", round, err)
				}
				next[r.Name] = games
			}
			prev = next
			log.Printf("[seed] Round %d games seeded.", round)
		}

		var finalFour []models.Game
		for _, ff := range finalFourSources {
			sources := append(append([]models.Game{}, prev[ff.Sources[0]]...), prev[ff.Sources[1]]...)
			games, err := pairGames(tx, 5, ff.Region, sources)
			if err != nil {
				return fmt.Errorf("seed final four: %w", err)
			}
			finalFour = append(finalFour, games...)
		}
		log.Println("[seed] Round 5 games seeded.")

		if _, err := pairGames(tx, 6, models.RegionChampionship, finalFour); err != nil {
			return fmt.Errorf("seed championship: %w", err)
		}
		log.Println("[seed] Round 6 games seeded.")
		return nil
	})
}

func seedTeams(tx *gorm.DB) (map[string][]models.Team, error) {
	teams := make(map[string][]models.Team, len(Regions))
	for _, r := range Regions {
		for i, name := range r.Teams {
			team := models.Team{Name: name, Seed: i + 1, Region: r.Name}
			team.Prepare()
			if msgs := team.Validate(); len(msgs) > 0 {
				return nil, fmt.Errorf("team %q: %v", name, msgs)
			}
			if err := tx.Create(&team).Error; err != nil {
				return nil, err
			}
			teams[r.Name] = append(teams[r.Name], team)
		}
	}
	return teams, nil
}

// seedRoundOne pairs seed i with seed 17-i in every region.
func seedRoundOne(tx *gorm.DB, teams map[string][]models.Team) (map[string][]models.Game, error) {
	games := make(map[string][]models.Game, len(Regions))
	for _, r := range Regions {
		region := teams[r.Name]
		ordered := make([]models.Game, len(region)/2)
		for i := 0; i < len(region)/2; i++ {
			top, bottom := region[i], region[len(region)-1-i]
			order := seedOrder[top.Seed]
			ordered[order-1] = models.Game{
				Round:      1,
				RoundOrder: order,
				Region:     r.Name,
				Team1ID:    &top.ID,
				Team2ID:    &bottom.ID,
				GameTime:   &GameTime,
			}
		}
		if err := tx.Create(&ordered).Error; err != nil {
			return nil, err
		}
		games[r.Name] = ordered
	}
	return games, nil
}

// pairGames creates one game per adjacent pair of sources, in order.
func pairGames(tx *gorm.DB, round int, region string, sources []models.Game) ([]models.Game, error) {
	if len(sources)%2 != 0 {
		return nil, fmt.Errorf("%s round %d: odd number of source games", region, round)
	}
	games := make([]models.Game, 0, len(sources)/2)
	for i := 0; i < len(sources); i += 2 {
		s1, s2 := sources[i].ID, sources[i+1].ID
		games = append(games, models.Game{
			Round:         round,
			RoundOrder:    i/2 + 1,
			Region:        region,
			SourceGame1ID: &s1,
			SourceGame2ID: &s2,
			GameTime:      &GameTime,
		})
	}
	if err := tx.Create(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}
