package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Regions as stored on games. Region games use the region name itself.
const (
	RegionFinalFourLeft  = "Final Four Left"
	RegionFinalFourRight = "Final Four Right"
	RegionChampionship   = "Championship"
)

type Game struct {
	ID            uint       `gorm:"primary_key;autoIncrement" json:"id"`
	Round         int        `gorm:"not null;index" json:"round"`
	RoundOrder    int        `gorm:"not null" json:"round_order"`
	Region        string     `gorm:"size:50;not null;index" json:"region"`
	SourceGame1ID *uint      `gorm:"column:source_game_1;index" json:"source_game_1"`
	SourceGame2ID *uint      `gorm:"column:source_game_2;index" json:"source_game_2"`
	Team1ID       *uint      `json:"team_1_id"`
	Team1         *Team      `gorm:"foreignKey:Team1ID;constraint:OnDelete:SET NULL;" json:"team_1,omitempty"`
	Team2ID       *uint      `json:"team_2_id"`
	Team2         *Team      `gorm:"foreignKey:Team2ID;constraint:OnDelete:SET NULL;" json:"team_2,omitempty"`
	WinnerID      *uint      `json:"winner_id"`
	GameTime      *time.Time `json:"game_time"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var (
	ErrGameNotFound     = errors.New("Game not found")
	ErrWinnerNotInGame  = errors.New("winner is not playing in this game")
	ErrGameTeamsMissing = errors.New("both teams must be known before a winner is set")
)

func (g *Game) HasTeam(teamID uint) bool {
	return (g.Team1ID != nil && *g.Team1ID == teamID) || (g.Team2ID != nil && *g.Team2ID == teamID)
}

func (g *Game) FindAllGames(db *gorm.DB) (*[]Game, error) {
	var games []Game
	err := db.
		Preload("Team1").
		Preload("Team2").
		Order("round ASC, round_order ASC, id ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return &games, nil
}

func (g *Game) FindGameByID(db *gorm.DB, id uint) (*Game, error) {
	var game Game
	err := db.Preload("Team1").Preload("Team2").Where("id = ?", id).Take(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindUpcomingGames lists games whose two teams are known and that have no
// result yet, soonest first.
func (g *Game) FindUpcomingGames(db *gorm.DB) (*[]Game, error) {
	var games []Game
	err := db.
		Preload("Team1").
		Preload("Team2").
		Where("team1_id IS NOT NULL AND team2_id IS NOT NULL AND winner_id IS NULL").
		Order("game_time ASC, round ASC, round_order ASC, id ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return &games, nil
}

// SetWinner records the result of game id and moves the winner into the
// game it feeds. A nil winner clears the result and the downstream slot.
// It returns the id of the downstream game, or 0 for the championship.
func (g *Game) SetWinner(db *gorm.DB, id uint, winnerID *uint) (uint, error) {
	var downstream uint
	err := db.Transaction(func(tx *gorm.DB) error {
		game, err := g.FindGameByID(tx, id)
		if err != nil {
			return err
		}
		if winnerID != nil {
			if game.Team1ID == nil || game.Team2ID == nil {
				return ErrGameTeamsMissing
			}
			if !game.HasTeam(*winnerID) {
				return fmt.Errorf("%w: team %d, game %d", ErrWinnerNotInGame, *winnerID, id)
			}
		}

		if err := tx.Model(&Game{}).Where("id = ?", id).Updates(map[string]interface{}{
			"winner_id":  winnerID,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}

		var next Game
		err = tx.Where("source_game_1 = ? OR source_game_2 = ?", id, id).Take(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		column := "team1_id"
		if next.SourceGame2ID != nil && *next.SourceGame2ID == id {
			column = "team2_id"
		}
		downstream = next.ID
		return tx.Model(&Game{}).Where("id = ?", next.ID).Updates(map[string]interface{}{
			column:       winnerID,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return downstream, nil
}
