package models

import (
	"time"

	"gorm.io/gorm"
)

type UserPick struct {
	ID                uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_user_picks_user_game" json:"user_id"`
	User              User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	GameID            uint      `gorm:"not null;uniqueIndex:idx_user_picks_user_game;index" json:"game_id"`
	PredictedWinnerID uint      `gorm:"not null" json:"predicted_winner_id"`
	PredictedWinner   Team      `gorm:"foreignKey:PredictedWinnerID" json:"-"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ReplaceUserPicks swaps every saved pick of uid for picks.
func (p *UserPick) ReplaceUserPicks(db *gorm.DB, uid uint, picks []UserPick) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", uid).Delete(&UserPick{}).Error; err != nil {
			return err
		}
		if len(picks) == 0 {
			return nil
		}
		now := time.Now()
		for i := range picks {
			picks[i].ID = 0
			picks[i].UserID = uid
			picks[i].CreatedAt = now
		}
		return tx.CreateInBatches(&picks, 100).Error
	})
}

func (p *UserPick) FindUserPicks(db *gorm.DB, uid uint) ([]UserPick, error) {
	var picks []UserPick
	err := db.Preload("PredictedWinner").Where("user_id = ?", uid).Order("game_id ASC").Find(&picks).Error
	return picks, err
}

func (p *UserPick) FindAllPicks(db *gorm.DB) ([]UserPick, error) {
	var picks []UserPick
	err := db.Preload("PredictedWinner").Order("user_id ASC, game_id ASC").Find(&picks).Error
	return picks, err
}

// FindPicksForGames loads picks on the given games with their users.
func (p *UserPick) FindPicksForGames(db *gorm.DB, gameIDs []uint) ([]UserPick, error) {
	var picks []UserPick
	if len(gameIDs) == 0 {
		return picks, nil
	}
	err := db.Preload("User").Where("game_id IN ?", gameIDs).Order("game_id ASC, user_id ASC").Find(&picks).Error
	return picks, err
}

func (p *UserPick) DeleteUserPicks(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&UserPick{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
