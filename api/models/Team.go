package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Name      string    `gorm:"size:50;not null;index" json:"name"`
	Seed      int       `gorm:"not null" json:"seed"`
	Region    string    `gorm:"size:50;not null;index" json:"region"`
	LogoKey   string    `gorm:"size:255" json:"logo_key"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var ErrTeamNotFound = errors.New("Team not found")

func (t *Team) Prepare() {
	t.Name = strings.TrimSpace(t.Name)
	t.Region = strings.TrimSpace(t.Region)
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
}

func (t *Team) Validate() map[string]string {
	errorsMap := make(map[string]string)
	if t.Name == "" {
		errorsMap["Required_name"] = "required name"
	}
	if t.Seed < 1 || t.Seed > 16 {
		errorsMap["Invalid_seed"] = "seed must be between 1 and 16"
	}
	if t.Region == "" {
		errorsMap["Required_region"] = "required region"
	}
	return errorsMap
}

func (t *Team) FindAllTeams(db *gorm.DB) (*[]Team, error) {
	var teams []Team
	if err := db.Order("region ASC, seed ASC, id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return &teams, nil
}

func (t *Team) FindTeamByID(db *gorm.DB, id uint) (*Team, error) {
	var team Team
	err := db.Where("id = ?", id).Take(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// FindTeamByName returns the first team with exactly this display name.
func (t *Team) FindTeamByName(db *gorm.DB, name string) (*Team, error) {
	var team Team
	err := db.Where("name = ?", name).Order("id ASC").First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (t *Team) UpdateTeamLogo(db *gorm.DB, id uint, key string) (*Team, error) {
	err := db.Model(&Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"logo_key":   key,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return t.FindTeamByID(db, id)
}
