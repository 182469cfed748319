package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ResetPassword struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	Token     string    `gorm:"size:255;not null;uniqueIndex" json:"token"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ResetTokenTTL bounds how long a mailed reset link stays usable.
const ResetTokenTTL = time.Hour

func (r *ResetPassword) Prepare() {
	r.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(r.Email)))
	r.Token = strings.TrimSpace(r.Token)
	r.CreatedAt = time.Now()
}

func (r *ResetPassword) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > ResetTokenTTL
}

func (r *ResetPassword) SaveDetails(db *gorm.DB) (*ResetPassword, error) {
	if err := db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResetPassword) FindByToken(db *gorm.DB, token string) (*ResetPassword, error) {
	var found ResetPassword
	if err := db.Where("token = ?", token).Take(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

// DeleteDetails removes every reset token issued for the same email.
func (r *ResetPassword) DeleteDetails(db *gorm.DB) (int64, error) {
	result := db.Where("email = ?", r.Email).Delete(&ResetPassword{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
