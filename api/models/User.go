package models

import (
	"errors"
	"html"
	"strings"
	"time"

	"PickEm/api/security"

	"github.com/badoux/checkmail"
	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID   string    `gorm:"size:36;uniqueIndex;column:public_id" json:"public_id"`
	Username   string    `gorm:"size:255;not null;unique" json:"username"`
	Email      string    `gorm:"size:100;not null;unique" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"password"`
	IsAdmin    bool      `gorm:"default:false" json:"is_admin"`
	WinnerID   *uint     `gorm:"index" json:"winner_id"`
	Winner     *Team     `gorm:"foreignKey:WinnerID;constraint:OnDelete:SET NULL;" json:"-"`
	FinalScore *int      `json:"final_score"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var ErrUserNotFound = errors.New("User not found")

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(u.PublicID) == "" {
		u.PublicID = uuid.NewV4().String()
	}
	return u.HashPassword()
}

func (u *User) Prepare() {
	u.Username = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Username)))
	u.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Email)))

	// Admin is granted by the server, never by a signup payload.
	if u.ID == 0 {
		u.IsAdmin = false
	}

	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
}

func validEmail(u *User, errorMessages map[string]string) {
	if u.Email == "" {
		errorMessages["Required_email"] = "Required Email"
		return
	}
	if err := checkmail.ValidateFormat(u.Email); err != nil {
		errorMessages["Invalid_email"] = "Invalid Email"
	}
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "login":
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		validEmail(u, errorMessages)
	case "forgotpassword":
		validEmail(u, errorMessages)
	default:
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		} else if len(u.Password) < 6 {
			errorMessages["Invalid_password"] = "Password should be at least 6 characters"
		}
		validEmail(u, errorMessages)
	}
	return errorMessages
}

func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	if err := db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) FindAllUsers(db *gorm.DB) (*[]User, error) {
	var users []User
	err := db.Preload("Winner").Order("username ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	err := db.Preload("Winner").Where("id = ?", uid).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetBracketExtras stores the champion and final score guesses that ride
// along with a pick submission. A nil argument leaves that column alone.
func (u *User) SetBracketExtras(db *gorm.DB, uid uint, winnerID *uint, finalScore *int) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if winnerID != nil {
		updates["winner_id"] = *winnerID
	}
	if finalScore != nil {
		updates["final_score"] = *finalScore
	}
	return db.Model(&User{}).Where("id = ?", uid).UpdateColumns(updates).Error
}

// ClearBracketExtras drops the champion and final score guesses.
func (u *User) ClearBracketExtras(db *gorm.DB, uid uint) error {
	return db.Model(&User{}).Where("id = ?", uid).UpdateColumns(map[string]interface{}{
		"winner_id":   nil,
		"final_score": nil,
		"updated_at":  time.Now(),
	}).Error
}

func (u *User) UpdatePassword(db *gorm.DB) error {
	if err := u.HashPassword(); err != nil {
		return err
	}

	return db.Model(&User{}).Where("email = ?", u.Email).UpdateColumns(map[string]interface{}{
		"password":   u.Password,
		"updated_at": time.Now(),
	}).Error
}
