package controllers

import (
	"strings"
	"time"
	"unicode"

	"PickEm/api/livescores"
	"PickEm/api/models"
)

type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	IsAdmin    bool      `json:"is_admin"`
	Champion   string    `json:"champion,omitempty"`
	FinalScore *int      `json:"final_score,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type TeamDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Seed   int    `json:"seed"`
	Region string `json:"region,omitempty"`
	Logo   string `json:"logo,omitempty"`
}

type GameDTO struct {
	ID         uint       `json:"id"`
	Round      int        `json:"round"`
	RoundOrder int        `json:"round_order"`
	Region     string     `json:"region"`
	Team1      *TeamDTO   `json:"team_1,omitempty"`
	Team2      *TeamDTO   `json:"team_2,omitempty"`
	WinnerID   *uint      `json:"winner_id,omitempty"`
	GameTime   *time.Time `json:"game_time,omitempty"`
}

type UpcomingGameDTO struct {
	GameID       uint             `json:"game_id"`
	Round        int              `json:"round"`
	GameTime     *time.Time       `json:"game_time,omitempty"`
	Team1        TeamDTO          `json:"team_1"`
	Team2        TeamDTO          `json:"team_2"`
	Team1Pickers []string         `json:"team_1_pickers"`
	Team2Pickers []string         `json:"team_2_pickers"`
	Live         *livescores.Game `json:"live,omitempty"`
}

func userToResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:         u.PublicID,
		Username:   u.Username,
		Email:      u.Email,
		IsAdmin:    u.IsAdmin,
		FinalScore: u.FinalScore,
		CreatedAt:  u.CreatedAt,
	}
	if u.Winner != nil {
		resp.Champion = u.Winner.Name
	}
	return resp
}

func (server *Server) teamToDTO(t *models.Team) *TeamDTO {
	if t == nil {
		return nil
	}
	return &TeamDTO{
		ID:     t.ID,
		Name:   t.Name,
		Seed:   t.Seed,
		Region: t.Region,
		Logo:   server.logoURL(t),
	}
}

func (server *Server) gameToDTO(g *models.Game) GameDTO {
	return GameDTO{
		ID:         g.ID,
		Round:      g.Round,
		RoundOrder: g.RoundOrder,
		Region:     g.Region,
		Team1:      server.teamToDTO(g.Team1),
		Team2:      server.teamToDTO(g.Team2),
		WinnerID:   g.WinnerID,
		GameTime:   g.GameTime,
	}
}

// displayName capitalizes each word of a username.
func displayName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
