package controllers

import (
	"PickEm/api/bracket"
	"PickEm/api/livescores"
	"PickEm/api/scoring"
	"PickEm/api/submit"
)

type ErrorResponse struct {
	Error interface{} `json:"error"`
}

type SimpleMessageResponse struct {
	Message string `json:"message"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginResponseEnvelope struct {
	Status   int           `json:"status"`
	Response LoginResponse `json:"response"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	NewPassword    string `json:"new_password"`
	RetypePassword string `json:"retype_password"`
	Token          string `json:"token"`
}

type UserResponseEnvelope struct {
	Status   int          `json:"status"`
	Response UserResponse `json:"response"`
}

// BracketResponse is a picking session's state.
type BracketResponse struct {
	SessionID  string             `json:"session_id"`
	Layout     bracket.Layout     `json:"layout"`
	Games      []bracket.GameSeed `json:"games"`
	FinalScore string             `json:"final_score"`
	Champion   *bracket.TeamRef   `json:"champion,omitempty"`
	Notice     string             `json:"notice,omitempty"`
	Skipped    int                `json:"skipped_picks,omitempty"`
	Locked     bool               `json:"locked"`
}

type BracketResponseEnvelope struct {
	Status   int             `json:"status"`
	Response BracketResponse `json:"response"`
}

// SelectRequest picks a winner by row position or by team id.
type SelectRequest struct {
	SessionID string            `json:"session_id,omitempty"`
	GameID    int               `json:"game_id"`
	Position  *bracket.Position `json:"position,omitempty"`
	TeamID    *int              `json:"team_id,omitempty"`
}

type SelectResponse struct {
	Result  bracket.Result  `json:"result"`
	Bracket BracketResponse `json:"bracket"`
}

type SelectResponseEnvelope struct {
	Status   int            `json:"status"`
	Response SelectResponse `json:"response"`
}

type SubmitBracketRequest struct {
	SessionID  string  `json:"session_id,omitempty"`
	FinalScore *string `json:"final_score,omitempty"`
}

// SubmitPicksRequest is the raw submission payload. final_score may be a
// JSON string or number.
type SubmitPicksRequest struct {
	UserPicks  []bracket.Pick `json:"user_picks"`
	WinnerPick *string        `json:"winner_pick"`
	FinalScore interface{}    `json:"final_score" swaggertype:"string"`
}

type SubmitOutcomeResponse = submit.Response

type GamesListResponse struct {
	Status   int               `json:"status"`
	Response []UpcomingGameDTO `json:"response"`
}

type AdminGamesListResponse struct {
	Status   int       `json:"status"`
	Response []GameDTO `json:"response"`
}

type GameResultRequest struct {
	WinnerID *uint `json:"winner_id"`
}

type GameResultResponse struct {
	Game             GameDTO `json:"game"`
	DownstreamGameID uint    `json:"downstream_game_id,omitempty"`
}

type ScoreboardResponse struct {
	Status   int             `json:"status"`
	Response []scoring.Entry `json:"response"`
}

type RulesResponse struct {
	RoundPoints map[int]int `json:"round_points"`
	SeedBonus   bool        `json:"seed_bonus"`
	LockTime    string      `json:"lock_time"`
	Locked      bool        `json:"locked"`
}

type TeamResponseEnvelope struct {
	Status   int     `json:"status"`
	Response TeamDTO `json:"response"`
}

type LiveScoresResponse struct {
	Status   int                        `json:"status"`
	Response map[string]livescores.Game `json:"response"`
}
