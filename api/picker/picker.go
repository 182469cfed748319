// Package picker drives a bracket from the command line: it loads the
// caller's bracket from a running API, replays a file of clicks onto it and
// submits the result.
package picker

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"PickEm/api/bracket"
)

const BracketPath = "/api/v1/bracket"

// Env is the CLI's environment.
type Env struct {
	APIURL string `env:"PICKEM_API_URL" envDefault:"http://localhost:8888"`
	Token  string `env:"PICKEM_TOKEN"`
}

// Click is one selection: a game and the row clicked in it.
type Click struct {
	Line     int
	GameID   int
	Position bracket.Position
}

var ErrBadClick = errors.New("bad click line")

// ParseClicks reads one click per line as "<game id> <top|bottom>". Blank
// lines and lines starting with # are skipped.
func ParseClicks(r io.Reader) ([]Click, error) {
	var clicks []Click
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w %d: %q", ErrBadClick, n, line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w %d: game id %q", ErrBadClick, n, fields[0])
		}
		pos, err := bracket.ParsePosition(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadClick, n, err)
		}
		clicks = append(clicks, Click{Line: n, GameID: id, Position: pos})
	}
	return clicks, sc.Err()
}

// Play applies clicks in order and reports how many changed the bracket.
func Play(b *bracket.Bracket, clicks []Click) (int, error) {
	applied := 0
	for _, c := range clicks {
		res, err := b.ApplySelection(c.GameID, c.Position)
		if err != nil {
			return applied, fmt.Errorf("line %d: %w", c.Line, err)
		}
		if res.Applied {
			applied++
		}
	}
	return applied, nil
}

// State is the part of the server's bracket response the CLI needs.
type State struct {
	SessionID  string             `json:"session_id"`
	Layout     bracket.Layout     `json:"layout"`
	Games      []bracket.GameSeed `json:"games"`
	FinalScore string             `json:"final_score"`
	Locked     bool               `json:"locked"`
}

// Client talks to the bracket endpoints of a PickEm API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Fetch loads the caller's current bracket.
func (c *Client) Fetch(ctx context.Context) (State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.BaseURL, "/")+BracketPath, nil)
	if err != nil {
		return State{}, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.httpClient().Do(req)
	if err != nil {
		return State{}, fmt.Errorf("fetch bracket: %w", err)
	}
	defer res.Body.Close()

	var envelope struct {
		Response State       `json:"response"`
		Error    interface{} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return State{}, fmt.Errorf("decode bracket: status %d: %w", res.StatusCode, err)
	}
	if res.StatusCode != http.StatusOK {
		return State{}, fmt.Errorf("fetch bracket: status %d: %v", res.StatusCode, envelope.Error)
	}
	return envelope.Response, nil
}

// Build restores the fetched state into a bracket.
func (s State) Build() (*bracket.Bracket, error) {
	return bracket.New(s.Layout, s.Games)
}
