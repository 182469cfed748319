package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"PickEm/api/auth"
	"PickEm/api/bracket"
	"PickEm/api/config"
	"PickEm/api/controllers"
	"PickEm/api/models"
	"PickEm/api/seed"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Rate limits are kept per client IP for the whole process, so every test
// server talks from its own address.
var clientCounter atomic.Int32

type testEnv struct {
	t      *testing.T
	server *controllers.Server
	db     *gorm.DB
	ip     string
}

func lockedConfig() config.Config {
	return config.Config{LockTime: time.Now().Add(-time.Hour), SessionIdle: time.Hour}
}

func openConfig() config.Config {
	return config.Config{LockTime: time.Now().Add(24 * time.Hour), SessionIdle: time.Hour}
}

func newTestEnv(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Configure("controllers-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	server := &controllers.Server{Config: cfg}
	require.NoError(t, server.Setup(db))
	require.NoError(t, seed.Load(db))

	return &testEnv{t: t, server: server, db: db, ip: nextClientIP()}
}

func nextClientIP() string {
	n := clientCounter.Add(1)
	return fmt.Sprintf("10.20.%d.%d", n/200, n%200+1)
}

// user stores an account directly and returns it with a bearer token.
func (e *testEnv) user(name string, admin bool) (*models.User, string) {
	e.t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", Password: "password123"}
	u.Prepare()
	_, err := u.SaveUser(e.db)
	require.NoError(e.t, err)
	if admin {
		require.NoError(e.t, e.db.Model(&u).Update("is_admin", true).Error)
	}
	token, err := auth.CreateToken(u.ID)
	require.NoError(e.t, err)
	return &u, token
}

func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(req, token)
}

func (e *testEnv) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	req.RemoteAddr = e.ip + ":40000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Router.ServeHTTP(w, req)
	return w
}

// game loads the stored game of a region round by its order.
func (e *testEnv) game(region string, round, order int) models.Game {
	e.t.Helper()
	var g models.Game
	require.NoError(e.t, e.db.Where("region = ? AND round = ? AND round_order = ?", region, round, order).Take(&g).Error)
	return g
}

func (e *testEnv) team(name string) models.Team {
	e.t.Helper()
	found, err := (&models.Team{}).FindTeamByName(e.db, name)
	require.NoError(e.t, err)
	return *found
}

func (e *testEnv) pickCount(uid uint) int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.db.Model(&models.UserPick{}).Where("user_id = ?", uid).Count(&n).Error)
	return n
}

type envelope[T any] struct {
	Status   int `json:"status"`
	Response T   `json:"response"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seedByID(games []bracket.GameSeed, id uint) bracket.GameSeed {
	for _, g := range games {
		if g.GameID == int(id) {
			return g
		}
	}
	return bracket.GameSeed{}
}

func position(p bracket.Position) *bracket.Position { return &p }

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
