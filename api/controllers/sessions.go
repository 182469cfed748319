package controllers

import (
	"strconv"
	"sync"
	"time"

	"PickEm/api/bracket"
	"PickEm/api/submit"

	"github.com/google/uuid"
)

// pickSession is one user's in-memory bracket. mu serializes selections.
type pickSession struct {
	mu         sync.Mutex
	ID         string
	UserID     uint
	Bracket    *bracket.Bracket
	FinalScore string
	Skipped    int
	Notice     submit.Notice
	lastSeen   time.Time
}

func newPickSession(uid uint, b *bracket.Bracket, finalScore *int, now time.Time) *pickSession {
	s := &pickSession{
		ID:       uuid.NewString(),
		UserID:   uid,
		Bracket:  b,
		lastSeen: now,
	}
	if finalScore != nil {
		s.FinalScore = strconv.Itoa(*finalScore)
	}
	return s
}

func (s *pickSession) touch(now time.Time) {
	s.lastSeen = now
}

type sessionStore struct {
	mu     sync.Mutex
	byUser map[uint]*pickSession
	idle   time.Duration
}

func newSessionStore(idle time.Duration) *sessionStore {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &sessionStore{byUser: make(map[uint]*pickSession), idle: idle}
}

func (st *sessionStore) get(uid uint) (*pickSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.byUser[uid]
	return s, ok
}

// put stores s unless another session for the same user got there first,
// and returns whichever session is current.
func (st *sessionStore) put(s *pickSession) *pickSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	if cur, ok := st.byUser[s.UserID]; ok {
		return cur
	}
	st.byUser[s.UserID] = s
	return s
}

func (st *sessionStore) drop(uid uint) {
	st.mu.Lock()
	delete(st.byUser, uid)
	st.mu.Unlock()
}

// SweepIdle removes sessions not touched within the idle window.
func (st *sessionStore) SweepIdle(now time.Time) int {
	cutoff := now.Add(-st.idle)

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for uid, s := range st.byUser {
		if !s.mu.TryLock() {
			continue
		}
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.byUser, uid)
			n++
		}
	}
	return n
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byUser)
}
