// Package auth keeps the login sessions of the running process.
//
// Sessions live only in memory: a restart logs everybody out. There is no
// expiry and no limit on concurrent sessions per user.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/myit/inventory/internal/model"
)

// Session is the snapshot of a user taken at login. It never carries the
// password.
type Session struct {
	UserID    int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// NewSession snapshots u.
func NewSession(u *model.User) Session {
	return Session{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// tokenBytes is the amount of randomness in a session token.
const tokenBytes = 32

// Sessions maps opaque tokens to sessions. It is safe for concurrent use.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessions returns an empty session store.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]Session)}
}

// Create starts a session for s and returns its token.
func (st *Sessions) Create(s Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	st.mu.Lock()
	st.sessions[token] = s
	st.mu.Unlock()

	return token, nil
}

// Lookup returns the session for token.
func (st *Sessions) Lookup(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	st.mu.RLock()
	s, ok := st.sessions[token]
	st.mu.RUnlock()
	return s, ok
}

// Delete ends the session for token, if any.
func (st *Sessions) Delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

// DeleteUser ends every session of the given user and returns how many
// there were.
func (st *Sessions) DeleteUser(userID int64) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for token, s := range st.sessions {
		if s.UserID == userID {
			delete(st.sessions, token)
			n++
		}
	}
	return n
}

// SetRole changes the role recorded in every session of the given user.
func (st *Sessions) SetRole(userID int64, role string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for token, s := range st.sessions {
		if s.UserID == userID {
			s.Role = role
			st.sessions[token] = s
		}
	}
}

// Len returns the number of live sessions.
func (st *Sessions) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
