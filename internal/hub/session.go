package hub

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/no-thing-project/hub-frontend/shared/domain"
	"github.com/no-thing-project/hub-frontend/shared/logger"
)

// DefaultSessionIdleTTL evicts sessions nobody has touched for a while.
const DefaultSessionIdleTTL = time.Hour

// Session bundles the per-user facades and social client around one bearer
// token. Each facade owns an independent cache store; a logout resets them
// all and makes the token source return empty, so any in-flight or later
// operation fails with authentication-required.
type Session struct {
	token     domain.Token
	expiresAt time.Time
	loggedOut atomic.Bool

	Gates   *GateFacade
	Classes *ClassFacade
	Boards  *BoardFacade
	Social  *SocialClient
}

// NewSession wires the facades for one token. The session itself is the
// TokenSource, so logout is observed by every facade at once. apiKey may be
// empty.
func NewSession(baseURL, apiKey string, token domain.Token, retry RetryPolicy) *Session {
	s := &Session{
		token:     token,
		expiresAt: tokenExpiry(token),
	}
	client := NewClient(baseURL, s)
	client.ApiKey = apiKey
	s.Gates = NewGateFacade(client, retry, s.Logout)
	s.Classes = NewClassFacade(client, retry, s.Logout)
	s.Boards = NewBoardFacade(client, retry, s.Logout)
	s.Social = NewSocialClient(client, retry, s.Logout)
	return s
}

// Token implements TokenSource. After logout it returns empty.
func (s *Session) Token() domain.Token {
	if s.loggedOut.Load() {
		return ""
	}
	return s.token
}

// Expired reports whether the token's exp claim has passed. Tokens without a
// readable exp claim never report expired here; the backend still rejects
// them.
func (s *Session) Expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && now.After(s.expiresAt)
}

// LoggedOut reports whether the session was invalidated by an auth failure
// or an explicit logout.
func (s *Session) LoggedOut() bool {
	return s.loggedOut.Load()
}

// Logout invalidates the session and drops all facade state and caches.
// Fired automatically on a classified 401/403.
func (s *Session) Logout() {
	if !s.loggedOut.CompareAndSwap(false, true) {
		return
	}
	s.Gates.Reset()
	s.Classes.Reset()
	s.Boards.Reset()
	s.Social.Reset()
	logger.Log.Info("session logged out")
}

// tokenExpiry reads the exp claim without verifying the signature; the
// frontend only uses it to short-circuit obviously stale tokens, the backend
// verifies for real.
func tokenExpiry(token domain.Token) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(string(token), jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

type sessionHandle struct {
	session *Session
	timer   *time.Timer
}

// SessionManager keeps one Session per bearer token, evicting sessions idle
// longer than the TTL.
type SessionManager struct {
	baseURL string
	apiKey  string
	retry   RetryPolicy
	idleTTL time.Duration

	mu       sync.RWMutex
	sessions map[domain.Token]*sessionHandle
}

// NewSessionManager creates a manager. A non-positive idleTTL falls back to
// the default.
func NewSessionManager(baseURL, apiKey string, retry RetryPolicy, idleTTL time.Duration) *SessionManager {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &SessionManager{
		baseURL:  baseURL,
		apiKey:   apiKey,
		retry:    retry,
		idleTTL:  idleTTL,
		sessions: make(map[domain.Token]*sessionHandle),
	}
}

// Get returns the session for token, creating one on first use. Every call
// resets the idle-eviction timer.
func (m *SessionManager) Get(token domain.Token) *Session {
	m.mu.RLock()
	handle, ok := m.sessions[token]
	m.mu.RUnlock()
	if ok {
		handle.timer.Reset(m.idleTTL)
		return handle.session
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if handle, ok := m.sessions[token]; ok {
		handle.timer.Reset(m.idleTTL)
		return handle.session
	}
	session := NewSession(m.baseURL, m.apiKey, token, m.retry)
	handle = &sessionHandle{
		session: session,
		timer:   time.AfterFunc(m.idleTTL, func() { m.evict(token) }),
	}
	m.sessions[token] = handle
	return session
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionManager) evict(token domain.Token) {
	m.mu.Lock()
	handle, ok := m.sessions[token]
	if ok {
		delete(m.sessions, token)
	}
	m.mu.Unlock()
	if ok {
		handle.session.Logout()
	}
}
