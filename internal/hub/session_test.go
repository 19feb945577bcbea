package hub

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/no-thing-project/hub-frontend/shared/domain"
)

func signedToken(t *testing.T, exp time.Time) domain.Token {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession(t *testing.T) {
	t.Run("exp claim is read without verification", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		s := NewSession("http://backend", "", signedToken(t, exp), testRetryPolicy())

		assert.False(t, s.Expired(time.Now()))
		assert.True(t, s.Expired(exp.Add(time.Second)))
	})

	t.Run("garbage token never reports expired locally", func(t *testing.T) {
		s := NewSession("http://backend", "", "not-a-jwt", testRetryPolicy())
		assert.False(t, s.Expired(time.Now().Add(100*365*24*time.Hour)))
	})

	t.Run("token goes empty after logout", func(t *testing.T) {
		s := NewSession("http://backend", "", "sometoken", testRetryPolicy())
		assert.Equal(t, "sometoken", s.Token())

		s.Logout()
		assert.Empty(t, s.Token())
		assert.True(t, s.LoggedOut())
	})

	t.Run("logout resets every facade", func(t *testing.T) {
		s := NewSession("http://backend", "", "sometoken", testRetryPolicy())
		s.Gates.mu.Lock()
		s.Gates.list = []domain.Gate{{GateId: "g1"}}
		s.Gates.mu.Unlock()

		s.Logout()
		assert.Empty(t, s.Gates.Snapshot().List)
		assert.Empty(t, s.Classes.Snapshot().List)
		assert.Empty(t, s.Boards.Snapshot().List)
	})

	t.Run("logout is idempotent", func(t *testing.T) {
		s := NewSession("http://backend", "", "sometoken", testRetryPolicy())
		s.Logout()
		s.Logout()
		assert.True(t, s.LoggedOut())
	})
}

func TestSessionManager(t *testing.T) {
	t.Run("same token yields the same session", func(t *testing.T) {
		m := NewSessionManager("http://backend", "", testRetryPolicy(), time.Minute)
		a := m.Get("t1")
		b := m.Get("t1")
		assert.Same(t, a, b)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("distinct tokens get isolated sessions", func(t *testing.T) {
		m := NewSessionManager("http://backend", "", testRetryPolicy(), time.Minute)
		a := m.Get("t1")
		b := m.Get("t2")
		assert.NotSame(t, a, b)
		assert.Equal(t, 2, m.Len())

		a.Gates.mu.Lock()
		a.Gates.list = []domain.Gate{{GateId: "g1"}}
		a.Gates.mu.Unlock()
		assert.Empty(t, b.Gates.Snapshot().List, "state never crosses sessions")
	})

	t.Run("idle sessions are evicted and logged out", func(t *testing.T) {
		m := NewSessionManager("http://backend", "", testRetryPolicy(), 30*time.Millisecond)
		s := m.Get("t1")

		assert.Eventually(t, func() bool { return m.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
		assert.True(t, s.LoggedOut())
	})

	t.Run("activity keeps a session alive", func(t *testing.T) {
		m := NewSessionManager("http://backend", "", testRetryPolicy(), 60*time.Millisecond)
		first := m.Get("t1")
		for i := 0; i < 5; i++ {
			time.Sleep(20 * time.Millisecond)
			assert.Same(t, first, m.Get("t1"))
		}
		assert.Equal(t, 1, m.Len())
	})

	t.Run("non-positive TTL falls back to default", func(t *testing.T) {
		m := NewSessionManager("http://backend", "", testRetryPolicy(), 0)
		assert.Equal(t, DefaultSessionIdleTTL, m.idleTTL)
	})
}
