package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/no-thing-project/hub-frontend/shared/domain"
	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
)

// socialBackend fakes the social endpoints with a mutable friend set.
type socialBackend struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newSocialBackend(t *testing.T) *socialBackend {
	t.Helper()
	b := &socialBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/social/friends", func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		w.Write([]byte(`{"content":{"friends":[{"anonymous_id":"a1","username":"kate","status":"accepted"}],"pagination":{}}}`))
	})
	mux.HandleFunc("GET /api/v1/social/friends/pending", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":{"friends":[{"anonymous_id":"a2","username":"omar","status":"pending","requester":"a2"}],"pagination":{}}}`))
	})
	mux.HandleFunc("POST /api/v1/social/friends/{action}", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AnonymousId string `json:"anonymous_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		status := domain.FriendPending
		if r.PathValue("action") == "accept" {
			status = domain.FriendAccepted
		}
		json.NewEncoder(w).Encode(map[string]any{"content": domain.Friend{
			AnonymousId: req.AnonymousId,
			Username:    "resolved",
			Status:      status,
		}})
	})
	mux.HandleFunc("GET /api/v1/social/users/search", func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		if r.URL.Query().Get("q") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"content":{"users":[{"anonymous_id":"a9","username":"match"}],"pagination":{}}}`))
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func newTestSocialClient(t *testing.T) (*SocialClient, *socialBackend) {
	b := newSocialBackend(t)
	c := NewClient(b.server.URL, StaticToken("tok"))
	return NewSocialClient(c, testRetryPolicy(), nil), b
}

func TestSocialClient(t *testing.T) {
	t.Run("friends and pending populate state", func(t *testing.T) {
		s, _ := newTestSocialClient(t)

		friends, err := s.Friends(context.Background())
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, domain.FriendAccepted, friends[0].Status)

		pending, err := s.Pending(context.Background())
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "a2", pending[0].Requester, "pending requests keep their direction")

		snap := s.Snapshot()
		assert.Len(t, snap.Friends, 1)
		assert.Len(t, snap.Pending, 1)
	})

	t.Run("add appends the new edge to pending", func(t *testing.T) {
		s, _ := newTestSocialClient(t)

		friend, err := s.AddFriend(context.Background(), "a7")
		require.NoError(t, err)
		assert.Equal(t, domain.FriendPending, friend.Status)

		snap := s.Snapshot()
		require.Len(t, snap.Pending, 1)
		assert.Equal(t, "a7", snap.Pending[0].AnonymousId)
	})

	t.Run("accept moves the edge from pending to friends", func(t *testing.T) {
		s, _ := newTestSocialClient(t)
		_, err := s.Pending(context.Background())
		require.NoError(t, err)

		friend, err := s.AcceptFriend(context.Background(), "a2")
		require.NoError(t, err)
		assert.Equal(t, domain.FriendAccepted, friend.Status)

		snap := s.Snapshot()
		assert.Empty(t, snap.Pending)
		require.Len(t, snap.Friends, 1)
		assert.Equal(t, "a2", snap.Friends[0].AnonymousId)
	})

	t.Run("reject drops the pending edge", func(t *testing.T) {
		s, _ := newTestSocialClient(t)
		_, err := s.Pending(context.Background())
		require.NoError(t, err)

		require.NoError(t, s.RejectFriend(context.Background(), "a2"))
		assert.Empty(t, s.Snapshot().Pending)
	})

	t.Run("remove drops the accepted edge", func(t *testing.T) {
		s, _ := newTestSocialClient(t)
		_, err := s.Friends(context.Background())
		require.NoError(t, err)

		require.NoError(t, s.RemoveFriend(context.Background(), "a1"))
		assert.Empty(t, s.Snapshot().Friends)
	})

	t.Run("friend actions require an id", func(t *testing.T) {
		s, _ := newTestSocialClient(t)
		_, err := s.AddFriend(context.Background(), "")
		assert.Equal(t, internal_errors.KindValidation, internal_errors.Classify(err))
	})

	t.Run("search requires a query and fills results", func(t *testing.T) {
		s, _ := newTestSocialClient(t)

		_, err := s.SearchUsers(context.Background(), "")
		assert.Equal(t, internal_errors.KindValidation, internal_errors.Classify(err))

		users, err := s.SearchUsers(context.Background(), "ma")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "match", users[0].Username)
		assert.Len(t, s.Snapshot().Results, 1)
	})

	t.Run("debounced search coalesces keystrokes", func(t *testing.T) {
		b := newSocialBackend(t)
		c := NewClient(b.server.URL, StaticToken("tok"))
		s := NewSocialClient(c, testRetryPolicy(), nil)
		s.searchDebounce = NewDebouncer(20 * time.Millisecond)

		for _, q := range []string{"m", "ma", "mat"} {
			s.SearchSoon(q)
		}

		assert.Eventually(t, func() bool {
			return len(s.Snapshot().Results) == 1
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, int32(1), b.calls.Load())
	})

	t.Run("reset drops all social state", func(t *testing.T) {
		s, _ := newTestSocialClient(t)
		_, err := s.Friends(context.Background())
		require.NoError(t, err)

		s.Reset()
		snap := s.Snapshot()
		assert.Empty(t, snap.Friends)
		assert.Empty(t, snap.Pending)
		assert.Empty(t, snap.Results)
		assert.Nil(t, snap.LastErr)
	})

	t.Run("operations without a token fail fast", func(t *testing.T) {
		b := newSocialBackend(t)
		c := NewClient(b.server.URL, StaticToken(""))
		s := NewSocialClient(c, testRetryPolicy(), nil)

		_, err := s.Friends(context.Background())
		require.ErrorIs(t, err, internal_errors.ErrAuthRequired)
		assert.Equal(t, int32(0), b.calls.Load())
	})
}
