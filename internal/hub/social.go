package hub

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
	"github.com/no-thing-project/hub-frontend/shared/logger"
)

const socialBasePath = "/api/v1/social"

// SocialClient drives the friend lifecycle and user search. Friend and
// pending lists are patched optimistically on mutation; the backend remains
// authoritative on the next fetch.
type SocialClient struct {
	client         *Client
	retry          RetryPolicy
	onAuthFailure  func()
	searchDebounce *Debouncer

	mu      sync.RWMutex
	friends []domain.Friend
	pending []domain.Friend
	results []domain.UserSummary
	loading bool
	lastErr error
}

// SocialSnapshot is a point-in-time copy of the social state.
type SocialSnapshot struct {
	Friends []domain.Friend
	Pending []domain.Friend
	Results []domain.UserSummary
	Loading bool
	LastErr error
}

// NewSocialClient builds the social client. onAuthFailure fires on a
// classified 401/403; it may be nil.
func NewSocialClient(client *Client, retry RetryPolicy, onAuthFailure func()) *SocialClient {
	return &SocialClient{
		client:         client,
		retry:          retry,
		onAuthFailure:  onAuthFailure,
		searchDebounce: NewDebouncer(DefaultDebounceDelay),
	}
}

// Friends fetches the accepted friend list.
func (s *SocialClient) Friends(ctx context.Context) ([]domain.Friend, error) {
	if err := s.requireToken(); err != nil {
		return nil, s.fail(err)
	}
	s.setLoading()
	defer s.endLoading()

	content, err := retryWithData(ctx, s.retry, func() (api.FriendListContent, error) {
		return doJSON[api.FriendListContent](ctx, s.client, http.MethodGet, socialBasePath+"/friends", nil, nil)
	})
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.friends = append([]domain.Friend(nil), content.Friends...)
	s.mu.Unlock()
	return content.Friends, nil
}

// Pending fetches the directional pending-request list.
func (s *SocialClient) Pending(ctx context.Context) ([]domain.Friend, error) {
	if err := s.requireToken(); err != nil {
		return nil, s.fail(err)
	}
	s.setLoading()
	defer s.endLoading()

	content, err := retryWithData(ctx, s.retry, func() (api.FriendListContent, error) {
		return doJSON[api.FriendListContent](ctx, s.client, http.MethodGet, socialBasePath+"/friends/pending", nil, nil)
	})
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.pending = append([]domain.Friend(nil), content.Friends...)
	s.mu.Unlock()
	return content.Friends, nil
}

// AddFriend sends a friend request; the returned pending edge is appended
// to local state.
func (s *SocialClient) AddFriend(ctx context.Context, anonymousId domain.AnonymousId) (*domain.Friend, error) {
	friend, err := s.friendAction(ctx, "add", anonymousId)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.pending = append(s.pending, *friend)
	s.mu.Unlock()
	return friend, nil
}

// AcceptFriend accepts a pending request and moves the edge from pending to
// friends.
func (s *SocialClient) AcceptFriend(ctx context.Context, anonymousId domain.AnonymousId) (*domain.Friend, error) {
	friend, err := s.friendAction(ctx, "accept", anonymousId)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.pending = removeFriend(s.pending, anonymousId)
	s.friends = append(s.friends, *friend)
	s.mu.Unlock()
	return friend, nil
}

// RejectFriend rejects a pending request.
func (s *SocialClient) RejectFriend(ctx context.Context, anonymousId domain.AnonymousId) error {
	if _, err := s.friendAction(ctx, "reject", anonymousId); err != nil {
		return err
	}
	s.mu.Lock()
	s.pending = removeFriend(s.pending, anonymousId)
	s.mu.Unlock()
	return nil
}

// RemoveFriend dissolves an accepted friendship.
func (s *SocialClient) RemoveFriend(ctx context.Context, anonymousId domain.AnonymousId) error {
	if _, err := s.friendAction(ctx, "remove", anonymousId); err != nil {
		return err
	}
	s.mu.Lock()
	s.friends = removeFriend(s.friends, anonymousId)
	s.mu.Unlock()
	return nil
}

// SearchUsers queries the user directory.
func (s *SocialClient) SearchUsers(ctx context.Context, query string) ([]domain.UserSummary, error) {
	if query == "" {
		return nil, s.fail(internal_errors.MissingField("query"))
	}
	if err := s.requireToken(); err != nil {
		return nil, s.fail(err)
	}
	s.setLoading()
	defer s.endLoading()

	q := url.Values{"q": []string{query}}
	content, err := retryWithData(ctx, s.retry, func() (api.UserSearchContent, error) {
		return doJSON[api.UserSearchContent](ctx, s.client, http.MethodGet, socialBasePath+"/users/search", q, nil)
	})
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.results = append([]domain.UserSummary(nil), content.Users...)
	s.mu.Unlock()
	return content.Users, nil
}

// SearchSoon schedules a debounced background search; rapid keystrokes
// coalesce into one directory query after the quiet period.
func (s *SocialClient) SearchSoon(query string) {
	s.searchDebounce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultHTTPTimeout)
		defer cancel()
		if _, err := s.SearchUsers(ctx, query); err != nil {
			logger.Log.Debug("debounced user search failed", "error", err)
		}
	})
}

// Snapshot copies the current social state.
func (s *SocialClient) Snapshot() SocialSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SocialSnapshot{
		Friends: append([]domain.Friend(nil), s.friends...),
		Pending: append([]domain.Friend(nil), s.pending...),
		Results: append([]domain.UserSummary(nil), s.results...),
		Loading: s.loading,
		LastErr: s.lastErr,
	}
}

// Reset drops all social state. Called on logout.
func (s *SocialClient) Reset() {
	s.searchDebounce.Stop()
	s.mu.Lock()
	s.friends = nil
	s.pending = nil
	s.results = nil
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *SocialClient) friendAction(ctx context.Context, action string, anonymousId domain.AnonymousId) (*domain.Friend, error) {
	if anonymousId == "" {
		return nil, s.fail(internal_errors.MissingField("anonymous_id"))
	}
	if err := s.requireToken(); err != nil {
		return nil, s.fail(err)
	}
	s.setLoading()
	defer s.endLoading()

	body := api.FriendActionRequest{AnonymousId: anonymousId}
	friend, err := retryWithData(ctx, s.retry, func() (domain.Friend, error) {
		return doJSON[domain.Friend](ctx, s.client, http.MethodPost, socialBasePath+"/friends/"+action, nil, body)
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return &friend, nil
}

func (s *SocialClient) requireToken() error {
	if s.client.Tokens.Token() == "" {
		return internal_errors.ErrAuthRequired
	}
	return nil
}

func (s *SocialClient) fail(err error) error {
	switch internal_errors.Classify(err) {
	case internal_errors.KindCancelled:
		return err
	case internal_errors.KindNotFound:
		err = internal_errors.NotFound("user")
	case internal_errors.KindAuthFailure:
		if s.onAuthFailure != nil {
			s.onAuthFailure()
		}
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	logger.Log.Warn("social operation failed", "error", err)
	return err
}

func (s *SocialClient) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *SocialClient) endLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func removeFriend(friends []domain.Friend, anonymousId domain.AnonymousId) []domain.Friend {
	kept := friends[:0]
	for _, f := range friends {
		if f.AnonymousId != anonymousId {
			kept = append(kept, f)
		}
	}
	return kept
}
