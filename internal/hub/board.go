package hub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
)

const boardBasePath = "/api/v1/boards"

// DefaultBoardSettings are merged under caller-supplied overrides on board
// creation; caller values win.
var DefaultBoardSettings = domain.BoardSettings{
	TweetCost:  1,
	MaxTweets:  10000,
	MaxMembers: 200,
}

// BoardFacade is the access facade for boards.
type BoardFacade = Facade[domain.Board, api.CreateBoardRequest]

// NewBoardFacade builds the board facade around its own cache store.
func NewBoardFacade(client *Client, retry RetryPolicy, onAuthFailure func()) *BoardFacade {
	cache := NewCacheStore(DefaultCacheCapacity, DefaultCacheTTL)
	return NewFacade[domain.Board, api.CreateBoardRequest](boardOps{client}, cache, client.Tokens, retry, onAuthFailure)
}

type boardOps struct {
	client *Client
}

func (o boardOps) Kind() string { return "board" }

// List fetches boards. gate_id, class_id and board_id filters select the
// scoped listing endpoints (boards of a gate, of a class, children of a
// board) instead of query parameters.
func (o boardOps) List(ctx context.Context, filters Filters) ([]domain.Board, domain.Pagination, error) {
	path := boardBasePath
	switch {
	case filters["gate_id"] != "":
		path = boardBasePath + "/gates/" + url.PathEscape(filters["gate_id"]) + "/boards"
		filters = filters.without("gate_id")
	case filters["class_id"] != "":
		path = boardBasePath + "/classes/" + url.PathEscape(filters["class_id"]) + "/boards"
		filters = filters.without("class_id")
	case filters["board_id"] != "":
		path = boardBasePath + "/boards/" + url.PathEscape(filters["board_id"]) + "/boards"
		filters = filters.without("board_id")
	}
	content, err := doJSON[api.BoardListContent](ctx, o.client, http.MethodGet, path, filters.query(), nil)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return content.Boards, content.Pagination, nil
}

func (o boardOps) Get(ctx context.Context, id string) (domain.Board, error) {
	return doJSON[domain.Board](ctx, o.client, http.MethodGet, boardBasePath+"/"+url.PathEscape(id), nil, nil)
}

func (o boardOps) ListMembers(ctx context.Context, id string) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodGet, boardBasePath+"/"+url.PathEscape(id)+"/members", nil, nil)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

// Create posts a new board. A payload with a parent board goes to the
// nested-board creation endpoint; the child is linked under its parent
// server-side.
func (o boardOps) Create(ctx context.Context, payload api.CreateBoardRequest) (domain.Board, error) {
	settings := mergeBoardSettings(payload.Settings)
	payload.Settings = &settings
	path := boardBasePath
	if payload.ParentBoardId != "" {
		path = boardBasePath + "/boards/" + url.PathEscape(payload.ParentBoardId) + "/boards"
	}
	return doJSON[domain.Board](ctx, o.client, http.MethodPost, path, nil, payload)
}

func (o boardOps) Update(ctx context.Context, id string, payload api.CreateBoardRequest) (domain.Board, error) {
	return doJSON[domain.Board](ctx, o.client, http.MethodPut, boardBasePath+"/"+url.PathEscape(id), nil, payload)
}

func (o boardOps) Delete(ctx context.Context, id string) error {
	return o.client.do(ctx, http.MethodDelete, boardBasePath+"/"+url.PathEscape(id), nil, nil, nil)
}

func (o boardOps) UpdateStatus(ctx context.Context, id, status string) (domain.Board, error) {
	body := api.UpdateStatusRequest{Status: status}
	return doJSON[domain.Board](ctx, o.client, http.MethodPut, boardBasePath+"/"+url.PathEscape(id)+"/status", nil, body)
}

func (o boardOps) Favorite(ctx context.Context, id string) (domain.Board, error) {
	return doJSON[domain.Board](ctx, o.client, http.MethodPost, boardBasePath+"/"+url.PathEscape(id)+"/favorite", nil, nil)
}

func (o boardOps) Unfavorite(ctx context.Context, id string) (domain.Board, error) {
	return doJSON[domain.Board](ctx, o.client, http.MethodPost, boardBasePath+"/"+url.PathEscape(id)+"/unfavorite", nil, nil)
}

func (o boardOps) AddMember(ctx context.Context, id string, req api.AddMemberRequest) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodPost, boardBasePath+"/"+url.PathEscape(id)+"/members", nil, req)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o boardOps) RemoveMember(ctx context.Context, id string, username domain.Username) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodDelete, boardBasePath+"/"+url.PathEscape(id)+"/members/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o boardOps) UpdateMemberRole(ctx context.Context, id string, username domain.Username, role domain.Role) ([]api.RawMember, error) {
	body := api.UpdateMemberRoleRequest{Role: role}
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodPut, boardBasePath+"/"+url.PathEscape(id)+"/members/"+url.PathEscape(username), nil, body)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func mergeBoardSettings(override *domain.BoardSettings) domain.BoardSettings {
	merged := DefaultBoardSettings
	if override == nil {
		return merged
	}
	if override.TweetCost != 0 {
		merged.TweetCost = override.TweetCost
	}
	if override.MaxTweets != 0 {
		merged.MaxTweets = override.MaxTweets
	}
	if override.MaxMembers != 0 {
		merged.MaxMembers = override.MaxMembers
	}
	if override.AIModerationEnabled {
		merged.AIModerationEnabled = true
	}
	return merged
}
