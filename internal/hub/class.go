package hub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
)

const classBasePath = "/api/v1/classes"

// DefaultClassSettings are merged under caller-supplied overrides on class
// creation; caller values win.
var DefaultClassSettings = domain.ClassSettings{
	BoardCreationCost: 50,
	MaxBoards:         100,
	MaxMembers:        500,
}

// ClassFacade is the access facade for classes.
type ClassFacade = Facade[domain.Class, api.CreateClassRequest]

// NewClassFacade builds the class facade around its own cache store.
func NewClassFacade(client *Client, retry RetryPolicy, onAuthFailure func()) *ClassFacade {
	cache := NewCacheStore(DefaultCacheCapacity, DefaultCacheTTL)
	return NewFacade[domain.Class, api.CreateClassRequest](classOps{client}, cache, client.Tokens, retry, onAuthFailure)
}

type classOps struct {
	client *Client
}

func (o classOps) Kind() string { return "class" }

// List fetches classes. A gate_id filter selects the gate-scoped listing
// endpoint instead of a query parameter.
func (o classOps) List(ctx context.Context, filters Filters) ([]domain.Class, domain.Pagination, error) {
	path := classBasePath
	if gateId := filters["gate_id"]; gateId != "" {
		path = classBasePath + "/gate/" + url.PathEscape(gateId)
		filters = filters.without("gate_id")
	}
	content, err := doJSON[api.ClassListContent](ctx, o.client, http.MethodGet, path, filters.query(), nil)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return content.Classes, content.Pagination, nil
}

func (o classOps) Get(ctx context.Context, id string) (domain.Class, error) {
	return doJSON[domain.Class](ctx, o.client, http.MethodGet, classBasePath+"/"+url.PathEscape(id), nil, nil)
}

func (o classOps) ListMembers(ctx context.Context, id string) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodGet, classBasePath+"/"+url.PathEscape(id)+"/members", nil, nil)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o classOps) Create(ctx context.Context, payload api.CreateClassRequest) (domain.Class, error) {
	settings := mergeClassSettings(payload.Settings)
	payload.Settings = &settings
	return doJSON[domain.Class](ctx, o.client, http.MethodPost, classBasePath, nil, payload)
}

func (o classOps) Update(ctx context.Context, id string, payload api.CreateClassRequest) (domain.Class, error) {
	return doJSON[domain.Class](ctx, o.client, http.MethodPut, classBasePath+"/"+url.PathEscape(id), nil, payload)
}

func (o classOps) Delete(ctx context.Context, id string) error {
	return o.client.do(ctx, http.MethodDelete, classBasePath+"/"+url.PathEscape(id), nil, nil, nil)
}

func (o classOps) UpdateStatus(ctx context.Context, id, status string) (domain.Class, error) {
	body := api.UpdateStatusRequest{Status: status}
	return doJSON[domain.Class](ctx, o.client, http.MethodPut, classBasePath+"/"+url.PathEscape(id)+"/status", nil, body)
}

func (o classOps) Favorite(ctx context.Context, id string) (domain.Class, error) {
	return doJSON[domain.Class](ctx, o.client, http.MethodPost, classBasePath+"/"+url.PathEscape(id)+"/favorite", nil, nil)
}

func (o classOps) Unfavorite(ctx context.Context, id string) (domain.Class, error) {
	return doJSON[domain.Class](ctx, o.client, http.MethodPost, classBasePath+"/"+url.PathEscape(id)+"/unfavorite", nil, nil)
}

func (o classOps) AddMember(ctx context.Context, id string, req api.AddMemberRequest) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodPost, classBasePath+"/"+url.PathEscape(id)+"/members", nil, req)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o classOps) RemoveMember(ctx context.Context, id string, username domain.Username) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodDelete, classBasePath+"/"+url.PathEscape(id)+"/members/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o classOps) UpdateMemberRole(ctx context.Context, id string, username domain.Username, role domain.Role) ([]api.RawMember, error) {
	body := api.UpdateMemberRoleRequest{Role: role}
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodPut, classBasePath+"/"+url.PathEscape(id)+"/members/"+url.PathEscape(username), nil, body)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func mergeClassSettings(override *domain.ClassSettings) domain.ClassSettings {
	merged := DefaultClassSettings
	if override == nil {
		return merged
	}
	if override.BoardCreationCost != 0 {
		merged.BoardCreationCost = override.BoardCreationCost
	}
	if override.MaxBoards != 0 {
		merged.MaxBoards = override.MaxBoards
	}
	if override.MaxMembers != 0 {
		merged.MaxMembers = override.MaxMembers
	}
	if override.AIModerationEnabled {
		merged.AIModerationEnabled = true
	}
	return merged
}
