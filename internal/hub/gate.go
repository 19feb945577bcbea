package hub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
)

const gateBasePath = "/api/v1/gates"

// DefaultGateSettings are merged under caller-supplied overrides on gate
// creation; caller values win.
var DefaultGateSettings = domain.GateSettings{
	ClassCreationCost: 100,
	BoardCreationCost: 50,
	MaxMembers:        1000,
}

// GateFacade is the access facade for gates.
type GateFacade = Facade[domain.Gate, api.CreateGateRequest]

// NewGateFacade builds the gate facade around its own cache store.
func NewGateFacade(client *Client, retry RetryPolicy, onAuthFailure func()) *GateFacade {
	cache := NewCacheStore(DefaultCacheCapacity, DefaultCacheTTL)
	return NewFacade[domain.Gate, api.CreateGateRequest](gateOps{client}, cache, client.Tokens, retry, onAuthFailure)
}

type gateOps struct {
	client *Client
}

func (o gateOps) Kind() string { return "gate" }

func (o gateOps) List(ctx context.Context, filters Filters) ([]domain.Gate, domain.Pagination, error) {
	content, err := doJSON[api.GateListContent](ctx, o.client, http.MethodGet, gateBasePath, filters.query(), nil)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return content.Gates, content.Pagination, nil
}

func (o gateOps) Get(ctx context.Context, id string) (domain.Gate, error) {
	return doJSON[domain.Gate](ctx, o.client, http.MethodGet, gateBasePath+"/"+url.PathEscape(id), nil, nil)
}

func (o gateOps) ListMembers(ctx context.Context, id string) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodGet, gateBasePath+"/"+url.PathEscape(id)+"/members", nil, nil)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o gateOps) Create(ctx context.Context, payload api.CreateGateRequest) (domain.Gate, error) {
	settings := mergeGateSettings(payload.Settings)
	payload.Settings = &settings
	return doJSON[domain.Gate](ctx, o.client, http.MethodPost, gateBasePath, nil, payload)
}

func (o gateOps) Update(ctx context.Context, id string, payload api.CreateGateRequest) (domain.Gate, error) {
	return doJSON[domain.Gate](ctx, o.client, http.MethodPut, gateBasePath+"/"+url.PathEscape(id), nil, payload)
}

func (o gateOps) Delete(ctx context.Context, id string) error {
	return o.client.do(ctx, http.MethodDelete, gateBasePath+"/"+url.PathEscape(id), nil, nil, nil)
}

func (o gateOps) UpdateStatus(ctx context.Context, id, status string) (domain.Gate, error) {
	body := api.UpdateStatusRequest{Status: status}
	return doJSON[domain.Gate](ctx, o.client, http.MethodPut, gateBasePath+"/"+url.PathEscape(id)+"/status", nil, body)
}

func (o gateOps) Favorite(ctx context.Context, id string) (domain.Gate, error) {
	return doJSON[domain.Gate](ctx, o.client, http.MethodPost, gateBasePath+"/"+url.PathEscape(id)+"/favorite", nil, nil)
}

func (o gateOps) Unfavorite(ctx context.Context, id string) (domain.Gate, error) {
	return doJSON[domain.Gate](ctx, o.client, http.MethodPost, gateBasePath+"/"+url.PathEscape(id)+"/unfavorite", nil, nil)
}

func (o gateOps) AddMember(ctx context.Context, id string, req api.AddMemberRequest) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodPost, gateBasePath+"/"+url.PathEscape(id)+"/members", nil, req)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o gateOps) RemoveMember(ctx context.Context, id string, username domain.Username) ([]api.RawMember, error) {
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodDelete, gateBasePath+"/"+url.PathEscape(id)+"/members/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func (o gateOps) UpdateMemberRole(ctx context.Context, id string, username domain.Username, role domain.Role) ([]api.RawMember, error) {
	body := api.UpdateMemberRoleRequest{Role: role}
	content, err := doJSON[api.MemberListContent](ctx, o.client, http.MethodPut, gateBasePath+"/"+url.PathEscape(id)+"/members/"+url.PathEscape(username), nil, body)
	if err != nil {
		return nil, err
	}
	return content.Members, nil
}

func mergeGateSettings(override *domain.GateSettings) domain.GateSettings {
	merged := DefaultGateSettings
	if override == nil {
		return merged
	}
	if override.ClassCreationCost != 0 {
		merged.ClassCreationCost = override.ClassCreationCost
	}
	if override.BoardCreationCost != 0 {
		merged.BoardCreationCost = override.BoardCreationCost
	}
	if override.MaxMembers != 0 {
		merged.MaxMembers = override.MaxMembers
	}
	if override.AIModerationEnabled {
		merged.AIModerationEnabled = true
	}
	return merged
}
