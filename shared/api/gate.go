package api

import "github.com/no-thing-project/hub-frontend/shared/domain"

// Request DTOs

type CreateGateRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description,omitempty"`
	Visibility  domain.Visibility     `json:"visibility,omitempty"`
	Type        domain.EntityType     `json:"type,omitempty"`
	Settings    *domain.GateSettings `json:"settings,omitempty"`
}

// PayloadName implements hub.Payload.
func (r CreateGateRequest) PayloadName() string { return r.Name }

// Response DTOs

// GateListContent is the content of a gate list response.
type GateListContent struct {
	Gates      []domain.Gate     `json:"gates"`
	Pagination domain.Pagination `json:"pagination"`
}

// MemberListContent is the content of a member list response, shared by all
// entity kinds. Members arrive in raw form and are normalized client-side.
type MemberListContent struct {
	Members []RawMember `json:"members"`
}

// RawMember mirrors the loose member shapes the backend may return. The
// identity can live in anonymous_id, member_id or a nested user object.
type RawMember struct {
	AnonymousId domain.AnonymousId `json:"anonymous_id,omitempty"`
	MemberId    domain.AnonymousId `json:"member_id,omitempty"`
	Username    domain.Username    `json:"username,omitempty"`
	Role        domain.Role        `json:"role,omitempty"`
	JoinedAt    string             `json:"joined_at,omitempty"`
	User        *RawMemberUser     `json:"user,omitempty"`
}

type RawMemberUser struct {
	AnonymousId domain.AnonymousId `json:"anonymous_id,omitempty"`
	Username    domain.Username    `json:"username,omitempty"`
}
