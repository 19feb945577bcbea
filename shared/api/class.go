package api

import "github.com/no-thing-project/hub-frontend/shared/domain"

type CreateClassRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description,omitempty"`
	GateId      domain.GateId         `json:"gate_id,omitempty"`
	Visibility  domain.Visibility     `json:"visibility,omitempty"`
	Type        domain.EntityType     `json:"type,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Settings    *domain.ClassSettings `json:"settings,omitempty"`
}

// PayloadName implements hub.Payload.
func (r CreateClassRequest) PayloadName() string { return r.Name }

type ClassListContent struct {
	Classes    []domain.Class    `json:"classes"`
	Pagination domain.Pagination `json:"pagination"`
}
