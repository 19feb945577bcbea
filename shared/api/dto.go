package api

import "github.com/no-thing-project/hub-frontend/shared/domain"

// Every backend endpoint wraps its payload in a content envelope:
// lists as {"content": {"<kind>s": [...], "pagination": {...}}},
// details as {"content": {...}}.
type Response[T any] struct {
	Content T `json:"content"`
}

// ErrorResponse is the backend's error body shape.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Shared member-management requests

type AddMemberRequest struct {
	Username domain.Username `json:"username" validate:"required"`
	Role     domain.Role     `json:"role,omitempty"`
}

type UpdateMemberRoleRequest struct {
	Role domain.Role `json:"role" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
