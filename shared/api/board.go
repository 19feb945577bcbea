package api

import "github.com/no-thing-project/hub-frontend/shared/domain"

type CreateBoardRequest struct {
	Name          string                `json:"name" validate:"required"`
	Description   string                `json:"description,omitempty"`
	GateId        domain.GateId         `json:"gate_id,omitempty"`
	ClassId       domain.ClassId        `json:"class_id,omitempty"`
	ParentBoardId domain.BoardId        `json:"parent_board_id,omitempty"`
	IsPublic      *bool                 `json:"is_public,omitempty"`
	Type          domain.EntityType     `json:"type,omitempty"`
	Settings      *domain.BoardSettings `json:"settings,omitempty"`
}

// PayloadName implements hub.Payload.
func (r CreateBoardRequest) PayloadName() string { return r.Name }

type BoardListContent struct {
	Boards     []domain.Board    `json:"boards"`
	Pagination domain.Pagination `json:"pagination"`
}
