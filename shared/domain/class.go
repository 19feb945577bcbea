package domain

import "time"

// ClassSettings control costs and limits inside a class.
type ClassSettings struct {
	BoardCreationCost   int  `json:"board_creation_cost,omitempty"`
	MaxBoards           int  `json:"max_boards,omitempty"`
	MaxMembers          int  `json:"max_members,omitempty"`
	AIModerationEnabled bool `json:"ai_moderation_enabled,omitempty"`
}

// Class is a topic/group container, optionally scoped to a gate.
type Class struct {
	ClassId     ClassId       `json:"class_id"`
	GateId      GateId        `json:"gate_id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Visibility  Visibility    `json:"visibility"`
	Type        EntityType    `json:"type"`
	Status      string        `json:"status,omitempty"`
	Settings    ClassSettings `json:"settings"`
	Tags        []string      `json:"tags,omitempty"`
	Members     []Member      `json:"members,omitempty"`
	IsFavorited bool          `json:"is_favorited"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
}

func (c Class) ID() string { return c.ClassId }
func (c Class) Favorited() bool { return c.IsFavorited }
func (c Class) MemberCap() int { return c.Settings.MaxMembers }
