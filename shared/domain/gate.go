package domain

import "time"

// GateSettings control costs and limits inside a gate. Zero values mean
// "unset"; the client merges per-kind defaults under caller overrides on
// creation.
type GateSettings struct {
	ClassCreationCost   int  `json:"class_creation_cost,omitempty"`
	BoardCreationCost   int  `json:"board_creation_cost,omitempty"`
	MaxMembers          int  `json:"max_members,omitempty"`
	AIModerationEnabled bool `json:"ai_moderation_enabled,omitempty"`
}

// Gate is a top-level community container owning classes and boards.
type Gate struct {
	GateId      GateId       `json:"gate_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Visibility  Visibility   `json:"visibility"`
	Type        EntityType   `json:"type"`
	Status      string       `json:"status,omitempty"`
	Settings    GateSettings `json:"settings"`
	Members     []Member     `json:"members,omitempty"`
	IsFavorited bool         `json:"is_favorited"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty"`
}

func (g Gate) ID() string { return g.GateId }
func (g Gate) Favorited() bool { return g.IsFavorited }
func (g Gate) MemberCap() int { return g.Settings.MaxMembers }
