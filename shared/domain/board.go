package domain

import "time"

// BoardSettings control costs and limits inside a board.
type BoardSettings struct {
	TweetCost           int  `json:"tweet_cost,omitempty"`
	MaxTweets           int  `json:"max_tweets,omitempty"`
	MaxMembers          int  `json:"max_members,omitempty"`
	AIModerationEnabled bool `json:"ai_moderation_enabled,omitempty"`
}

// Board is a collaborative canvas, optionally scoped to a class and/or gate.
// Boards may nest: ParentBoardId links a child board to its parent.
// When both class and gate are set, the backend infers the gate from the
// class; the client never sends both.
type Board struct {
	BoardId       BoardId       `json:"board_id"`
	GateId        GateId        `json:"gate_id,omitempty"`
	ClassId       ClassId       `json:"class_id,omitempty"`
	ParentBoardId BoardId       `json:"parent_board_id,omitempty"`
	ChildBoardIds []BoardId     `json:"child_board_ids,omitempty"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	IsPublic      bool          `json:"is_public"`
	Type          EntityType    `json:"type"`
	Status        string        `json:"status,omitempty"`
	Settings      BoardSettings `json:"settings"`
	Members       []Member      `json:"members,omitempty"`
	IsFavorited   bool          `json:"is_favorited"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at,omitempty"`
}

func (b Board) ID() string { return b.BoardId }
func (b Board) Favorited() bool { return b.IsFavorited }
func (b Board) MemberCap() int { return b.Settings.MaxMembers }
