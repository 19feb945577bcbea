package domain

import "time"

// Pagination metadata returned by every list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Member of a gate, class or board.
//
// Backends have historically returned members under several field names
// (anonymous_id, member_id, nested user object); NormalizeMember in the hub
// package coalesces those into this canonical shape at the client boundary.
type Member struct {
	AnonymousId AnonymousId `json:"anonymous_id"`
	Username    Username    `json:"username"`
	Role        Role        `json:"role"`
	JoinedAt    time.Time   `json:"joined_at,omitempty"`
}

// Friend is one edge of a friend relationship. Pending requests are
// directional: Requester sent the request to AnonymousId.
type Friend struct {
	AnonymousId AnonymousId  `json:"anonymous_id"`
	Username    Username     `json:"username"`
	Status      FriendStatus `json:"status"`
	Requester   AnonymousId  `json:"requester,omitempty"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
}

// UserSummary is a search result from the user directory.
type UserSummary struct {
	AnonymousId AnonymousId `json:"anonymous_id"`
	Username    Username    `json:"username"`
	IsFriend    bool        `json:"is_friend,omitempty"`
}
