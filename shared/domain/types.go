package domain

type (
	GateId  = string
	ClassId = string
	BoardId = string

	AnonymousId = string
	Username    = string

	Token = string
)

// Role is a member role inside a gate, class or board.
type Role string

const (
	RoleViewer    Role = "viewer"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleOwner     Role = "owner"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleModerator, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// Visibility of a gate or class.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
	VisibilityPrivate    Visibility = "private"
)

// EntityType distinguishes personal/group classes and boards and
// community/organization gates.
type EntityType string

const (
	TypePersonal     EntityType = "personal"
	TypeGroup        EntityType = "group"
	TypeCommunity    EntityType = "community"
	TypeOrganization EntityType = "organization"
)

// FriendStatus of a friend relationship.
type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
)
