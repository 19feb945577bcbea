package hub

import (
	"time"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
)

const unknownUsername = "Unknown"

// NormalizeMember maps one loose backend member shape onto the canonical
// record. Identity is coalesced from anonymous_id, member_id or the nested
// user object, a missing role defaults to viewer and a missing username to
// "Unknown".
func NormalizeMember(raw api.RawMember) domain.Member {
	m := domain.Member{
		AnonymousId: raw.AnonymousId,
		Username:    raw.Username,
		Role:        raw.Role,
	}
	if m.AnonymousId == "" {
		m.AnonymousId = raw.MemberId
	}
	if raw.User != nil {
		if m.AnonymousId == "" {
			m.AnonymousId = raw.User.AnonymousId
		}
		if m.Username == "" {
			m.Username = raw.User.Username
		}
	}
	if m.Username == "" {
		m.Username = unknownUsername
	}
	if !m.Role.Valid() {
		m.Role = domain.RoleViewer
	}
	if raw.JoinedAt != "" {
		if t, err := time.Parse(time.RFC3339, raw.JoinedAt); err == nil {
			m.JoinedAt = t
		}
	}
	return m
}

// NormalizeMembers normalizes a raw member list and collapses duplicate
// identities, keeping the last occurrence. So repeating a role update never
// yields duplicate member rows.
func NormalizeMembers(raw []api.RawMember) []domain.Member {
	members := make([]domain.Member, 0, len(raw))
	index := make(map[domain.AnonymousId]int, len(raw))
	for _, r := range raw {
		m := NormalizeMember(r)
		if i, seen := index[m.AnonymousId]; seen && m.AnonymousId != "" {
			members[i] = m
			continue
		}
		index[m.AnonymousId] = len(members)
		members = append(members, m)
	}
	return members
}

func findMember(members []domain.Member, username domain.Username) (domain.Member, bool) {
	for _, m := range members {
		if m.Username == username {
			return m, true
		}
	}
	return domain.Member{}, false
}
