package api

import "github.com/no-thing-project/hub-frontend/shared/domain"

// FriendActionRequest targets the add/accept/reject/remove endpoints.
type FriendActionRequest struct {
	AnonymousId domain.AnonymousId `json:"anonymous_id" validate:"required"`
}

type FriendListContent struct {
	Friends    []domain.Friend   `json:"friends"`
	Pagination domain.Pagination `json:"pagination"`
}

type UserSearchContent struct {
	Users      []domain.UserSummary `json:"users"`
	Pagination domain.Pagination    `json:"pagination"`
}
