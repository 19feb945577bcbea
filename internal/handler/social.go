package handler

import (
	"net/http"

	mw "github.com/no-thing-project/hub-frontend/internal/middleware"
	"github.com/no-thing-project/hub-frontend/shared/api"
)

// === Social handlers ===

func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	friends, err := session.Social.Friends(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"friends": friends})
}

func (h *Handler) ListPendingFriends(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	pending, err := session.Social.Pending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"friends": pending})
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req api.FriendActionRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	friend, err := session.Social.AddFriend(r.Context(), req.AnonymousId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusCreated, friend)
}

func (h *Handler) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	var req api.FriendActionRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	friend, err := session.Social.AcceptFriend(r.Context(), req.AnonymousId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, friend)
}

func (h *Handler) RejectFriend(w http.ResponseWriter, r *http.Request) {
	var req api.FriendActionRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	if err := session.Social.RejectFriend(r.Context(), req.AnonymousId); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	var req api.FriendActionRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	if err := session.Social.RemoveFriend(r.Context(), req.AnonymousId); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	users, err := session.Social.SearchUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"users": users})
}
