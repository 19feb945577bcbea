package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/no-thing-project/hub-frontend/internal/middleware"
	"github.com/no-thing-project/hub-frontend/shared/api"
)

// === Gate handlers ===

func (h *Handler) ListGates(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	gates, err := session.Gates.FetchList(r.Context(), filtersFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, api.GateListContent{
		Gates:      gates,
		Pagination: session.Gates.Snapshot().Pagination,
	})
}

func (h *Handler) GetGate(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	gate, err := session.Gates.FetchDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{
		"gate":             gate,
		"members":          session.Gates.Snapshot().Members,
		"description_html": h.markdown.Render(gate.Description),
	})
}

func (h *Handler) CreateGate(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGateRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	gate, err := session.Gates.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	session.Gates.RefreshSoon(nil)
	writeContent(w, http.StatusCreated, gate)
}

func (h *Handler) UpdateGate(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGateRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	gate, err := session.Gates.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, gate)
}

func (h *Handler) DeleteGate(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	if err := session.Gates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateGateStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateStatusRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	gate, err := session.Gates.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, gate)
}

func (h *Handler) FavoriteGate(w http.ResponseWriter, r *http.Request) {
	h.toggleGateFavorite(w, r, false)
}

func (h *Handler) UnfavoriteGate(w http.ResponseWriter, r *http.Request) {
	h.toggleGateFavorite(w, r, true)
}

func (h *Handler) toggleGateFavorite(w http.ResponseWriter, r *http.Request, currentlyFavorited bool) {
	session := mw.SessionFrom(r.Context())
	gate, err := session.Gates.ToggleFavorite(r.Context(), chi.URLParam(r, "id"), currentlyFavorited)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, gate)
}

func (h *Handler) AddGateMember(w http.ResponseWriter, r *http.Request) {
	var req api.AddMemberRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	members, err := session.Gates.AddMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) RemoveGateMember(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	members, err := session.Gates.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) UpdateGateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateMemberRoleRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	members, err := session.Gates.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "username"), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}
