package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/no-thing-project/hub-frontend/internal/middleware"
	"github.com/no-thing-project/hub-frontend/shared/api"
)

// === Class handlers ===

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	h.listClasses(w, r, "")
}

// ListGateClasses serves /gates/{id}/classes.
func (h *Handler) ListGateClasses(w http.ResponseWriter, r *http.Request) {
	h.listClasses(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) listClasses(w http.ResponseWriter, r *http.Request, gateId string) {
	filters := filtersFrom(r)
	if gateId != "" {
		if filters == nil {
			filters = make(map[string]string, 1)
		}
		filters["gate_id"] = gateId
	}
	session := mw.SessionFrom(r.Context())
	classes, err := session.Classes.FetchList(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, api.ClassListContent{
		Classes:    classes,
		Pagination: session.Classes.Snapshot().Pagination,
	})
}

func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	class, err := session.Classes.FetchDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{
		"class":            class,
		"members":          session.Classes.Snapshot().Members,
		"description_html": h.markdown.Render(class.Description),
	})
}

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req api.CreateClassRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	class, err := session.Classes.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	session.Classes.RefreshSoon(nil)
	writeContent(w, http.StatusCreated, class)
}

func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req api.CreateClassRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	class, err := session.Classes.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, class)
}

func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	if err := session.Classes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateClassStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateStatusRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	class, err := session.Classes.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, class)
}

func (h *Handler) FavoriteClass(w http.ResponseWriter, r *http.Request) {
	h.toggleClassFavorite(w, r, false)
}

func (h *Handler) UnfavoriteClass(w http.ResponseWriter, r *http.Request) {
	h.toggleClassFavorite(w, r, true)
}

func (h *Handler) toggleClassFavorite(w http.ResponseWriter, r *http.Request, currentlyFavorited bool) {
	session := mw.SessionFrom(r.Context())
	class, err := session.Classes.ToggleFavorite(r.Context(), chi.URLParam(r, "id"), currentlyFavorited)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, class)
}

func (h *Handler) AddClassMember(w http.ResponseWriter, r *http.Request) {
	var req api.AddMemberRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	members, err := session.Classes.AddMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) RemoveClassMember(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	members, err := session.Classes.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) UpdateClassMemberRole(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateMemberRoleRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	members, err := session.Classes.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "username"), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}
