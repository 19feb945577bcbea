package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/no-thing-project/hub-frontend/internal/middleware"
	"github.com/no-thing-project/hub-frontend/shared/api"
)

// === Board handlers ===

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	h.listBoards(w, r, "", "")
}

// ListGateBoards serves /gates/{id}/boards.
func (h *Handler) ListGateBoards(w http.ResponseWriter, r *http.Request) {
	h.listBoards(w, r, "gate_id", chi.URLParam(r, "id"))
}

// ListClassBoards serves /classes/{id}/boards.
func (h *Handler) ListClassBoards(w http.ResponseWriter, r *http.Request) {
	h.listBoards(w, r, "class_id", chi.URLParam(r, "id"))
}

// ListChildBoards serves /boards/{id}/children.
func (h *Handler) ListChildBoards(w http.ResponseWriter, r *http.Request) {
	h.listBoards(w, r, "board_id", chi.URLParam(r, "id"))
}

func (h *Handler) listBoards(w http.ResponseWriter, r *http.Request, scopeKey, scopeId string) {
	filters := filtersFrom(r)
	if scopeKey != "" && scopeId != "" {
		if filters == nil {
			filters = make(map[string]string, 1)
		}
		filters[scopeKey] = scopeId
	}
	session := mw.SessionFrom(r.Context())
	boards, err := session.Boards.FetchList(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, api.BoardListContent{
		Boards:     boards,
		Pagination: session.Boards.Snapshot().Pagination,
	})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	board, err := session.Boards.FetchDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{
		"board":            board,
		"members":          session.Boards.Snapshot().Members,
		"description_html": h.markdown.Render(board.Description),
	})
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	h.createBoard(w, r, "")
}

// CreateChildBoard serves /boards/{id}/children: a nested board created
// under the parent named in the route.
func (h *Handler) CreateChildBoard(w http.ResponseWriter, r *http.Request) {
	h.createBoard(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) createBoard(w http.ResponseWriter, r *http.Request, parentBoardId string) {
	var req api.CreateBoardRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	if parentBoardId != "" {
		req.ParentBoardId = parentBoardId
	}
	session := mw.SessionFrom(r.Context())
	board, err := session.Boards.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	session.Boards.RefreshSoon(nil)
	writeContent(w, http.StatusCreated, board)
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBoardRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	board, err := session.Boards.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, board)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	if err := session.Boards.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateBoardStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateStatusRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	board, err := session.Boards.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, board)
}

func (h *Handler) FavoriteBoard(w http.ResponseWriter, r *http.Request) {
	h.toggleBoardFavorite(w, r, false)
}

func (h *Handler) UnfavoriteBoard(w http.ResponseWriter, r *http.Request) {
	h.toggleBoardFavorite(w, r, true)
}

func (h *Handler) toggleBoardFavorite(w http.ResponseWriter, r *http.Request, currentlyFavorited bool) {
	session := mw.SessionFrom(r.Context())
	board, err := session.Boards.ToggleFavorite(r.Context(), chi.URLParam(r, "id"), currentlyFavorited)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, board)
}

func (h *Handler) AddBoardMember(w http.ResponseWriter, r *http.Request) {
	var req api.AddMemberRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	members, err := session.Boards.AddMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) RemoveBoardMember(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFrom(r.Context())
	members, err := session.Boards.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) UpdateBoardMemberRole(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateMemberRoleRequest
	if err := h.decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	session := mw.SessionFrom(r.Context())
	members, err := session.Boards.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "username"), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeContent(w, http.StatusOK, map[string]any{"members": members})
}
