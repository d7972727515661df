package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-board/internal/models"
	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

func (h *Handlers) CreateBoard(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in boardRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	// Доска публична, если не сказано иное.
	public := true
	if in.Public != nil {
		public = *in.Public
	}

	board, err := h.svc.CreateBoard(r.Context(), c.UserID, in.Name, public)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBoardView(board))
}

func (h *Handlers) ListBoards(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	boards, err := h.svc.ListBoards(r.Context(), c.UserID, limit, offset)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := boardsResponse{Boards: make([]boardView, 0, len(boards))}
	for i := range boards {
		out.Boards = append(out.Boards, toBoardView(&boards[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	board, err := h.svc.GetBoard(r.Context(), c.UserID, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardView(board))
}

func (h *Handlers) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in boardPatch
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	board, err := h.svc.UpdateBoard(r.Context(), c.UserID, id, models.BoardUpdate{Name: in.Name, Public: in.Public})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardView(board))
}

func (h *Handlers) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteBoard(r.Context(), c.UserID, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
