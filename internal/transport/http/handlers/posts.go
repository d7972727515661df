package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	boardID, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in postRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	post, err := h.svc.CreatePost(r.Context(), c.UserID, boardID, in.Title, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostView(post))
}

// ListPosts — лента доски: ?limit=&cursor=, курсор берётся из next_cursor.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	boardID, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	after, err := decodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.ListPosts(r.Context(), c.UserID, boardID, after, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := postsResponse{
		Posts:      make([]postView, 0, len(page.Posts)),
		NextCursor: encodeCursor(page.Next),
	}
	for i := range page.Posts {
		out.Posts = append(out.Posts, toPostView(&page.Posts[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.svc.GetPost(r.Context(), c.UserID, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostView(post))
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
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

	var in postRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), c.UserID, id, in.Title, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostView(post))
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.DeletePost(r.Context(), c.UserID, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
