package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-board/internal/service"
	"github.com/pribylovaa/go-board/internal/transport/http/middleware"
	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var in signupRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := h.svc.Signup(r.Context(), in.Fullname, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{UserID: id})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), service.LoginInput{
		Email:      in.Email,
		Password:   in.Password,
		DeviceName: in.DeviceName,
		IPAddress:  middleware.ClientIP(r),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.setRefreshCookie(w, res.RefreshToken)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		UserID:       res.UserID,
		ExpiresIn:    int64(res.ExpiresIn / time.Second),
	})
}

// Refresh принимает секрет из тела {refresh_token}, иначе из cookie.
// Явно переданный секрет важнее cookie, которая могла устареть.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeOptional(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	secret := in.RefreshToken
	if secret == "" {
		if c, err := r.Cookie(h.cookie.Name); err == nil {
			secret = c.Value
		}
	}

	res, err := h.svc.Refresh(r.Context(), secret)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.setRefreshCookie(w, res.RefreshToken)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(res.ExpiresIn / time.Second),
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.LogoutCurrent(r.Context(), c.SessionID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) LogoutAll(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	n, err := h.svc.LogoutAll(r.Context(), c.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, revokedResponse{Revoked: n})
}

func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	list, err := h.svc.ListSessions(r.Context(), c.UserID, c.SessionID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := sessionsResponse{Sessions: make([]sessionView, 0, len(list))}
	for _, s := range list {
		out.Sessions = append(out.Sessions, sessionView{
			ID:         s.ID.String(),
			DeviceName: s.DeviceName,
			LastActive: s.LastSeenAt,
			IPAddress:  s.IPAddress,
			Current:    s.ID == c.SessionID,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) RevokeSession(w http.ResponseWriter, r *http.Request) {
	c, err := claims(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	sid, err := uuid.Parse(chiParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	if err := h.svc.RevokeSession(r.Context(), c.UserID, sid); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setRefreshCookie(w http.ResponseWriter, secret string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    secret,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   int(h.refreshTTL / time.Second),
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handlers) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
