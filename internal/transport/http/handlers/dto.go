package handlers

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/go-board/internal/models"
	apierrors "github.com/pribylovaa/go-board/internal/transport/http/errors"
)

type signupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	UserID int64 `json:"user_id"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceName string `json:"device_name,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       int64  `json:"user_id,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

type revokedResponse struct {
	Revoked int64 `json:"revoked"`
}

type sessionView struct {
	ID         string    `json:"id"`
	DeviceName string    `json:"device_name"`
	LastActive time.Time `json:"last_active"`
	IPAddress  string    `json:"ip_address,omitempty"`
	Current    bool      `json:"current"`
}

type sessionsResponse struct {
	Sessions []sessionView `json:"sessions"`
}

type boardRequest struct {
	Name   string `json:"name"`
	Public *bool  `json:"public,omitempty"`
}

type boardPatch struct {
	Name   *string `json:"name,omitempty"`
	Public *bool   `json:"public,omitempty"`
}

type boardView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Public    bool      `json:"public"`
	OwnerID   int64     `json:"owner_id"`
	PostCount int64     `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
}

type boardsResponse struct {
	Boards []boardView `json:"boards"`
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postView struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	BoardID   int64      `json:"board_id"`
	AuthorID  int64      `json:"author_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type postsResponse struct {
	Posts      []postView `json:"posts"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func toBoardView(b *models.Board) boardView {
	return boardView{
		ID:        b.ID,
		Name:      b.Name,
		Public:    b.Public,
		OwnerID:   b.OwnerID,
		PostCount: b.PostCount,
		CreatedAt: b.CreatedAt,
	}
}

func toPostView(p *models.Post) postView {
	return postView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		BoardID:   p.BoardID,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// encodeCursor: base64url("<unix nano>:<id>").
func encodeCursor(c *models.PostCursor) string {
	if c == nil {
		return ""
	}

	raw := fmt.Sprintf("%d:%d", c.CreatedAt.UnixNano(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(s string) (*models.PostCursor, error) {
	if s == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, apierrors.ErrBadRequest
	}

	ts, id, ok := strings.Cut(string(raw), ":")
	if !ok {
		return nil, apierrors.ErrBadRequest
	}

	nanos, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, apierrors.ErrBadRequest
	}

	postID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || postID <= 0 {
		return nil, apierrors.ErrBadRequest
	}

	return &models.PostCursor{CreatedAt: time.Unix(0, nanos).UTC(), ID: postID}, nil
}
