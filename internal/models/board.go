package models

import "time"

// Board - доска с денормализованным счётчиком постов.
// PostCount синхронизируется с буфером дельт и может отставать от реальности.
type Board struct {
	ID        int64
	Name      string
	Public    bool
	OwnerID   int64
	PostCount int64
	CreatedAt time.Time
}

// BoardUpdate — частичное обновление доски; nil означает «не менять».
type BoardUpdate struct {
	Name   *string
	Public *bool
}

// Post - пост на доске.
type Post struct {
	ID        int64
	Title     string
	Content   string
	BoardID   int64
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PostCursor — keyset-курсор для ленты постов (created_at DESC, id DESC).
type PostCursor struct {
	CreatedAt time.Time
	ID        int64
}

// PostPage — страница постов с курсором на следующую (nil — страниц больше нет).
type PostPage struct {
	Posts []Post
	Next  *PostCursor
}
