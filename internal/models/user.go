package models

import "time"

// User - модель пользователя в системе.
type User struct {
	ID           int64
	Fullname     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
