package model

import "time"

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // never JSON-encode
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
