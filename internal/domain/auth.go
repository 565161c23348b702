package domain

import "time"

// Session is an issued bearer token. It is never persisted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Identity is what a verified token asserts about its holder.
type Identity struct {
	UserID int64
	Email  string
}
