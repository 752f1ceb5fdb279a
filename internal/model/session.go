package model

import "time"

// SessionID identifies a play session
type SessionID string

// Session records a player's (or an anonymous visitor's) stay in a space
type Session struct {
	ID          SessionID
	PlayerID    *PlayerID // nil for anonymous sessions
	IsAnonymous bool
	Platform    string // free-form client platform tag
	UserAgent   string
	SpaceName   string
	StartAt     time.Time
	EndAt       *time.Time
}
