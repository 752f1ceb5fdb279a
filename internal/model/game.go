package model

import "time"

// GameID identifies a catalog game
type GameID string

// Game is a named catalog entry scores are recorded against
type Game struct {
	ID          GameID
	Name        string // unique
	Origin      string
	Mode        string
	Difficulty  int
	AverageTime int
	IsActive    bool
	CreatedAt   time.Time
}

// GameScoreID identifies a score record
type GameScoreID string

// GameScore is an immutable score record
type GameScore struct {
	ID        GameScoreID
	GameID    GameID
	PlayerID  *PlayerID // nil when the score was submitted anonymously
	Score     float64
	Timer     float64
	CreatedAt time.Time
}
