package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Platform errors
	ErrInvalidPlatform = errors.New("invalid platform type")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")

	// Reward errors
	ErrRewardNotFound = errors.New("reward not found")
)

// PlayerExistsError reports a player that is already registered for a
// platform/external id pair. It matches ErrPlayerExists with errors.Is.
type PlayerExistsError struct {
	Platform   Platform
	ExternalID string
}

func (e *PlayerExistsError) Error() string {
	return fmt.Sprintf("The player you're trying to create with id %s and platform %s already exists", e.ExternalID, e.Platform)
}

func (e *PlayerExistsError) Unwrap() error {
	return ErrPlayerExists
}
