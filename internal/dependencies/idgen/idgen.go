package idgen

import "github.com/google/uuid"

// Generator produces record identifiers that can be mocked for testing
type Generator interface {
	NewID() string
}

// UUIDGenerator implements Generator with random (v4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new random UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Valid reports whether id has the shape of a generated identifier
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
