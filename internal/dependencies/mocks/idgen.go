package mocks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/numengames/numinia-core/internal/dependencies/idgen"
)

// MockIDGenerator is a mock implementation of idgen.Generator for testing
type MockIDGenerator struct {
	// IDs is a queue of results to return from NewID
	IDs   []string
	index int
	count int
}

// Ensure MockIDGenerator implements Generator
var _ idgen.Generator = (*MockIDGenerator)(nil)

// NewMockIDGenerator creates a new MockIDGenerator
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

// NewID returns the next queued id. Once the queue is drained it returns
// deterministic UUIDs derived from a counter.
func (g *MockIDGenerator) NewID() string {
	if g.index < len(g.IDs) {
		id := g.IDs[g.index]
		g.index++
		return id
	}
	g.count++
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("mock-%d", g.count))).String()
}

// Queue adds values to the NewID result queue
func (g *MockIDGenerator) Queue(ids ...string) {
	g.IDs = append(g.IDs, ids...)
}

// Reset clears all queued results
func (g *MockIDGenerator) Reset() {
	g.IDs = nil
	g.index = 0
	g.count = 0
}
