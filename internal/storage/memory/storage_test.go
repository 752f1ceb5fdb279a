package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
	"github.com/numengames/numinia-core/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func() storage.Storage { return New() },
	})
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	player := &model.Player{ID: "p-1", Name: "Alice", CreatedAt: time.Now()}
	require.NoError(t, s.CreatePlayer(ctx, player))
	player.Name = "mutated"

	got, err := s.GetPlayer(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)

	got.Name = "mutated again"
	again, err := s.GetPlayer(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, "Alice", again.Name)
}
