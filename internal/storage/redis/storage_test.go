package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
	"github.com/numengames/numinia-core/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func() storage.Storage {
			mini := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
			return NewWithClient(client, DefaultConfig())
		},
	})
}

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s := NewWithClient(client, DefaultConfig())
	t.Cleanup(func() { _ = s.Close() })
	return s, mini
}

func TestNewConnectsWithURL(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()
	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestCreatePlayerWritesIndexKeys(t *testing.T) {
	s, mini := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePlayer(ctx, &model.Player{
		ID: "p-1", OncyberID: "oc-1", WalletAddress: "0xabc",
	}))

	owner, err := mini.Get("numinia:idx:player:oncyberId:oc-1")
	require.NoError(t, err)
	require.Equal(t, "p-1", owner)

	owner, err = mini.Get("numinia:idx:player:wallet:0xabc")
	require.NoError(t, err)
	require.Equal(t, "p-1", owner)
}

func TestCreatePlayerConflictWritesNothing(t *testing.T) {
	s, mini := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePlayer(ctx, &model.Player{ID: "p-1", WalletAddress: "0xabc"}))

	// free oncyber id, taken wallet
	err := s.CreatePlayer(ctx, &model.Player{ID: "p-2", OncyberID: "oc-2", WalletAddress: "0xabc"})
	require.ErrorIs(t, err, model.ErrPlayerExists)
	require.False(t, mini.Exists("numinia:idx:player:oncyberId:oc-2"))
	require.False(t, mini.Exists("numinia:player:p-2"))
}

func TestCreatePlayerFailureLeavesIDsFree(t *testing.T) {
	s, mini := newTestStorage(t)
	ctx := context.Background()

	mini.SetError("READONLY You can't write against a read only replica")
	err := s.CreatePlayer(ctx, &model.Player{ID: "p-1", OncyberID: "oc-1", WalletAddress: "0xabc"})
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrPlayerExists)
	mini.SetError("")

	require.False(t, mini.Exists("numinia:idx:player:oncyberId:oc-1"))
	require.False(t, mini.Exists("numinia:idx:player:wallet:0xabc"))

	require.NoError(t, s.CreatePlayer(ctx, &model.Player{ID: "p-2", OncyberID: "oc-1", WalletAddress: "0xabc"}))
	p, err := s.FindPlayerByExternalID(ctx, model.FieldOncyberID, "oc-1")
	require.NoError(t, err)
	require.Equal(t, model.PlayerID("p-2"), p.ID)
}

func TestSaveGameNameConflict(t *testing.T) {
	s, mini := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveGame(ctx, &model.Game{ID: "g-1", Name: "maze"}))
	require.ErrorIs(t, s.SaveGame(ctx, &model.Game{ID: "g-2", Name: "maze"}), model.ErrGameExists)
	require.False(t, mini.Exists("numinia:game:g-2"))
}

func TestPingFailsWhenServerDown(t *testing.T) {
	s, mini := newTestStorage(t)
	mini.Close()

	require.Error(t, s.Ping(context.Background()))
}
