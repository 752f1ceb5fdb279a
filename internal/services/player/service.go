package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/numengames/numinia-core/internal/dependencies/clock"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// Service manages player identities.
//
// Platform-keyed players (oncyber, hyperfy, substrata) and wallet-keyed
// players are two separate lookup paths and are never merged.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger.With(slog.String("component", "player")),
	}
}

// FindByPlatformID resolves a player by platform and the id that platform
// uses. An absent player yields (nil, nil).
func (s *Service) FindByPlatformID(ctx context.Context, platform model.Platform, id string) (*model.Player, error) {
	lookup, err := platform.Lookup()
	if err != nil {
		return nil, err
	}

	var player *model.Player
	switch lookup.Mode {
	case model.LookupByInternalID:
		player, err = s.storage.GetPlayer(ctx, model.PlayerID(id))
	case model.LookupByExternalID:
		player, err = s.storage.FindPlayerByExternalID(ctx, lookup.Field, id)
	default:
		return nil, fmt.Errorf("%w: unknown lookup mode", model.ErrInvalidPlatform)
	}
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}

// GetPlayerInfo is the read behind the player info endpoint
func (s *Service) GetPlayerInfo(ctx context.Context, platform model.Platform, id string) (*model.Player, error) {
	return s.FindByPlatformID(ctx, platform, id)
}

// CreateFromExternalPlatform creates a player keyed by a platform's external
// id. An existing player yields a *model.PlayerExistsError.
func (s *Service) CreateFromExternalPlatform(ctx context.Context, platform model.Platform, externalID, displayName string) (*model.Player, error) {
	existing, err := s.FindByPlatformID(ctx, platform, externalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &model.PlayerExistsError{Platform: platform, ExternalID: externalID}
	}

	lookup, err := platform.Lookup()
	if err != nil {
		return nil, err
	}
	if lookup.Mode != model.LookupByExternalID {
		return nil, fmt.Errorf("%w: %s players are addressed by internal id only", model.ErrInvalidPlatform, platform)
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:               model.PlayerID(s.ids.NewID()),
		Name:             strings.TrimSpace(displayName),
		IsActive:         true,
		IsBlocked:        false,
		LastConnectionAt: now,
		CreatedAt:        now,
	}
	player.SetExternalID(lookup.Field, externalID)

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrPlayerExists) {
			// lost a create race for the same external id
			return nil, &model.PlayerExistsError{Platform: platform, ExternalID: externalID}
		}
		s.logger.Error("failed to create player",
			slog.String("platform", platform.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("platform", platform.String()),
	)
	return player, nil
}

// CreateWithWalletIfNotExists creates a wallet-keyed player unless one
// already owns the wallet. Calling it repeatedly is a no-op.
func (s *Service) CreateWithWalletIfNotExists(ctx context.Context, walletAddress, displayName string) error {
	exists, err := s.storage.PlayerExistsByWallet(ctx, walletAddress)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:               model.PlayerID(s.ids.NewID()),
		WalletAddress:    walletAddress,
		Name:             strings.TrimSpace(displayName),
		IsActive:         true,
		LastConnectionAt: now,
		CreatedAt:        now,
	}
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrPlayerExists) {
			return nil
		}
		return err
	}

	s.logger.Info("wallet player created", slog.String("player_id", string(player.ID)))
	return nil
}

// FindByWallet returns the player owning a wallet, or nil when none does
func (s *Service) FindByWallet(ctx context.Context, walletAddress string) (*model.Player, error) {
	player, err := s.storage.FindPlayerByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}
