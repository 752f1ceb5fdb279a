package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/numengames/numinia-core/internal/chain"
	"github.com/numengames/numinia-core/internal/config"
	"github.com/numengames/numinia-core/internal/dependencies/clock"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/services/asset"
	"github.com/numengames/numinia-core/internal/services/discord"
	"github.com/numengames/numinia-core/internal/services/player"
	"github.com/numengames/numinia-core/internal/services/reward"
	"github.com/numengames/numinia-core/internal/services/score"
	"github.com/numengames/numinia-core/internal/services/session"
	"github.com/numengames/numinia-core/internal/storage"
	"github.com/numengames/numinia-core/internal/storage/memory"
	redisstorage "github.com/numengames/numinia-core/internal/storage/redis"
	"github.com/numengames/numinia-core/internal/storage/sqlstore"
)

// Storage type constants
const (
	StorageTypeMemory   = config.StorageMemory
	StorageTypeRedis    = config.StorageRedis
	StorageTypeSQLite   = config.StorageSQLite
	StorageTypePostgres = config.StoragePostgres
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   idgen.Generator

	// Services
	PlayerService  *player.Service
	SessionService *session.Service
	ScoreService   *score.Service
	RewardService  *reward.Service
	AssetService   *asset.Service
	DiscordService *discord.Service

	chain *chain.Client
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// PostgresDSN is the connection string (required if StorageType is "postgres")
	PostgresDSN string
	// Chain enables asset delivery when its PrivateKey is set
	Chain chain.Config
	// Asset lists the deliverable tokens
	Asset asset.Config
	// Discord configures the webhook relay; an empty webhook only logs
	Discord discord.Config
}

// ConfigFrom translates the process configuration into a factory Config
func ConfigFrom(cfg *config.Config, logger *slog.Logger) (Config, error) {
	tokens, err := cfg.Asset.TokenIDs()
	if err != nil {
		return Config{}, err
	}

	out := Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		Asset: asset.Config{
			Options: tokens,
			Amount:  cfg.Asset.Amount,
		},
		Discord: discord.Config{
			WebhookURL:    cfg.Discord.Webhook,
			Username:      cfg.Discord.Service,
			RatePerMinute: cfg.Discord.RatePerMinute,
			Burst:         cfg.Discord.Burst,
			Timeout:       cfg.Discord.Timeout,
		},
	}
	if cfg.Asset.Enabled() {
		out.Chain = chain.Config{
			RPCURL:          cfg.Asset.RPCURL,
			ContractAddress: cfg.Asset.ContractAddress,
			FromAddress:     cfg.Asset.FromAddress,
			PrivateKey:      cfg.Asset.PrivateKey,
			ConfirmTimeout:  cfg.Asset.ConfirmTimeout,
		}
	}
	if cfg.Storage.Type == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		out.RedisConfig = &redisCfg
	}
	return out, nil
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Asset delivery stays disabled unless a signing key is configured.
	// The transferrer must stay a nil interface in that case.
	var transferrer asset.Transferrer
	var chainClient *chain.Client
	if cfg.Chain.PrivateKey != "" {
		chainClient, err = chain.Dial(ctx, cfg.Chain, logger)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("dial chain: %w", err)
		}
		transferrer = chainClient
	}

	app := newWithDependencies(store, clock.New(), idgen.New(), transferrer, cfg.Asset, cfg.Discord, logger)
	app.chain = chainClient
	return app, nil
}

func openStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		return sqlstore.OpenPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or postgres", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	ids idgen.Generator,
	transferrer asset.Transferrer,
	assetCfg asset.Config,
	discordCfg discord.Config,
	logger *slog.Logger,
) *App {
	// Create services
	playerService := player.New(store, clk, ids, logger)
	sessionService := session.New(store, clk, ids, logger)
	scoreService := score.New(store, playerService, clk, ids, logger)
	rewardService := reward.New(store, clk, ids, logger)
	assetService := asset.New(transferrer, assetCfg, logger)
	discordService := discord.New(discordCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            ids,
		PlayerService:  playerService,
		SessionService: sessionService,
		ScoreService:   scoreService,
		RewardService:  rewardService,
		AssetService:   assetService,
		DiscordService: discordService,
	}
}

// Close releases the storage connection and the chain client
func (a *App) Close() error {
	if a.chain != nil {
		a.chain.Close()
	}
	return a.Storage.Close()
}
