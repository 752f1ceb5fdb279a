package api

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/numengames/numinia-core/internal/api/apierr"
	"github.com/numengames/numinia-core/internal/api/handler"
	apimiddleware "github.com/numengames/numinia-core/internal/api/middleware"
	"github.com/numengames/numinia-core/internal/middleware"
	"github.com/numengames/numinia-core/internal/services/asset"
	"github.com/numengames/numinia-core/internal/services/discord"
	"github.com/numengames/numinia-core/internal/services/player"
	"github.com/numengames/numinia-core/internal/services/reward"
	"github.com/numengames/numinia-core/internal/services/score"
	"github.com/numengames/numinia-core/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Health         handler.Pinger
	PlayerService  *player.Service
	SessionService *session.Service
	ScoreService   *score.Service
	RewardService  *reward.Service
	AssetService   *asset.Service
	DiscordService *discord.Service
	// APIKeyHash guards catalog writes and asset delivery
	APIKeyHash string
	// AllowedOrigins are matched against the Origin header of cross-site requests
	AllowedOrigins []*regexp.Regexp
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	// Create handlers
	healthHandler := handler.NewHealthHandler(cfg.Health)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)
	scoreHandler := handler.NewScoreHandler(cfg.ScoreService)
	rewardHandler := handler.NewRewardHandler(cfg.RewardService)
	assetHandler := handler.NewAssetHandler(cfg.AssetService)
	discordHandler := handler.NewDiscordHandler(cfg.DiscordService)

	// Create middleware
	apiKeyMiddleware := apimiddleware.APIKey(cfg.APIKeyHash)
	loggingMiddleware := apimiddleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	admin := func(h http.HandlerFunc) http.Handler {
		return apiKeyMiddleware(h)
	}

	// Routes sit on the root router with full paths. A PathPrefix subrouter
	// resets mux's method-mismatch state, turning every 405 into a 404.
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	const v1 = "/api/v1"

	r.HandleFunc(v1+"/monit/health", healthHandler.Health).Methods(http.MethodGet)

	// Player routes
	r.HandleFunc(v1+"/player/external", playerHandler.CreateExternal).Methods(http.MethodPost)
	r.HandleFunc(v1+"/player/create", playerHandler.CreateWithWallet).Methods(http.MethodPost)
	r.HandleFunc(v1+"/player/{platform}/{id}", playerHandler.GetInfo).Methods(http.MethodGet)

	// Session routes
	r.HandleFunc(v1+"/player-session/start", sessionHandler.Start).Methods(http.MethodPost)
	r.HandleFunc(v1+"/player-session/end", sessionHandler.End).Methods(http.MethodPost)

	// Score routes
	r.HandleFunc(v1+"/score", scoreHandler.Submit).Methods(http.MethodPost)
	r.Handle(v1+"/score/game", admin(scoreHandler.CreateGame)).Methods(http.MethodPost)
	r.HandleFunc(v1+"/score/{name}", scoreHandler.List).Methods(http.MethodGet)

	// Reward routes; /reward/list must be registered before /reward/{playerId}
	r.HandleFunc(v1+"/reward/list", rewardHandler.List).Methods(http.MethodGet)
	r.Handle(v1+"/reward", admin(rewardHandler.Create)).Methods(http.MethodPost)
	r.HandleFunc(v1+"/reward/{playerId}", rewardHandler.GetByPlayer).Methods(http.MethodGet)
	r.HandleFunc(v1+"/reward/{playerId}", rewardHandler.Grant).Methods(http.MethodPost)

	// Asset routes
	r.Handle(v1+"/asset/deliver", admin(assetHandler.Deliver)).Methods(http.MethodPost)

	// Discord relay routes
	const webhook = v1 + "/discord/sendWebHook"
	r.HandleFunc(webhook+"/login", discordHandler.Login).Methods(http.MethodPost)
	r.HandleFunc(webhook+"/logout", discordHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc(webhook+"/chat", discordHandler.Chat).Methods(http.MethodPost)

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = corsHandler(cfg.AllowedOrigins)(h)
	h = middleware.RequestID()(h)
	return h
}

func corsHandler(origins []*regexp.Regexp) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOriginValidator(func(origin string) bool {
			for _, re := range origins {
				if re.MatchString(origin) {
					return true
				}
			}
			return false
		}),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", apimiddleware.APIKeyHeader, middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)
}
