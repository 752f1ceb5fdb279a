package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/numengames/numinia-core/internal/api/request"
	"github.com/numengames/numinia-core/internal/api/response"
	"github.com/numengames/numinia-core/internal/services/discord"
)

// DiscordHandler relays space events to Discord
type DiscordHandler struct {
	relay *discord.Service
}

// NewDiscordHandler creates a new discord handler
func NewDiscordHandler(relay *discord.Service) *DiscordHandler {
	return &DiscordHandler{
		relay: relay,
	}
}

// Login handles POST /api/v1/discord/sendWebHook/login
func (h *DiscordHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.relayEvent(w, r, false, h.relay.Login)
}

// Logout handles POST /api/v1/discord/sendWebHook/logout
func (h *DiscordHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.relayEvent(w, r, false, h.relay.Logout)
}

// Chat handles POST /api/v1/discord/sendWebHook/chat
func (h *DiscordHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.relayEvent(w, r, true, h.relay.Chat)
}

func (h *DiscordHandler) relayEvent(w http.ResponseWriter, r *http.Request, needsText bool, send func(context.Context, discord.Announcement) error) {
	var req request.DiscordWebhookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	a := discord.Announcement{
		SpaceName: strings.TrimSpace(req.SpaceName),
		SpaceURL:  strings.TrimSpace(req.SpaceURL),
		UserName:  strings.TrimSpace(req.UserName),
		WalletID:  strings.TrimSpace(req.WalletID),
		Text:      strings.TrimSpace(req.Text),
	}
	switch {
	case req.Season == nil:
		WriteError(w, NewInvalidRequestError(`"season" is required`))
		return
	case a.SpaceURL == "":
		WriteError(w, NewInvalidRequestError(`"spaceUrl" is required`))
		return
	case a.SpaceName == "":
		WriteError(w, NewInvalidRequestError(`"spaceName" is required`))
		return
	case needsText && a.Text == "":
		WriteError(w, NewInvalidRequestError(`"text" is required`))
		return
	}
	a.Season = *req.Season

	if err := send(r.Context(), a); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
