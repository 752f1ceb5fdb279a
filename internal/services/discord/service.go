package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotificationFailed is returned when the webhook rejects a message
var ErrNotificationFailed = errors.New("discord notification failed")

// maxContentLength is Discord's limit on a message body
const maxContentLength = 2000

// Announcement describes a visitor event in a space
type Announcement struct {
	SpaceName string
	SpaceURL  string
	Season    float64
	UserName  string
	WalletID  string
	// Text is the chat message; only used by Chat
	Text string
}

// Config holds webhook settings
type Config struct {
	// WebhookURL empty disables posting; messages are only logged
	WebhookURL    string
	Username      string
	RatePerMinute int
	Burst         int
	Timeout       time.Duration
}

// Service relays space events to a Discord channel webhook
type Service struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a new discord Service
func New(cfg Config, logger *slog.Logger) *Service {
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 30
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.Burst),
		logger:  logger.With(slog.String("component", "discord")),
	}
}

// Enabled reports whether messages are posted to a webhook
func (s *Service) Enabled() bool {
	return s.cfg.WebhookURL != ""
}

// Login announces a visitor entering a space
func (s *Service) Login(ctx context.Context, a Announcement) error {
	return s.post(ctx, "login", fmt.Sprintf("An user %s enter the space: %s", displayName(a.UserName), describe(a)))
}

// Logout announces a visitor leaving a space
func (s *Service) Logout(ctx context.Context, a Announcement) error {
	return s.post(ctx, "logout", fmt.Sprintf("An user %s left the space: %s", displayName(a.UserName), describe(a)))
}

// Chat relays a chat message sent in a space
func (s *Service) Chat(ctx context.Context, a Announcement) error {
	return s.post(ctx, "chat", fmt.Sprintf("An user %s sent a chat message in the space: %s\n%s", displayName(a.UserName), describe(a), a.Text))
}

// ObfuscateWallet keeps the first two and last four characters of a wallet
func ObfuscateWallet(wallet string) string {
	if wallet == "" {
		return ""
	}
	start := wallet[:min(2, len(wallet))]
	end := wallet[max(0, len(wallet)-4):]
	return start + "...." + end
}

func displayName(userName string) string {
	if userName == "" {
		return "annonymous"
	}
	return userName
}

func describe(a Announcement) string {
	out := fmt.Sprintf("%s (%s) (season %s)", a.SpaceName, a.SpaceURL, strconv.FormatFloat(a.Season, 'f', -1, 64))
	if obf := ObfuscateWallet(a.WalletID); obf != "" {
		out += " with walletId: " + obf
	}
	return out
}

type webhookMessage struct {
	Username string `json:"username,omitempty"`
	Content  string `json:"content"`
}

func (s *Service) post(ctx context.Context, event, content string) error {
	if len(content) > maxContentLength {
		content = truncate(content, maxContentLength)
	}

	if !s.Enabled() {
		s.logger.Info("discord relay disabled", slog.String("event", event), slog.String("content", content))
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	body, err := json.Marshal(webhookMessage{Username: s.cfg.Username, Content: content})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("discord webhook request failed", slog.String("event", event), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("discord webhook rejected message",
			slog.String("event", event),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrNotificationFailed, resp.StatusCode)
	}

	s.logger.Debug("discord message sent", slog.String("event", event))
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
