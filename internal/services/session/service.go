package session

import (
	"context"
	"log/slog"

	"github.com/numengames/numinia-core/internal/dependencies/clock"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// StartParams describes a session being opened
type StartParams struct {
	Platform  string
	UserAgent string
	SpaceName string
	// PlayerID is nil for anonymous visitors
	PlayerID *model.PlayerID
}

// Service records play sessions
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new session Service
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// Start opens a session and returns its id. The player reference is stored
// verbatim and not checked against the player store.
func (s *Service) Start(ctx context.Context, params StartParams) (model.SessionID, error) {
	session := &model.Session{
		ID:          model.SessionID(s.ids.NewID()),
		IsAnonymous: params.PlayerID == nil,
		Platform:    params.Platform,
		UserAgent:   params.UserAgent,
		SpaceName:   params.SpaceName,
		StartAt:     s.clock.Now(),
	}
	if params.PlayerID != nil {
		pid := *params.PlayerID
		session.PlayerID = &pid
	}

	if err := s.storage.CreateSession(ctx, session); err != nil {
		s.logger.Error("failed to start session", slog.String("error", err.Error()))
		return "", err
	}

	s.logger.Debug("session started",
		slog.String("session_id", string(session.ID)),
		slog.Bool("anonymous", session.IsAnonymous),
		slog.String("space", session.SpaceName),
	)
	return session.ID, nil
}

// End closes a session. Ending an already ended session moves its end time.
func (s *Service) End(ctx context.Context, id model.SessionID) error {
	if _, err := s.storage.EndSession(ctx, id, s.clock.Now()); err != nil {
		return err
	}
	s.logger.Debug("session ended", slog.String("session_id", string(id)))
	return nil
}
