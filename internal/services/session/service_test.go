package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/dependencies/mocks"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage/memory"
	"github.com/numengames/numinia-core/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ids     *mocks.MockIDGenerator
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDGenerator()
	s.service = New(s.storage, s.clock, s.ids, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestStartWithPlayer() {
	s.ids.Queue("s-1")
	pid := model.PlayerID("p-1")

	id, err := s.service.Start(s.ctx, StartParams{
		Platform:  "PC",
		UserAgent: "Mozilla/5.0",
		SpaceName: "gallery",
		PlayerID:  &pid,
	})
	s.Require().NoError(err)
	s.Equal(model.SessionID("s-1"), id)

	session, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.False(session.IsAnonymous)
	s.Require().NotNil(session.PlayerID)
	s.Equal(pid, *session.PlayerID)
	s.Equal("PC", session.Platform)
	s.Equal("gallery", session.SpaceName)
	s.Equal(s.clock.Now(), session.StartAt)
	s.Nil(session.EndAt)
}

func (s *ServiceSuite) TestStartAnonymous() {
	id, err := s.service.Start(s.ctx, StartParams{Platform: "Mobile", SpaceName: "gallery"})
	s.Require().NoError(err)

	session, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.True(session.IsAnonymous)
	s.Nil(session.PlayerID)
}

func (s *ServiceSuite) TestEndSetsEndTime() {
	id, err := s.service.Start(s.ctx, StartParams{Platform: "PC", SpaceName: "gallery"})
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Minute)
	s.Require().NoError(s.service.End(s.ctx, id))

	session, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(session.EndAt)
	s.Equal(s.clock.Now(), *session.EndAt)
}

func (s *ServiceSuite) TestEndTwiceOverwrites() {
	id, _ := s.service.Start(s.ctx, StartParams{Platform: "PC", SpaceName: "gallery"})

	s.clock.Advance(time.Minute)
	s.Require().NoError(s.service.End(s.ctx, id))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.service.End(s.ctx, id))

	session, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), *session.EndAt)
}

func (s *ServiceSuite) TestEndUnknownSession() {
	err := s.service.End(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
