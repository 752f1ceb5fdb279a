package reward

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

func (s *ServiceSuite) createReward(id, name string) *model.Reward {
	s.ids.Queue(id)
	reward, err := s.service.CreateReward(s.ctx, CreateRewardParams{
		TokenID:         "1",
		Blockchain:      "optimism",
		ContractAddress: "0x1111111111111111111111111111111111111111",
		Name:            name,
		Type:            "badge",
		ImageURL:        "https://example.com/" + name + ".png",
		IsActive:        true,
	})
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return reward
}

func (s *ServiceSuite) TestCreateAndListRewards() {
	s.createReward("r-1", "badge")
	s.createReward("r-2", "cape")

	rewards, err := s.service.ListRewards(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rewards, 2)
	s.Equal("badge", rewards[0].Name)
	s.Equal("cape", rewards[1].Name)
	s.Equal("optimism", rewards[0].Blockchain)
}

func (s *ServiceSuite) TestListRewardsEmpty() {
	rewards, err := s.service.ListRewards(s.ctx)
	s.Require().NoError(err)
	s.Empty(rewards)
}

func (s *ServiceSuite) TestInsertPlayerRewardAllowsDuplicates() {
	s.createReward("r-1", "badge")

	_, err := s.service.InsertPlayerReward(s.ctx, "p-1", "r-1")
	s.Require().NoError(err)
	_, err = s.service.InsertPlayerReward(s.ctx, "p-1", "r-1")
	s.Require().NoError(err)

	views, err := s.service.GetRewardsByPlayerID(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Len(views, 2)
}

func (s *ServiceSuite) TestGetRewardsByPlayerIDPopulatesReward() {
	s.createReward("r-1", "badge")
	s.createReward("r-2", "cape")

	s.ids.Queue("g-1", "g-2")
	_, err := s.service.InsertPlayerReward(s.ctx, "p-1", "r-2")
	s.Require().NoError(err)
	_, err = s.service.InsertPlayerReward(s.ctx, "p-1", "r-1")
	s.Require().NoError(err)
	_, err = s.service.InsertPlayerReward(s.ctx, "p-2", "r-1")
	s.Require().NoError(err)

	views, err := s.service.GetRewardsByPlayerID(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Require().Len(views, 2)

	s.Equal(model.PlayerRewardID("g-1"), views[0].ID)
	s.Require().NotNil(views[0].Reward)
	s.Equal("cape", views[0].Reward.Name)
	s.Equal(model.RewardID("r-1"), views[1].RewardID)
	s.Require().NotNil(views[1].Reward)
	s.Equal("badge", views[1].Reward.Name)
}

func (s *ServiceSuite) TestGetRewardsByPlayerIDMissingCatalogEntry() {
	_, err := s.service.InsertPlayerReward(s.ctx, "p-1", "r-gone")
	s.Require().NoError(err)

	views, err := s.service.GetRewardsByPlayerID(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Nil(views[0].Reward)
	s.Equal(model.RewardID("r-gone"), views[0].RewardID)
}

func (s *ServiceSuite) TestGetRewardsByPlayerIDNone() {
	views, err := s.service.GetRewardsByPlayerID(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Empty(views)
}
