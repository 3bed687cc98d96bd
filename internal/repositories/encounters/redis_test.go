package encounters

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/chronicler-rpg/engine/internal/combat"
	"github.com/chronicler-rpg/engine/internal/errors"
)

type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time { return f.now }

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
	now        time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	// list fetches fan out concurrently, so expectation order cannot be fixed
	s.mock.MatchExpectationsInOrder(false)
	s.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	repo, err := NewRedisRepository(&RedisRepoConfig{
		Client:       s.mockClient,
		TimeProvider: fixedTimeProvider{now: s.now},
		TTL:          time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) record(stamped bool) *Record {
	record := &Record{
		ID:         "enc-1",
		CampaignID: "campaign-1",
		Status:     combat.StatusOngoing,
		State: &combat.EncounterState{
			ID:    "enc-1",
			Round: 1,
			Participants: []combat.CombatantRef{
				{Kind: combat.KindPC, ID: "pc.hero"},
			},
		},
	}
	if stamped {
		record.CreatedAt = s.now
		record.UpdatedAt = s.now
	}
	return record
}

func (s *RedisRepoTestSuite) marshaled(record *Record) string {
	data, err := json.Marshal(record)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	record := s.record(false)
	expected := s.marshaled(s.record(true))

	// Happy path
	s.mock.ExpectSet("encounter:enc-1", expected, time.Hour).SetVal("OK")
	s.mock.ExpectSAdd("campaign:campaign-1:encounters", "enc-1").SetVal(1)

	s.NoError(s.repo.Create(ctx, record))
	s.Equal(s.now, record.CreatedAt)

	// Dependency error
	s.mock.ExpectSet("encounter:enc-1", expected, time.Hour).SetErr(stderrors.New("redis error"))

	s.Error(s.repo.Create(ctx, s.record(false)))

	// Input validation
	s.Error(s.repo.Create(ctx, nil))
	s.Error(s.repo.Create(ctx, &Record{}))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	expected := s.marshaled(s.record(true))

	// Happy path
	s.mock.ExpectGet("encounter:enc-1").SetVal(expected)

	record, err := s.repo.Get(ctx, "enc-1")
	s.NoError(err)
	s.Equal("campaign-1", record.CampaignID)
	s.Equal(combat.StatusOngoing, record.Status)
	s.Require().NotNil(record.State)
	s.Equal(1, record.State.Round)

	// Missing key
	s.mock.ExpectGet("encounter:enc-2").RedisNil()

	_, err = s.repo.Get(ctx, "enc-2")
	s.True(errors.IsNotFound(err))

	// Input validation
	_, err = s.repo.Get(ctx, "")
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	record := s.record(true)
	record.Status = combat.StatusVictory
	record.State.Round = 4
	expected := s.marshaled(record)

	s.mock.ExpectSet("encounter:enc-1", expected, time.Hour).SetVal("OK")
	s.mock.ExpectSAdd("campaign:campaign-1:encounters", "enc-1").SetVal(1)

	s.NoError(s.repo.Update(ctx, record))
	s.Equal(s.now, record.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()
	stored := s.marshaled(s.record(true))

	// Happy path
	s.mock.ExpectGet("encounter:enc-1").SetVal(stored)
	s.mock.ExpectDel("encounter:enc-1").SetVal(1)
	s.mock.ExpectSRem("campaign:campaign-1:encounters", "enc-1").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "enc-1"))

	// Missing record
	s.mock.ExpectGet("encounter:enc-2").RedisNil()

	s.True(errors.IsNotFound(s.repo.Delete(ctx, "enc-2")))
}

func (s *RedisRepoTestSuite) TestListByCampaign() {
	ctx := context.Background()

	first := s.record(true)
	second := s.record(true)
	second.ID = "enc-2"
	second.Status = combat.StatusVictory
	second.State.ID = "enc-2"

	// Happy path
	s.mock.ExpectSMembers("campaign:campaign-1:encounters").SetVal([]string{"enc-1", "enc-2"})
	s.mock.ExpectGet("encounter:enc-2").SetVal(s.marshaled(second))
	s.mock.ExpectGet("encounter:enc-1").SetVal(s.marshaled(first))

	records, err := s.repo.ListByCampaign(ctx, "campaign-1")
	s.NoError(err)
	s.Len(records, 2)
	s.Equal("enc-1", records[0].ID)
	s.Equal("enc-2", records[1].ID)

	// Dependency error
	s.mock.ExpectSMembers("campaign:campaign-1:encounters").SetErr(stderrors.New("redis error"))

	_, err = s.repo.ListByCampaign(ctx, "campaign-1")
	s.Error(err)

	// Input validation
	_, err = s.repo.ListByCampaign(ctx, "")
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestGetOngoingByCampaign() {
	ctx := context.Background()

	ended := s.record(true)
	ended.Status = combat.StatusDefeat
	ongoing := s.record(true)
	ongoing.ID = "enc-2"
	ongoing.State.ID = "enc-2"

	s.mock.ExpectSMembers("campaign:campaign-1:encounters").SetVal([]string{"enc-1", "enc-2"})
	s.mock.ExpectGet("encounter:enc-1").SetVal(s.marshaled(ended))
	s.mock.ExpectGet("encounter:enc-2").SetVal(s.marshaled(ongoing))

	record, err := s.repo.GetOngoingByCampaign(ctx, "campaign-1")
	s.NoError(err)
	s.Require().NotNil(record)
	s.Equal("enc-2", record.ID)
}
