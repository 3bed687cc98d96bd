package encounters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicler-rpg/engine/internal/combat"
	"github.com/chronicler-rpg/engine/internal/errors"
)

func testRecord(id, campaignID string, status combat.Status) *Record {
	return &Record{
		ID:         id,
		CampaignID: campaignID,
		Status:     status,
		State: &combat.EncounterState{
			ID:    id,
			Round: 1,
			Participants: []combat.CombatantRef{
				{Kind: combat.KindPC, ID: "pc.hero"},
				{Kind: combat.KindCreature, ID: "creature.goblin"},
			},
		},
	}
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := NewInMemoryRepository()
		record := testRecord("enc-1", "campaign-1", combat.StatusOngoing)

		require.NoError(t, repo.Create(ctx, record))
		assert.False(t, record.CreatedAt.IsZero())

		got, err := repo.Get(ctx, "enc-1")
		require.NoError(t, err)
		assert.Equal(t, "campaign-1", got.CampaignID)
		assert.Equal(t, 1, got.State.Round)
	})

	t.Run("duplicate create is rejected", func(t *testing.T) {
		repo := NewInMemoryRepository()
		require.NoError(t, repo.Create(ctx, testRecord("enc-1", "campaign-1", combat.StatusOngoing)))

		err := repo.Create(ctx, testRecord("enc-1", "campaign-1", combat.StatusOngoing))
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("get missing record", func(t *testing.T) {
		repo := NewInMemoryRepository()
		_, err := repo.Get(ctx, "enc-missing")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("update replaces state", func(t *testing.T) {
		repo := NewInMemoryRepository()
		record := testRecord("enc-1", "campaign-1", combat.StatusOngoing)
		require.NoError(t, repo.Create(ctx, record))

		record.Status = combat.StatusVictory
		record.State.Round = 3
		require.NoError(t, repo.Update(ctx, record))

		got, err := repo.Get(ctx, "enc-1")
		require.NoError(t, err)
		assert.Equal(t, combat.StatusVictory, got.Status)
		assert.Equal(t, 3, got.State.Round)

		assert.True(t, errors.IsNotFound(repo.Update(ctx, testRecord("enc-ghost", "campaign-1", combat.StatusOngoing))))
	})

	t.Run("delete removes record and index entry", func(t *testing.T) {
		repo := NewInMemoryRepository()
		require.NoError(t, repo.Create(ctx, testRecord("enc-1", "campaign-1", combat.StatusOngoing)))
		require.NoError(t, repo.Delete(ctx, "enc-1"))

		_, err := repo.Get(ctx, "enc-1")
		assert.True(t, errors.IsNotFound(err))

		records, err := repo.ListByCampaign(ctx, "campaign-1")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("list by campaign", func(t *testing.T) {
		repo := NewInMemoryRepository()
		require.NoError(t, repo.Create(ctx, testRecord("enc-1", "campaign-1", combat.StatusVictory)))
		require.NoError(t, repo.Create(ctx, testRecord("enc-2", "campaign-1", combat.StatusOngoing)))
		require.NoError(t, repo.Create(ctx, testRecord("enc-3", "campaign-2", combat.StatusOngoing)))

		records, err := repo.ListByCampaign(ctx, "campaign-1")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("ongoing by campaign skips ended encounters", func(t *testing.T) {
		repo := NewInMemoryRepository()
		require.NoError(t, repo.Create(ctx, testRecord("enc-1", "campaign-1", combat.StatusVictory)))
		require.NoError(t, repo.Create(ctx, testRecord("enc-2", "campaign-1", combat.StatusOngoing)))

		record, err := repo.GetOngoingByCampaign(ctx, "campaign-1")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "enc-2", record.ID)

		record, err = repo.GetOngoingByCampaign(ctx, "campaign-2")
		require.NoError(t, err)
		assert.Nil(t, record)
	})
}
