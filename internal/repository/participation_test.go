package repository_test

import (
	"testing"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_participationRepository_unique_wallet_per_allowlist(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	participationRepo := repository.NewParticipationRepository()

	require.NoError(t, participationRepo.Create(ctx, &entity.Participation{
		Base:          entity.Base{ID: "p1"},
		AllowlistID:   testutil.Allowlist1.ID,
		UserID:        testutil.User1.ID,
		WalletAddress: testutil.User1.WalletAddress,
	}))

	// A second row for the same (allowlist, wallet) hits the unique index
	// even though it comes from another user.
	err := participationRepo.Create(ctx, &entity.Participation{
		Base:          entity.Base{ID: "p2"},
		AllowlistID:   testutil.Allowlist1.ID,
		UserID:        testutil.User2.ID,
		WalletAddress: testutil.User1.WalletAddress,
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := participationRepo.Count(ctx, testutil.Allowlist1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// The same wallet can still enter a different allowlist.
	require.NoError(t, participationRepo.Create(ctx, &entity.Participation{
		Base:          entity.Base{ID: "p3"},
		AllowlistID:   testutil.Allowlist2.ID,
		UserID:        testutil.User1.ID,
		WalletAddress: testutil.User1.WalletAddress,
	}))
}

func Test_participationRepository_duplicate_wallet_with_entry_key(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	participationRepo := repository.NewParticipationRepository()

	// Lists allowing duplicate wallets widen the index with the row id.
	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, participationRepo.Create(ctx, &entity.Participation{
			Base:          entity.Base{ID: id},
			AllowlistID:   testutil.Allowlist1.ID,
			UserID:        testutil.User1.ID,
			WalletAddress: testutil.User1.WalletAddress,
			EntryKey:      id,
		}))
	}

	count, err := participationRepo.Count(ctx, testutil.Allowlist1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}
