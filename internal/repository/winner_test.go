package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertWinner(
	ctx context.Context, t *testing.T, id string, position int, expiresAt time.Time,
) {
	t.Helper()

	require.NoError(t, repository.NewWinnerRepository().Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: id},
		ParticipationID: "participation-" + id,
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        position,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  expiresAt,
	}))
}

func Test_winnerRepository_CheckAndClaim(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	winnerRepo := repository.NewWinnerRepository()

	now := time.Now()
	insertWinner(ctx, t, "winner1", 1, now.Add(time.Hour))

	require.NoError(t, winnerRepo.CheckAndClaim(ctx, "winner1", now))

	winner, err := winnerRepo.GetByID(ctx, "winner1")
	require.NoError(t, err)
	require.Equal(t, entity.WinnerClaimed, winner.Status)
	require.True(t, winner.ClaimedAt.Valid)

	// A claimed record cannot be claimed again.
	require.ErrorIs(t, winnerRepo.CheckAndClaim(ctx, "winner1", now), gorm.ErrRecordNotFound)
}

func Test_winnerRepository_CheckAndClaim_after_expiry(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	winnerRepo := repository.NewWinnerRepository()

	now := time.Now()
	insertWinner(ctx, t, "winner1", 1, now.Add(-time.Minute))

	require.ErrorIs(t, winnerRepo.CheckAndClaim(ctx, "winner1", now), gorm.ErrRecordNotFound)

	winner, err := winnerRepo.GetByID(ctx, "winner1")
	require.NoError(t, err)
	require.Equal(t, entity.WinnerPending, winner.Status)
	require.False(t, winner.ClaimedAt.Valid)
}

func Test_winnerRepository_ExpireAllDue(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	winnerRepo := repository.NewWinnerRepository()

	now := time.Now()
	insertWinner(ctx, t, "due1", 1, now.Add(-time.Hour))
	insertWinner(ctx, t, "due2", 2, now)
	insertWinner(ctx, t, "alive", 3, now.Add(time.Hour))

	expired, err := winnerRepo.ExpireAllDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), expired)

	pending, err := winnerRepo.GetPendingByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "alive", pending[0].ID)

	// Expiry never runs twice for the same record.
	expired, err = winnerRepo.ExpireAllDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(0), expired)
}

func Test_allowlistRepository_CheckAndUseEntrySlot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	allowlistRepo := repository.NewAllowlistRepository()

	// Allowlist2 has two entry slots.
	require.NoError(t, allowlistRepo.CheckAndUseEntrySlot(ctx, testutil.Allowlist2.ID))
	require.NoError(t, allowlistRepo.CheckAndUseEntrySlot(ctx, testutil.Allowlist2.ID))
	require.ErrorIs(t,
		allowlistRepo.CheckAndUseEntrySlot(ctx, testutil.Allowlist2.ID), gorm.ErrRecordNotFound)

	// Allowlist1 is unlimited.
	for i := 0; i < 5; i++ {
		require.NoError(t, allowlistRepo.CheckAndUseEntrySlot(ctx, testutil.Allowlist1.ID))
	}
}

func Test_allowlistRepository_CheckAndUseEntrySlot_concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	allowlistRepo := repository.NewAllowlistRepository()

	require.NoError(t, allowlistRepo.Create(ctx, &entity.Allowlist{
		Base:             entity.Base{ID: "one-slot"},
		Title:            "one slot",
		Status:           entity.AllowlistActive,
		CreatedBy:        testutil.User1.ID,
		EntryPriceAmount: "0",
		WinnerCount:      1,
		MaxEntries:       1,
		EndTime:          time.Now().AddDate(0, 0, 1),
	}))

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = allowlistRepo.CheckAndUseEntrySlot(ctx, "one-slot")
		}(i)
	}
	wg.Wait()

	// The conditional update lets exactly one submitter take the last slot.
	var taken, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			taken++
		case errors.Is(err, gorm.ErrRecordNotFound):
			rejected++
		}
	}
	require.Equal(t, 1, taken)
	require.Equal(t, 1, rejected)
}
