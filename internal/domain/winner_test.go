package domain

import (
	"testing"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func errorxCode(t *testing.T, err error) errorx.Code {
	t.Helper()

	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	return errorx.Code(errx.Code)
}

func Test_winnerDomain_Claim(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	winnerRepo := repository.NewWinnerRepository()
	now := time.Now()
	require.NoError(t, winnerRepo.Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: "winner1"},
		ParticipationID: "participation1",
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        1,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  now.Add(time.Hour),
	}))

	d := NewWinnerDomain(winnerRepo, &testutil.MockPublisher{})
	d.nowFunc = func() time.Time { return now }

	resp, err := d.Claim(ctx, &model.ClaimWinnerRequest{WinnerID: "winner1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ClaimedAt)

	_, err = d.Claim(ctx, &model.ClaimWinnerRequest{WinnerID: "winner1"})
	require.Equal(t, errorx.AlreadyClaimed, errorxCode(t, err))
}

// A claim after the window closed fails no matter what the caller saw
// before.
func Test_winnerDomain_Claim_expired(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	winnerRepo := repository.NewWinnerRepository()
	now := time.Now()
	require.NoError(t, winnerRepo.Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: "winner1"},
		ParticipationID: "participation1",
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        1,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  now.Add(time.Minute),
	}))

	d := NewWinnerDomain(winnerRepo, &testutil.MockPublisher{})
	d.nowFunc = func() time.Time { return now }

	// The record still reads as pending.
	pending, err := d.GetPending(ctx, &model.GetPendingWinnersRequest{})
	require.NoError(t, err)
	require.Len(t, pending.Winners, 1)

	// The window closes before the user acts.
	d.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }

	_, err = d.Claim(ctx, &model.ClaimWinnerRequest{WinnerID: "winner1"})
	require.Equal(t, errorx.ClaimExpired, errorxCode(t, err))
}

// Once a winner was observed expired it never shows up as pending again,
// even if the clock is read slightly behind afterwards.
func Test_winnerDomain_GetPending_monotonic(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	winnerRepo := repository.NewWinnerRepository()
	now := time.Now()
	require.NoError(t, winnerRepo.Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: "winner1"},
		ParticipationID: "participation1",
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        1,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  now,
	}))

	d := NewWinnerDomain(winnerRepo, &testutil.MockPublisher{})
	d.nowFunc = func() time.Time { return now.Add(time.Second) }

	resp, err := d.GetPending(ctx, &model.GetPendingWinnersRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Winners)

	d.nowFunc = func() time.Time { return now.Add(-time.Second) }

	resp, err = d.GetPending(ctx, &model.GetPendingWinnersRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Winners)
}

func Test_winnerDomain_Claim_of_other_user(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	winnerRepo := repository.NewWinnerRepository()
	require.NoError(t, winnerRepo.Create(ctx, &entity.Winner{
		Base:            entity.Base{ID: "winner1"},
		ParticipationID: "participation1",
		AllowlistID:     testutil.Allowlist1.ID,
		UserID:          testutil.User1.ID,
		Position:        1,
		Status:          entity.WinnerPending,
		ClaimExpiresAt:  time.Now().Add(time.Hour),
	}))

	d := NewWinnerDomain(winnerRepo, &testutil.MockPublisher{})

	_, err := d.Claim(ctx, &model.ClaimWinnerRequest{WinnerID: "winner1"})
	require.Equal(t, errorx.PermissionDenied, errorxCode(t, err))
}
