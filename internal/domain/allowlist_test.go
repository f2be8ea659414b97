package domain

import (
	"testing"
	"time"

	"github.com/allowx-lab/backend/internal/domain/taskverify"
	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestAllowlistDomain() *allowlistDomain {
	return NewAllowlistDomain(
		repository.NewAllowlistRepository(),
		repository.NewParticipationRepository(),
		repository.NewWinnerRepository(),
		&testutil.MockPublisher{},
		taskverify.NewFactory(
			repository.NewUserRepository(),
			&testutil.MockTwitterEndpoint{},
			&testutil.MockDiscordEndpoint{},
			&testutil.MockTelegramEndpoint{},
		),
	)
}

func Test_allowlistDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	d := newTestAllowlistDomain()
	endTime := time.Now().AddDate(0, 0, 7).Format(model.DefaultTimeLayout)

	resp, err := d.Create(ctx, &model.CreateAllowlistRequest{
		Title:            "New drop",
		EntryPriceToken:  "eth",
		EntryPriceAmount: "1000",
		WinnerCount:      10,
		MaxEntries:       100,
		EndTime:          endTime,
		Tasks: []model.SocialTask{
			{Type: "twitter_follow", Required: true, Points: 10,
				Payload: map[string]any{"target_handle": "allowx"}},
		},
		Requirements: []model.AccessRequirement{
			{Type: "token_balance", Chain: "eth", MinAmount: "1"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	got, err := d.Get(ctx, &model.GetAllowlistRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "New drop", got.Title)
	require.Equal(t, string(entity.AllowlistActive), got.Status)
	require.Equal(t, testutil.User1.ID, got.CreatedBy)
	require.Len(t, got.Tasks, 1)
	require.NotEmpty(t, got.Tasks[0].ID)

	invalidCases := []*model.CreateAllowlistRequest{
		{Title: "", WinnerCount: 1, EndTime: endTime},
		{Title: "t", WinnerCount: 0, EndTime: endTime},
		{Title: "t", WinnerCount: -5, EndTime: endTime},
		{Title: "t", WinnerCount: 1, ProfitGuaranteePercent: 101, EndTime: endTime},
		{Title: "t", WinnerCount: 1, EntryPriceAmount: "ten", EndTime: endTime},
		{Title: "t", WinnerCount: 1, EndTime: "not-a-time"},
		{Title: "t", WinnerCount: 1,
			EndTime: time.Now().Add(-time.Hour).Format(model.DefaultTimeLayout)},
		{Title: "t", WinnerCount: 1, EndTime: endTime,
			Tasks: []model.SocialTask{{Type: "unknown_type"}}},
		{Title: "t", WinnerCount: 1, EndTime: endTime,
			Requirements: []model.AccessRequirement{{Type: "unknown_type"}}},
	}

	for _, req := range invalidCases {
		_, err := d.Create(ctx, req)
		require.Equal(t, errorx.BadRequest, errorxCode(t, err), "request %+v", req)
	}
}

func Test_allowlistDomain_Complete_draws_winners(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	participationRepo := repository.NewParticipationRepository()
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, participationRepo.Create(ctx, &entity.Participation{
			Base:          entity.Base{ID: id},
			AllowlistID:   testutil.Allowlist1.ID,
			UserID:        "user-" + id,
			WalletAddress: "0x" + id,
		}))
	}

	d := newTestAllowlistDomain()
	now := time.Now()
	d.nowFunc = func() time.Time { return now }

	// Allowlist1 draws a single winner out of three participants.
	resp, err := d.Complete(ctx, &model.CompleteAllowlistRequest{ID: testutil.Allowlist1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Winners, 1)
	require.Equal(t, 1, resp.Winners[0].Position)
	require.Equal(t, string(entity.WinnerPending), resp.Winners[0].Status)

	winner, err := repository.NewWinnerRepository().GetByID(ctx, resp.Winners[0].ID)
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(48*time.Hour), winner.ClaimExpiresAt, time.Second)

	// Completing twice is rejected.
	_, err = d.Complete(ctx, &model.CompleteAllowlistRequest{ID: testutil.Allowlist1.ID})
	require.Equal(t, errorx.BadRequest, errorxCode(t, err))
}

func Test_allowlistDomain_Complete_everyone_wins(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	participationRepo := repository.NewParticipationRepository()
	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, participationRepo.Create(ctx, &entity.Participation{
			Base:          entity.Base{ID: id},
			AllowlistID:   testutil.Allowlist2.ID,
			UserID:        "user-" + id,
			WalletAddress: "0x" + id,
		}))
	}

	d := newTestAllowlistDomain()
	resp, err := d.Complete(ctx, &model.CompleteAllowlistRequest{ID: testutil.Allowlist2.ID})
	require.NoError(t, err)
	require.Len(t, resp.Winners, 2)
	require.Equal(t, 1, resp.Winners[0].Position)
	require.Equal(t, 2, resp.Winners[1].Position)
}

func Test_allowlistDomain_Complete_not_creator(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	d := newTestAllowlistDomain()
	_, err := d.Complete(ctx, &model.CompleteAllowlistRequest{ID: testutil.Allowlist1.ID})
	require.Equal(t, errorx.PermissionDenied, errorxCode(t, err))
}

func Test_allowlistDomain_Cancel(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	d := newTestAllowlistDomain()
	_, err := d.Cancel(ctx, &model.CancelAllowlistRequest{ID: testutil.Allowlist1.ID})
	require.NoError(t, err)

	got, err := d.Get(ctx, &model.GetAllowlistRequest{ID: testutil.Allowlist1.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.AllowlistCancelled), got.Status)

	// A cancelled allowlist cannot be completed afterwards.
	_, err = d.Complete(ctx, &model.CompleteAllowlistRequest{ID: testutil.Allowlist1.ID})
	require.Equal(t, errorx.BadRequest, errorxCode(t, err))
}
