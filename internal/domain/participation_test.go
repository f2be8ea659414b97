package domain

import (
	"context"
	"math/big"
	"testing"

	"github.com/allowx-lab/backend/internal/domain/entryflow"
	"github.com/allowx-lab/backend/internal/domain/taskverify"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestParticipationDomain(
	oracle entryflow.Oracle,
	twitterEndpoint *testutil.MockTwitterEndpoint,
) *participationDomain {
	userRepo := repository.NewUserRepository()
	allowlistRepo := repository.NewAllowlistRepository()
	participationRepo := repository.NewParticipationRepository()

	return NewParticipationDomain(
		allowlistRepo,
		participationRepo,
		userRepo,
		entryflow.NewAccessVerifier(oracle),
		entryflow.NewEntryValidator(
			allowlistRepo,
			participationRepo,
			oracle,
			&testutil.MockRedisClient{},
			&testutil.MockPublisher{},
		),
		taskverify.NewFactory(
			userRepo,
			twitterEndpoint,
			&testutil.MockDiscordEndpoint{},
			&testutil.MockTelegramEndpoint{},
		),
	)
}

func Test_participationDomain_full_flow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	oracle := &testutil.MockOracle{
		GetBalanceFunc: func(context.Context, string, string) (*big.Int, error) {
			return big.NewInt(1000), nil
		},
	}
	twitterEndpoint := &testutil.MockTwitterEndpoint{
		CheckFollowingFunc: func(_ context.Context, handle, targetHandle string) (bool, error) {
			return handle == testutil.User1.TwitterHandle && targetHandle == "allowx", nil
		},
	}

	d := newTestParticipationDomain(oracle, twitterEndpoint)

	started, err := d.Start(ctx, &model.StartParticipationRequest{
		AllowlistID: testutil.Allowlist2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateRequirements), started.State)

	advanced, err := d.Advance(ctx, &model.AdvanceParticipationRequest{
		AllowlistID: testutil.Allowlist2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateTasks), advanced.State)

	// The required twitter task blocks the gate until verified.
	_, err = d.Advance(ctx, &model.AdvanceParticipationRequest{
		AllowlistID: testutil.Allowlist2.ID,
	})
	require.Equal(t, errorx.BadRequest, errorxCode(t, err))

	completed, err := d.CompleteTask(ctx, &model.CompleteTaskRequest{
		AllowlistID: testutil.Allowlist2.ID,
		TaskID:      "task1",
	})
	require.NoError(t, err)
	require.True(t, completed.Completed)
	require.Equal(t, uint64(10), completed.Points)

	advanced, err = d.Advance(ctx, &model.AdvanceParticipationRequest{
		AllowlistID: testutil.Allowlist2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateEntry), advanced.State)

	submitted, err := d.Submit(ctx, &model.SubmitEntryRequest{
		AllowlistID: testutil.Allowlist2.ID,
		Consent:     true,
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateConfirmation), submitted.State)
	require.NotEmpty(t, submitted.ParticipationID)

	participation, err := repository.NewParticipationRepository().GetByID(
		ctx, submitted.ParticipationID)
	require.NoError(t, err)
	require.Equal(t, "100", participation.EntryPriceAmount)
	require.Len(t, participation.Completions, 1)

	// Restarting lands on already_participating.
	started, err = d.Start(ctx, &model.StartParticipationRequest{
		AllowlistID: testutil.Allowlist2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateAlreadyParticipating), started.State)
}

func Test_participationDomain_back_and_cancel(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	d := newTestParticipationDomain(&testutil.MockOracle{}, &testutil.MockTwitterEndpoint{})

	_, err := d.Start(ctx, &model.StartParticipationRequest{AllowlistID: testutil.Allowlist1.ID})
	require.NoError(t, err)

	_, err = d.Advance(ctx, &model.AdvanceParticipationRequest{
		AllowlistID: testutil.Allowlist1.ID,
	})
	require.NoError(t, err)

	back, err := d.Back(ctx, &model.BackParticipationRequest{
		AllowlistID: testutil.Allowlist1.ID,
		To:          string(entryflow.StateRequirements),
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateRequirements), back.State)

	cancelled, err := d.Cancel(ctx, &model.CancelParticipationRequest{
		AllowlistID: testutil.Allowlist1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entryflow.StateCancelled), cancelled.State)

	// The flow is gone after cancelling.
	_, err = d.GetState(ctx, &model.GetParticipationStateRequest{
		AllowlistID: testutil.Allowlist1.ID,
	})
	require.Equal(t, errorx.NotFound, errorxCode(t, err))
}

func Test_participationDomain_unknown_task(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	d := newTestParticipationDomain(&testutil.MockOracle{}, &testutil.MockTwitterEndpoint{})

	_, err := d.Start(ctx, &model.StartParticipationRequest{AllowlistID: testutil.Allowlist2.ID})
	require.NoError(t, err)

	_, err = d.Advance(ctx, &model.AdvanceParticipationRequest{
		AllowlistID: testutil.Allowlist2.ID,
	})
	require.NoError(t, err)

	_, err = d.CompleteTask(ctx, &model.CompleteTaskRequest{
		AllowlistID: testutil.Allowlist2.ID,
		TaskID:      "no-such-task",
	})
	require.Equal(t, errorx.NotFound, errorxCode(t, err))
}
