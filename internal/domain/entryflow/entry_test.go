package entryflow

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestValidator(oracle Oracle) *EntryValidator {
	return NewEntryValidator(
		repository.NewAllowlistRepository(),
		repository.NewParticipationRepository(),
		oracle,
		&testutil.MockRedisClient{},
		&testutil.MockPublisher{},
	)
}

func errorxCode(t *testing.T, err error) errorx.Code {
	t.Helper()

	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	return errorx.Code(errx.Code)
}

func Test_EntryValidator_Submit_duplicate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validator := newTestValidator(&testutil.MockOracle{})

	allowlist := testutil.Allowlist1
	first, err := validator.Submit(ctx, &allowlist, testutil.User1.ID, testutil.User1.WalletAddress, nil)
	require.NoError(t, err)
	require.Equal(t, allowlist.EntryPriceAmount, first.EntryPriceAmount)

	_, err = validator.Submit(ctx, &allowlist, testutil.User1.ID, testutil.User1.WalletAddress, nil)
	require.Equal(t, errorx.DuplicateEntry, errorxCode(t, err))
}

func Test_EntryValidator_Submit_insufficient_balance(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validator := newTestValidator(&testutil.MockOracle{
		GetBalanceFunc: func(context.Context, string, string) (*big.Int, error) {
			return big.NewInt(50), nil
		},
	})

	allowlist := testutil.Allowlist2
	_, err := validator.Submit(ctx, &allowlist, testutil.User1.ID, testutil.User1.WalletAddress, nil)
	require.Equal(t, errorx.InsufficientBalance, errorxCode(t, err))
}

func Test_EntryValidator_Submit_capacity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	allowlistRepo := repository.NewAllowlistRepository()
	allowlist := entity.Allowlist{
		Base:             entity.Base{ID: "tiny"},
		Title:            "One slot",
		Status:           entity.AllowlistActive,
		CreatedBy:        testutil.User1.ID,
		EntryPriceAmount: "0",
		WinnerCount:      1,
		MaxEntries:       1,
		EndTime:          time.Now().AddDate(0, 0, 1),
	}
	require.NoError(t, allowlistRepo.Create(ctx, &allowlist))

	validator := newTestValidator(&testutil.MockOracle{})

	_, err := validator.Submit(ctx, &allowlist, testutil.User1.ID, testutil.User1.WalletAddress, nil)
	require.NoError(t, err)

	_, err = validator.Submit(ctx, &allowlist, testutil.User2.ID, testutil.User2.WalletAddress, nil)
	require.Equal(t, errorx.CapacityExceeded, errorxCode(t, err))

	count, err := repository.NewParticipationRepository().Count(ctx, allowlist.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_EntryValidator_Submit_balance_lookup_failure(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validator := newTestValidator(&testutil.MockOracle{
		GetBalanceFunc: func(context.Context, string, string) (*big.Int, error) {
			return nil, errors.New("rpc unavailable")
		},
	})

	allowlist := testutil.Allowlist2
	_, err := validator.Submit(ctx, &allowlist, testutil.User1.ID, testutil.User1.WalletAddress, nil)
	require.Equal(t, errorx.InsufficientBalance, errorxCode(t, err))
}

func Test_EntryValidator_CanSubmit(t *testing.T) {
	validator := newTestValidator(&testutil.MockOracle{})

	allowlist := testutil.Allowlist2
	completions := []entity.TaskCompletion{{TaskID: "task1", Completed: true}}

	require.False(t, validator.CanSubmit(&allowlist, completions, big.NewInt(100), false))
	require.False(t, validator.CanSubmit(&allowlist, nil, big.NewInt(100), true))
	require.False(t, validator.CanSubmit(&allowlist, completions, big.NewInt(99), true))
	require.True(t, validator.CanSubmit(&allowlist, completions, big.NewInt(100), true))

	free := testutil.Allowlist1
	require.True(t, validator.CanSubmit(&free, nil, nil, true))
}
