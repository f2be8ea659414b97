package entryflow

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_AccessVerifier_empty_requirements_skip_oracle(t *testing.T) {
	var calls int32
	verifier := NewAccessVerifier(&testutil.MockOracle{
		CheckRequirementFunc: func(
			context.Context, entity.AccessRequirement, string,
		) (bool, error) {
			atomic.AddInt32(&calls, 1)
			return true, nil
		},
	})

	allowlist := &entity.Allowlist{Base: entity.Base{ID: "allowlist"}}
	require.True(t, verifier.Verify(context.Background(), allowlist, "0xabc"))
	require.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func Test_AccessVerifier_all_requirements_must_pass(t *testing.T) {
	allowlist := &entity.Allowlist{
		Requirements: []entity.AccessRequirement{
			{Type: entity.RequirementNFTOwnership, ContractAddress: "0x1"},
			{Type: entity.RequirementTokenBalance, ContractAddress: "0x2"},
		},
	}

	verifier := NewAccessVerifier(&testutil.MockOracle{
		CheckRequirementFunc: func(
			_ context.Context, requirement entity.AccessRequirement, _ string,
		) (bool, error) {
			return requirement.ContractAddress == "0x1", nil
		},
	})
	require.False(t, verifier.Verify(context.Background(), allowlist, "0xabc"))

	verifier = NewAccessVerifier(&testutil.MockOracle{
		CheckRequirementFunc: func(
			context.Context, entity.AccessRequirement, string,
		) (bool, error) {
			return true, nil
		},
	})
	require.True(t, verifier.Verify(context.Background(), allowlist, "0xabc"))
}

func Test_AccessVerifier_oracle_error_fails_closed(t *testing.T) {
	allowlist := &entity.Allowlist{
		Requirements: []entity.AccessRequirement{
			{Type: entity.RequirementTokenBalance},
		},
	}

	verifier := NewAccessVerifier(&testutil.MockOracle{
		CheckRequirementFunc: func(
			context.Context, entity.AccessRequirement, string,
		) (bool, error) {
			return true, errors.New("rpc unavailable")
		},
	})

	require.False(t, verifier.Verify(context.Background(), allowlist, "0xabc"))
}
