package entryflow

import (
	"context"
	"math/big"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// Oracle answers on-chain and membership questions for a wallet. Balances
// are returned in base units of the token.
type Oracle interface {
	CheckRequirement(
		ctx context.Context, requirement entity.AccessRequirement, walletAddress string,
	) (bool, error)
	GetBalance(ctx context.Context, walletAddress, tokenType string) (*big.Int, error)
}

type AccessVerifier struct {
	oracle Oracle
}

func NewAccessVerifier(oracle Oracle) *AccessVerifier {
	return &AccessVerifier{oracle: oracle}
}

// Verify reports whether the wallet satisfies every access requirement of
// the allowlist. An empty requirement set passes without any oracle call.
// Oracle errors count as a failed requirement.
func (v *AccessVerifier) Verify(
	ctx context.Context, allowlist *entity.Allowlist, walletAddress string,
) bool {
	if len(allowlist.Requirements) == 0 {
		return true
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, requirement := range allowlist.Requirements {
		requirement := requirement
		group.Go(func() error {
			ok, err := v.oracle.CheckRequirement(groupCtx, requirement, walletAddress)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot check requirement %s: %v", requirement.Type, err)
				return err
			}

			if !ok {
				return errRequirementNotMet
			}

			return nil
		})
	}

	return group.Wait() == nil
}
