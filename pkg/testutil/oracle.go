package testutil

import (
	"context"
	"errors"
	"math/big"

	"github.com/allowx-lab/backend/internal/entity"
)

type MockOracle struct {
	CheckRequirementFunc func(context.Context, entity.AccessRequirement, string) (bool, error)
	GetBalanceFunc       func(context.Context, string, string) (*big.Int, error)
}

func (o *MockOracle) CheckRequirement(
	ctx context.Context, requirement entity.AccessRequirement, walletAddress string,
) (bool, error) {
	if o.CheckRequirementFunc != nil {
		return o.CheckRequirementFunc(ctx, requirement, walletAddress)
	}

	return false, errors.New("not implemented")
}

func (o *MockOracle) GetBalance(
	ctx context.Context, walletAddress, tokenType string,
) (*big.Int, error) {
	if o.GetBalanceFunc != nil {
		return o.GetBalanceFunc(ctx, walletAddress, tokenType)
	}

	return big.NewInt(0), nil
}
