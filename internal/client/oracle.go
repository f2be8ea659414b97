package client

import (
	"context"
	"math/big"
	"strings"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/api/discord"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/eth"
	"github.com/allowx-lab/backend/pkg/xcontext"
)

// oracle answers access requirement and balance questions with the chain
// clients and the discord API. One eth client is kept per configured chain.
type oracle struct {
	userRepo        repository.UserRepository
	discordEndpoint discord.IEndpoint
	chainClients    map[string]eth.Client
}

func NewOracle(
	ctx context.Context,
	userRepo repository.UserRepository,
	discordEndpoint discord.IEndpoint,
) *oracle {
	chainClients := make(map[string]eth.Client)
	for name, cfg := range xcontext.Configs(ctx).Chains {
		chainClients[name] = eth.NewClient(cfg)
	}

	return &oracle{
		userRepo:        userRepo,
		discordEndpoint: discordEndpoint,
		chainClients:    chainClients,
	}
}

func (o *oracle) CheckRequirement(
	ctx context.Context, requirement entity.AccessRequirement, walletAddress string,
) (bool, error) {
	switch requirement.Type {
	case entity.RequirementNFTOwnership:
		balance, err := o.holdings(ctx, requirement.Chain, requirement.ContractAddress, walletAddress)
		if err != nil {
			return false, err
		}

		return balance.Cmp(minAmount(requirement.MinAmount, big.NewInt(1))) >= 0, nil

	case entity.RequirementTokenBalance:
		balance, err := o.holdings(ctx, requirement.Chain, requirement.ContractAddress, walletAddress)
		if err != nil {
			return false, err
		}

		return balance.Cmp(minAmount(requirement.MinAmount, big.NewInt(0))) >= 0, nil

	case entity.RequirementCommunityMember:
		user, err := o.userRepo.GetByWalletAddress(ctx, walletAddress)
		if err != nil {
			return false, err
		}

		if user.DiscordID == "" {
			return false, nil
		}

		return o.discordEndpoint.CheckMember(ctx, requirement.GuildID, user.DiscordID)
	}

	return false, errorx.New(errorx.BadRequest, "Unknown requirement type %s", requirement.Type)
}

// GetBalance resolves a token type of the form "chain" for the native token
// or "chain:contract" for an ERC-20 token.
func (o *oracle) GetBalance(
	ctx context.Context, walletAddress, tokenType string,
) (*big.Int, error) {
	chain, contract, _ := strings.Cut(tokenType, ":")
	return o.holdings(ctx, chain, contract, walletAddress)
}

func (o *oracle) holdings(
	ctx context.Context, chain, contract, walletAddress string,
) (*big.Int, error) {
	chainClient, ok := o.chainClients[chain]
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported chain %s", chain)
	}

	if contract == "" {
		return chainClient.NativeBalance(ctx, walletAddress)
	}

	return chainClient.BalanceOf(ctx, contract, walletAddress)
}

func minAmount(amount string, fallback *big.Int) *big.Int {
	if amount == "" {
		return fallback
	}

	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fallback
	}

	return value
}
