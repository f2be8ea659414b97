package entryflow

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/pubsub"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/allowx-lab/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const EntrySubmittedTopic = "entry_submitted"

var errRequirementNotMet = errors.New("requirement not met")

// EntryValidator performs the authoritative entry submission. The capacity
// and duplicate decisions happen inside one database transaction, every
// check before that is only a fast fail.
type EntryValidator struct {
	allowlistRepo     repository.AllowlistRepository
	participationRepo repository.ParticipationRepository
	oracle            Oracle
	redisClient       xredis.Client
	publisher         pubsub.Publisher
}

func NewEntryValidator(
	allowlistRepo repository.AllowlistRepository,
	participationRepo repository.ParticipationRepository,
	oracle Oracle,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) *EntryValidator {
	return &EntryValidator{
		allowlistRepo:     allowlistRepo,
		participationRepo: participationRepo,
		oracle:            oracle,
		redisClient:       redisClient,
		publisher:         publisher,
	}
}

// CanSubmit is the advisory precheck. The balance is supplied by the caller
// so this never issues a network call on its own.
func (v *EntryValidator) CanSubmit(
	allowlist *entity.Allowlist,
	completions []entity.TaskCompletion,
	balance *big.Int,
	consent bool,
) bool {
	if !consent {
		return false
	}

	if !requiredComplete(allowlist.Tasks, completions) {
		return false
	}

	price, err := parseAmount(allowlist.EntryPriceAmount)
	if err != nil {
		return false
	}

	if price.Sign() > 0 && (balance == nil || balance.Cmp(price) < 0) {
		return false
	}

	return true
}

// Submit creates the participation record. Duplicate, balance and capacity
// checks are all revalidated here regardless of any earlier CanSubmit.
func (v *EntryValidator) Submit(
	ctx context.Context,
	allowlist *entity.Allowlist,
	userID, walletAddress string,
	completions []entity.TaskCompletion,
) (*entity.Participation, error) {
	price, err := parseAmount(allowlist.EntryPriceAmount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid entry price of allowlist %s: %v", allowlist.ID, err)
		return nil, errorx.Unknown
	}

	if price.Sign() > 0 {
		balance, err := v.oracle.GetBalance(ctx, walletAddress, allowlist.EntryPriceToken)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get balance of %s: %v", walletAddress, err)
			return nil, errorx.New(errorx.InsufficientBalance, "Cannot verify balance")
		}

		if balance.Cmp(price) < 0 {
			return nil, errorx.New(errorx.InsufficientBalance, "Not enough %s for the entry price",
				allowlist.EntryPriceToken)
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if !allowlist.AllowDuplicateWallet {
		exists, err := v.participationRepo.Exists(ctx, allowlist.ID, walletAddress)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check existing participation: %v", err)
			return nil, errorx.Unknown
		}

		if exists {
			return nil, errorx.New(errorx.DuplicateEntry, "Wallet already entered this allowlist")
		}
	}

	if err := v.allowlistRepo.CheckAndUseEntrySlot(ctx, allowlist.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.CapacityExceeded, "Allowlist is full")
		}

		xcontext.Logger(ctx).Errorf("Cannot use entry slot: %v", err)
		return nil, errorx.Unknown
	}

	participation := &entity.Participation{
		Base:             entity.Base{ID: uuid.NewString()},
		AllowlistID:      allowlist.ID,
		UserID:           userID,
		WalletAddress:    walletAddress,
		EntryPriceToken:  allowlist.EntryPriceToken,
		EntryPriceAmount: allowlist.EntryPriceAmount,
		Completions:      completions,
	}

	if allowlist.AllowDuplicateWallet {
		participation.EntryKey = participation.ID
	}

	// The unique (allowlist, wallet, entry key) index is the authoritative
	// duplicate guard, the Exists read above only fails fast.
	if err := v.participationRepo.Create(ctx, participation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.DuplicateEntry, "Wallet already entered this allowlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot create participation: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	v.afterSubmit(ctx, allowlist, participation)

	return participation, nil
}

// afterSubmit awards leaderboard points and announces the entry. Both are
// best effort, the participation is already committed.
func (v *EntryValidator) afterSubmit(
	ctx context.Context, allowlist *entity.Allowlist, participation *entity.Participation,
) {
	var points uint64
	for _, completion := range participation.Completions {
		if completion.Completed {
			points += completion.Points
		}
	}

	if v.redisClient != nil && points > 0 {
		err := v.redisClient.ZIncrBy(
			ctx, LeaderboardKey(allowlist.ID), int64(points), participation.UserID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot record leaderboard points: %v", err)
		}
	}

	if v.publisher != nil {
		msg, err := json.Marshal(map[string]any{
			"allowlist_id":     allowlist.ID,
			"participation_id": participation.ID,
			"wallet_address":   participation.WalletAddress,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal entry event: %v", err)
			return
		}

		pack := &pubsub.Pack{Key: []byte(allowlist.ID), Msg: msg}
		if err := v.publisher.Publish(ctx, EntrySubmittedTopic, pack); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish entry event: %v", err)
		}
	}
}

// LeaderboardKey is the redis sorted set holding task points per user of
// one allowlist.
func LeaderboardKey(allowlistID string) string {
	return "leaderboard:" + allowlistID
}

func requiredComplete(tasks []entity.SocialTask, completions []entity.TaskCompletion) bool {
	completed := map[string]bool{}
	for _, completion := range completions {
		completed[completion.TaskID] = completion.Completed
	}

	for _, task := range tasks {
		if task.Required && !completed[task.ID] {
			return false
		}
	}

	return true
}

func parseAmount(amount string) (*big.Int, error) {
	if amount == "" {
		return big.NewInt(0), nil
	}

	value, ok := new(big.Int).SetString(amount, 10)
	if !ok || value.Sign() < 0 {
		return nil, errors.New("invalid decimal amount")
	}

	return value, nil
}
