package domain

import (
	"context"
	"errors"

	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/authenticator"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserDomain interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	tokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewUserDomain(
	userRepo repository.UserRepository,
	tokenEngine authenticator.TokenEngine[model.AccessToken],
) *userDomain {
	return &userDomain{userRepo: userRepo, tokenEngine: tokenEngine}
}

// Login finds or creates the user of a wallet address and issues an access
// token for it.
func (d *userDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "A wallet address is required")
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, req.WalletAddress)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:          entity.Base{ID: uuid.NewString()},
			Name:          req.Name,
			WalletAddress: req.WalletAddress,
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := d.tokenEngine.Generate(user.ID, model.AccessToken{
		ID:            user.ID,
		WalletAddress: user.WalletAddress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{AccessToken: token}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user))
	return &resp, nil
}
