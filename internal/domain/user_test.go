package domain

import (
	"testing"
	"time"

	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/authenticator"
	"github.com/allowx-lab/backend/pkg/errorx"
	"github.com/allowx-lab/backend/pkg/testutil"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	tokenEngine := authenticator.NewTokenEngine[model.AccessToken]("secret", time.Minute)
	d := NewUserDomain(repository.NewUserRepository(), tokenEngine)

	// An unknown wallet gets a fresh user.
	resp, err := d.Login(ctx, &model.LoginRequest{
		WalletAddress: "0x9999999999999999999999999999999999999999",
		Name:          "newcomer",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	accessToken, err := tokenEngine.Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "0x9999999999999999999999999999999999999999", accessToken.WalletAddress)

	// A known wallet logs into the existing user.
	resp, err = d.Login(ctx, &model.LoginRequest{WalletAddress: testutil.User1.WalletAddress})
	require.NoError(t, err)

	accessToken, err = tokenEngine.Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, accessToken.ID)

	_, err = d.Login(ctx, &model.LoginRequest{})
	require.Equal(t, errorx.BadRequest, errorxCode(t, err))
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	tokenEngine := authenticator.NewTokenEngine[model.AccessToken]("secret", time.Minute)
	d := NewUserDomain(repository.NewUserRepository(), tokenEngine)

	resp, err := d.GetMe(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.WalletAddress, resp.WalletAddress)
	require.Equal(t, testutil.User1.TwitterHandle, resp.TwitterHandle)
}
