package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenObject struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
}

func Test_jwtTokenEngine(t *testing.T) {
	engine := NewTokenEngine[tokenObject]("secret", time.Minute)

	token, err := engine.Generate("user1", tokenObject{ID: "user1", WalletAddress: "0xabc"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "0xabc", obj.WalletAddress)
}

func Test_jwtTokenEngine_Expired(t *testing.T) {
	engine := NewTokenEngine[tokenObject]("secret", -time.Minute)

	token, err := engine.Generate("user1", tokenObject{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func Test_jwtTokenEngine_WrongSecret(t *testing.T) {
	engine := NewTokenEngine[tokenObject]("secret", time.Minute)
	another := NewTokenEngine[tokenObject]("another-secret", time.Minute)

	token, err := engine.Generate("user1", tokenObject{ID: "user1"})
	require.NoError(t, err)

	_, err = another.Verify(token)
	require.Error(t, err)
}
