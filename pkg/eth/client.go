package eth

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/allowx-lab/backend/config"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var RpcTimeOut = time.Second * 5

// balanceOfSelector is the 4-byte selector of balanceOf(address), shared by
// the ERC-20 and ERC-721 standards.
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

// Client is a read-only view of one chain, enough to answer holdings
// questions about a wallet.
type Client interface {
	NativeBalance(ctx context.Context, wallet string) (*big.Int, error)
	BalanceOf(ctx context.Context, contract, wallet string) (*big.Int, error)
}

// defaultClient maintains one connection per configured RPC and retries a
// call on the next RPC when one of them misbehaves.
type defaultClient struct {
	chain string
	rpcs  []string

	lock    sync.Mutex
	clients map[string]*ethclient.Client
}

func NewClient(cfg config.ChainConfig) *defaultClient {
	return &defaultClient{
		chain:   cfg.Chain,
		rpcs:    cfg.Rpcs,
		clients: make(map[string]*ethclient.Client),
	}
}

func (c *defaultClient) NativeBalance(ctx context.Context, wallet string) (*big.Int, error) {
	var balance *big.Int
	err := c.execute(ctx, func(ctx context.Context, client *ethclient.Client) error {
		var err error
		balance, err = client.BalanceAt(ctx, common.HexToAddress(wallet), nil)
		return err
	})

	return balance, err
}

func (c *defaultClient) BalanceOf(ctx context.Context, contract, wallet string) (*big.Int, error) {
	contractAddress := common.HexToAddress(contract)
	data := append([]byte{}, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(wallet).Bytes(), 32)...)

	var result []byte
	err := c.execute(ctx, func(ctx context.Context, client *ethclient.Client) error {
		var err error
		result, err = client.CallContract(ctx, ethereum.CallMsg{
			To:   &contractAddress,
			Data: data,
		}, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(result), nil
}

func (c *defaultClient) execute(
	ctx context.Context, call func(context.Context, *ethclient.Client) error,
) error {
	for _, rpc := range c.rpcs {
		client, err := c.clientOf(ctx, rpc)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot dial to rpc %s of %s: %v", rpc, c.chain, err)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		err = call(callCtx, client)
		cancel()
		if err != nil {
			xcontext.Logger(ctx).Warnf("An error occured when calling rpc %s of %s: %v",
				rpc, c.chain, err)
			c.forget(rpc)
			continue
		}

		return nil
	}

	return errors.New("all rpcs got errors")
}

func (c *defaultClient) clientOf(ctx context.Context, rpc string) (*ethclient.Client, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if client, ok := c.clients[rpc]; ok {
		return client, nil
	}

	client, err := ethclient.DialContext(ctx, rpc)
	if err != nil {
		return nil, err
	}

	c.clients[rpc] = client
	return client, nil
}

func (c *defaultClient) forget(rpc string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if client, ok := c.clients[rpc]; ok {
		client.Close()
		delete(c.clients, rpc)
	}
}
