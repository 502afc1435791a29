// Package chain wraps the JSON-RPC connection to a Polygon node. The
// distribution engine consumes the Client interface; RPCClient is the
// production implementation over go-ethereum's ethclient.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

const receiptPollInterval = 2 * time.Second

// RPCError wraps a node or network failure with the operation that hit it.
type RPCError struct {
	Op  string
	Err error
}

func (e *RPCError) Error() string { return fmt.Sprintf("rpc %s: %v", e.Op, e.Err) }
func (e *RPCError) Unwrap() error { return e.Err }

// ReceiptStatus is the outcome of waiting for a transaction receipt.
type ReceiptStatus int

const (
	ReceiptConfirmed ReceiptStatus = iota
	ReceiptFailed
	// ReceiptPending means the wait timed out; the transaction may still
	// confirm later out-of-band.
	ReceiptPending
)

// Client is the chain RPC surface the distribution engine consumes.
type Client interface {
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	PendingNonce(ctx context.Context, addr common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (ReceiptStatus, error)
	ChainID() *big.Int
}

// RPCClient talks to a live node.
type RPCClient struct {
	client  *ethclient.Client
	chainID *big.Int
}

// Dial connects to the node and verifies it answers by fetching the chain ID.
func Dial(ctx context.Context, url string) (*RPCClient, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, &RPCError{Op: "dial", Err: err}
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, &RPCError{Op: "chain_id", Err: err}
	}
	return &RPCClient{client: client, chainID: chainID}, nil
}

func (c *RPCClient) Close() { c.client.Close() }

// ChainID returns the ID reported by the node at dial time.
func (c *RPCClient) ChainID() *big.Int { return c.chainID }

func (c *RPCClient) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := c.client.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, &RPCError{Op: "get_balance", Err: err}
	}
	return balance, nil
}

func (c *RPCClient) GasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &RPCError{Op: "gas_price", Err: err}
	}
	return price, nil
}

func (c *RPCClient) PendingNonce(ctx context.Context, addr common.Address) (uint64, error) {
	nonce, err := c.client.PendingNonceAt(ctx, addr)
	if err != nil {
		return 0, &RPCError{Op: "pending_nonce", Err: err}
	}
	return nonce, nil
}

func (c *RPCClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return &RPCError{Op: "send_transaction", Err: err}
	}
	return nil
}

// WaitForReceipt polls for the receipt until it appears or timeout elapses.
// A timeout is not a failure: the transaction stays pending.
func (c *RPCClient) WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (ReceiptStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusSuccessful {
				return ReceiptConfirmed, nil
			}
			return ReceiptFailed, nil
		}
		// not indexed yet, or a transient node error: keep polling

		select {
		case <-ctx.Done():
			return ReceiptPending, nil
		case <-time.After(receiptPollInterval):
		}
	}
}
