package chain

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"railterm/internal/util"
)

// Client is the subset of the RPC provider the detail view needs.
// *ethclient.Client satisfies it.
type Client interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
}

type Fetcher struct {
	client       Client
	logger       *slog.Logger
	timeout      time.Duration
	retryMax     int
	retryBackoff time.Duration
}

func NewFetcher(client Client, logger *slog.Logger, timeout time.Duration, retryMax int, retryBackoff time.Duration) *Fetcher {
	return &Fetcher{
		client:       client,
		logger:       logger,
		timeout:      timeout,
		retryMax:     retryMax,
		retryBackoff: retryBackoff,
	}
}

// Result is one transaction's on-chain view. A nil Receipt or Tx means
// the fetch degraded; callers render a "could not fetch" line instead
// of failing.
type Result struct {
	Receipt *types.Receipt
	Tx      *types.Transaction
	From    common.Address
	HasFrom bool
}

// Lookup fetches the receipt and transaction for a hash. Failures are
// logged and degrade to nil fields; rendering of the rest of the item
// must not be blocked by a chain-query failure.
func (f *Fetcher) Lookup(ctx context.Context, hash common.Hash) *Result {
	res := &Result{}

	err := util.Retry(ctx, f.retryMax, f.retryBackoff, func() error {
		cctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()
		receipt, err := f.client.TransactionReceipt(cctx, hash)
		if err != nil {
			return err
		}
		res.Receipt = receipt
		return nil
	})
	if err != nil {
		f.logger.Warn("receipt fetch failed", "tx", hash.Hex(), "error", err)
		return res
	}

	err = util.Retry(ctx, f.retryMax, f.retryBackoff, func() error {
		cctx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()
		tx, _, err := f.client.TransactionByHash(cctx, hash)
		if err != nil {
			return err
		}
		res.Tx = tx
		return nil
	})
	if err != nil {
		f.logger.Warn("transaction fetch failed", "tx", hash.Hex(), "error", err)
		return res
	}

	if res.Tx != nil {
		signer := types.LatestSignerForChainID(res.Tx.ChainId())
		if from, err := types.Sender(signer, res.Tx); err == nil {
			res.From = from
			res.HasFrom = true
		}
	}
	return res
}
