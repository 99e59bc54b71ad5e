package chain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type fakeClient struct {
	receipt     *types.Receipt
	receiptErr  error
	receiptFail int

	tx    *types.Transaction
	txErr error
}

func (c *fakeClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if c.receiptFail > 0 {
		c.receiptFail--
		return nil, errors.New("transient")
	}
	return c.receipt, c.receiptErr
}

func (c *fakeClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	return c.tx, false, c.txErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLookupRetriesReceipt(t *testing.T) {
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	client := &fakeClient{
		receipt:     &types.Receipt{Status: 1, BlockNumber: big.NewInt(10)},
		receiptFail: 2,
		tx:          types.NewTx(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)}),
	}
	f := NewFetcher(client, testLogger(), time.Second, 3, time.Millisecond)

	res := f.Lookup(context.Background(), common.HexToHash("0xaaaa"))
	if res.Receipt == nil {
		t.Fatal("receipt should be fetched after retries")
	}
	if res.Tx == nil {
		t.Fatal("transaction should be fetched")
	}
	if res.HasFrom {
		t.Fatal("unsigned transaction must not yield a sender")
	}
}

func TestLookupDegradesOnReceiptFailure(t *testing.T) {
	client := &fakeClient{receiptErr: errors.New("not found")}
	f := NewFetcher(client, testLogger(), time.Second, 1, time.Millisecond)

	res := f.Lookup(context.Background(), common.HexToHash("0xaaaa"))
	if res == nil {
		t.Fatal("Lookup must never return nil")
	}
	if res.Receipt != nil || res.Tx != nil || res.HasFrom {
		t.Fatalf("degraded result should be empty: %+v", res)
	}
}

func TestLookupDegradesOnTxFailure(t *testing.T) {
	client := &fakeClient{
		receipt: &types.Receipt{Status: 1, BlockNumber: big.NewInt(10)},
		txErr:   errors.New("not found"),
	}
	f := NewFetcher(client, testLogger(), time.Second, 1, time.Millisecond)

	res := f.Lookup(context.Background(), common.HexToHash("0xaaaa"))
	if res.Receipt == nil {
		t.Fatal("receipt should survive a tx-fetch failure")
	}
	if res.Tx != nil || res.HasFrom {
		t.Fatalf("tx should be nil: %+v", res)
	}
}
