package wallet

import (
	"context"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/rpc"
)

// Category is the engine's own coarse classification of a history item.
// It is a hint only; display classification is recomputed locally.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryShieldERC20s
	CategoryUnshieldERC20s
	CategoryTransferSendERC20s
	CategoryTransferReceiveERC20s
)

func (c Category) String() string {
	switch c {
	case CategoryShieldERC20s:
		return "ShieldERC20s"
	case CategoryUnshieldERC20s:
		return "UnshieldERC20s"
	case CategoryTransferSendERC20s:
		return "TransferSendERC20s"
	case CategoryTransferReceiveERC20s:
		return "TransferReceiveERC20s"
	default:
		return "Unknown"
	}
}

// Engine is the external wallet engine. It owns Merkle-tree scanning,
// balance buckets and proof generation; this client only reads from it.
type Engine interface {
	// TransactionHistory fetches all history items for the wallet on the
	// given network. startingBlock of 0 fetches everything.
	TransactionHistory(ctx context.Context, network string, walletID string, startingBlock uint64) ([]HistoryItem, error)

	// Category returns the engine's classification hint for an item.
	Category(item HistoryItem) Category
}

// RPCEngine talks to a wallet-engine sidecar over JSON-RPC. The sidecar
// delivers each item's category alongside the item itself; Category
// answers from that delivery, keyed by txid.
type RPCEngine struct {
	client *rpc.Client

	mu         sync.Mutex
	categories map[string]Category
}

type historyEnvelope struct {
	Item     HistoryItem `json:"item"`
	Category string      `json:"category"`
}

func DialEngine(endpoint string, httpClient *http.Client) (*RPCEngine, error) {
	client, err := rpc.DialHTTPWithClient(endpoint, httpClient)
	if err != nil {
		return nil, err
	}
	client.SetHeader("User-Agent", "railterm")
	return &RPCEngine{client: client, categories: map[string]Category{}}, nil
}

func (e *RPCEngine) Close() {
	e.client.Close()
}

func (e *RPCEngine) TransactionHistory(ctx context.Context, network string, walletID string, startingBlock uint64) ([]HistoryItem, error) {
	var envelopes []historyEnvelope
	err := e.client.CallContext(ctx, &envelopes, "wallet_getTransactionHistory", network, walletID, startingBlock)
	if err != nil {
		return nil, err
	}
	items := make([]HistoryItem, 0, len(envelopes))
	e.mu.Lock()
	for _, env := range envelopes {
		items = append(items, env.Item)
		if env.Item.TxID != "" {
			e.categories[env.Item.TxID] = parseCategory(env.Category)
		}
	}
	e.mu.Unlock()
	return items, nil
}

func (e *RPCEngine) Category(item HistoryItem) Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.categories[item.TxID]
}

func parseCategory(s string) Category {
	switch s {
	case "ShieldERC20s":
		return CategoryShieldERC20s
	case "UnshieldERC20s":
		return CategoryUnshieldERC20s
	case "TransferSendERC20s":
		return CategoryTransferSendERC20s
	case "TransferReceiveERC20s":
		return CategoryTransferReceiveERC20s
	default:
		return CategoryUnknown
	}
}
