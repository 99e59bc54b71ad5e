package tokens

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Info is the fungible-token metadata triple. A lookup fails when the
// contract is unreachable or does not answer the ERC-20 interface; for
// NFT contracts the failed decimals() call is what fails the lookup.
type Info struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Resolver resolves token metadata for a network. Implementations are
// expected to be safe for concurrent use.
type Resolver interface {
	TokenInfo(ctx context.Context, network string, tokenAddress string) (Info, error)
}

var (
	selectorName      = mustSelector("0x06fdde03")
	selectorSymbol    = mustSelector("0x95d89b41")
	selectorDecimals  = mustSelector("0x313ce567")
	selectorBalanceOf = mustSelector("0x70a08231")
)

// RPCResolver answers metadata lookups with eth_call against one
// network's RPC endpoint. Successful lookups are cached for the process
// lifetime; failures are not cached, a failed lookup is re-attempted on
// the next request.
type RPCResolver struct {
	network string
	client  *rpc.Client
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]Info

	names *NameCache
}

func NewRPCResolver(network string, client *rpc.Client, timeout time.Duration, names *NameCache) *RPCResolver {
	if names == nil {
		names = NewNameCache()
	}
	return &RPCResolver{
		network: network,
		client:  client,
		timeout: timeout,
		cache:   map[string]Info{},
		names:   names,
	}
}

func (r *RPCResolver) TokenInfo(ctx context.Context, network string, tokenAddress string) (Info, error) {
	if !strings.EqualFold(network, r.network) {
		return Info{}, fmt.Errorf("resolver serves %q, not %q", r.network, network)
	}
	key := strings.ToLower(tokenAddress)
	r.mu.Lock()
	if info, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return info, nil
	}
	r.mu.Unlock()

	token := common.HexToAddress(tokenAddress)
	decimals, err := r.readDecimals(ctx, token)
	if err != nil {
		return Info{}, err
	}
	symbol, err := r.readString(ctx, token, selectorSymbol)
	if err != nil {
		return Info{}, err
	}
	name, err := r.readString(ctx, token, selectorName)
	if err != nil {
		return Info{}, err
	}

	info := Info{Name: name, Symbol: symbol, Decimals: decimals}
	r.mu.Lock()
	r.cache[key] = info
	r.mu.Unlock()
	return info, nil
}

// ContractName reads name() from any contract, caching by network and
// address. Used for NFT contracts, which have no fungible metadata.
func (r *RPCResolver) ContractName(ctx context.Context, network string, address string) (string, error) {
	if name, ok := r.names.Get(network, address); ok {
		return name, nil
	}
	name, err := r.readString(ctx, common.HexToAddress(address), selectorName)
	if err != nil {
		return "", err
	}
	r.names.Put(network, address, name)
	return name, nil
}

// PublicBalance reads balanceOf(owner) on an ERC-20 contract.
func (r *RPCResolver) PublicBalance(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error) {
	data := append([]byte{}, selectorBalanceOf...)
	data = append(data, encodeAddress(owner)...)
	ret, err := r.ethCall(ctx, token, data)
	if err != nil {
		return nil, err
	}
	return decodeHexBig(hexutil.Encode(ret))
}

func (r *RPCResolver) readDecimals(ctx context.Context, token common.Address) (uint8, error) {
	ret, err := r.ethCall(ctx, token, append([]byte{}, selectorDecimals...))
	if err != nil {
		return 0, err
	}
	v, err := decodeHexBig(hexutil.Encode(ret))
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || v.BitLen() > 8 {
		return 0, fmt.Errorf("decimals out of range: %s", v.String())
	}
	return uint8(v.Uint64()), nil
}

func (r *RPCResolver) readString(ctx context.Context, token common.Address, selector []byte) (string, error) {
	ret, err := r.ethCall(ctx, token, append([]byte{}, selector...))
	if err != nil {
		return "", err
	}
	return decodeABIString(ret)
}

func (r *RPCResolver) ethCall(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	if r.client == nil {
		return nil, errors.New("rpc client is nil")
	}
	call := map[string]string{
		"to":   to.Hex(),
		"data": hexutil.Encode(data),
	}
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	var out string
	if err := r.client.CallContext(cctx, &out, "eth_call", call, "latest"); err != nil {
		return nil, err
	}
	return hexutil.Decode(out)
}

func mustSelector(s string) []byte {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != 4 {
		panic("invalid selector " + s)
	}
	return b
}

func encodeAddress(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

func decodeHexBig(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("hex value is empty")
	}
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		value = value[2:]
	}
	value = strings.TrimLeft(value, "0")
	if value == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(value, 16)
	if !ok {
		return nil, errors.New("invalid hex number")
	}
	return v, nil
}

// decodeABIString handles both ABI-encoded string returns and the
// bytes32 form some older tokens use for symbol()/name().
func decodeABIString(ret []byte) (string, error) {
	if len(ret) == 0 {
		return "", errors.New("empty return data")
	}
	if len(ret) == 32 {
		return string(trimZeroes(ret)), nil
	}
	if len(ret) < 64 {
		return "", errors.New("return data too short for string")
	}
	offset := new(big.Int).SetBytes(ret[:32])
	if !offset.IsInt64() || offset.Int64()+32 > int64(len(ret)) {
		return "", errors.New("string offset out of range")
	}
	start := offset.Int64()
	strLen := new(big.Int).SetBytes(ret[start : start+32])
	if !strLen.IsInt64() || start+32+strLen.Int64() > int64(len(ret)) {
		return "", errors.New("string length out of range")
	}
	return string(ret[start+32 : start+32+strLen.Int64()]), nil
}

func trimZeroes(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}
