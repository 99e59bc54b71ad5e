package view

import (
	"context"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fatih/color"

	"railterm/internal/chain"
	"railterm/internal/decoder"
	"railterm/internal/history"
	"railterm/internal/tokens"
	"railterm/internal/wallet"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var (
	usdcAddr   = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	walletAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	otherAddr  = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

type fakeResolver struct {
	infos map[string]tokens.Info
	names map[string]string
}

func (f fakeResolver) TokenInfo(ctx context.Context, network, tokenAddress string) (tokens.Info, error) {
	if info, ok := f.infos[strings.ToLower(tokenAddress)]; ok {
		return info, nil
	}
	return tokens.Info{}, errors.New("no metadata")
}

func (f fakeResolver) ContractName(ctx context.Context, network, address string) (string, error) {
	if name, ok := f.names[strings.ToLower(address)]; ok {
		return name, nil
	}
	return "", errors.New("no name")
}

func testRenderer() *Renderer {
	resolver := fakeResolver{
		infos: map[string]tokens.Info{
			strings.ToLower(usdcAddr.Hex()): {Name: "USD Coin", Symbol: "USDC", Decimals: 6},
		},
		names: map[string]string{},
	}
	return &Renderer{
		Inferencer:    history.NewInferencer(resolver, "ethereum", 2, 0),
		Resolver:      resolver,
		Names:         resolver,
		Network:       "ethereum",
		WalletAddress: walletAddr.Hex(),
	}
}

func unshieldItem() wallet.HistoryItem {
	return wallet.HistoryItem{
		TxID:        "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BlockNumber: 19000000,
		Timestamp:   1700000000,
		UnshieldERC20Amounts: []wallet.ERC20Amount{{
			TokenAddress:     usdcAddr.Hex(),
			Amount:           wallet.NewAmount(5000000),
			RecipientAddress: otherAddr.Hex(),
			UnshieldFee:      "12500",
			HasValidPOI:      true,
		}},
	}
}

func TestSummaryLineUnshield(t *testing.T) {
	r := testRenderer()
	item := unshieldItem()

	evaluated := history.Classify(item)
	if len(evaluated) != 1 || evaluated[0].Action != history.ActionUnshield {
		t.Fatalf("classification wrong: %v", evaluated)
	}

	line := r.SummaryLine(context.Background(), item, 1)
	if !strings.Contains(line, "UNSHIELD") {
		t.Fatalf("badge missing: %q", line)
	}
	if !strings.Contains(line, "5.0 USDC") {
		t.Fatalf("amount missing: %q", line)
	}
	if !strings.Contains(line, "#19000000") {
		t.Fatalf("block missing: %q", line)
	}
}

func TestSummaryLineUnknownItem(t *testing.T) {
	r := testRenderer()
	line := r.SummaryLine(context.Background(), wallet.HistoryItem{Timestamp: 1700000000}, 2)
	if !strings.Contains(line, "UNKNOWN") || !strings.Contains(line, "—") {
		t.Fatalf("unknown item rendering wrong: %q", line)
	}
}

func TestSummaryLineNFTOnly(t *testing.T) {
	r := testRenderer()
	item := wallet.HistoryItem{
		Timestamp: 1700000000,
		ReceiveNFTAmounts: []wallet.NFTAmount{{
			NFTAddress: "0x4444444444444444444444444444444444444444",
			TokenSubID: "7",
			Amount:     wallet.NewAmount(1),
		}},
	}
	line := r.SummaryLine(context.Background(), item, 1)
	if !strings.Contains(line, "[NFT]") || !strings.Contains(line, "#7 x1") {
		t.Fatalf("nft summary wrong: %q", line)
	}
}

func TestOnChainSectionDegraded(t *testing.T) {
	r := testRenderer()
	ctx := context.Background()
	dec, err := decoder.New()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	pending := wallet.HistoryItem{}
	lines := r.OnChainSection(ctx, pending, nil, dec, true)
	if len(lines) != 1 || !strings.Contains(lines[0], "Transaction hash unavailable") {
		t.Fatalf("missing-txid path wrong: %v", lines)
	}

	lines = r.OnChainSection(ctx, unshieldItem(), nil, dec, true)
	if len(lines) != 1 || !strings.Contains(lines[0], "Could not fetch transaction receipt.") {
		t.Fatalf("missing-lookup path wrong: %v", lines)
	}
}

func transferCalldata(to common.Address, value *big.Int) []byte {
	data := common.FromHex("0xa9059cbb")
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.BigToHash(value).Bytes()...)
	return data
}

func TestOnChainSectionFull(t *testing.T) {
	r := testRenderer()
	ctx := context.Background()
	dec, err := decoder.New()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	transferTopic := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	transferLog := &types.Log{
		Address: usdcAddr,
		Topics: []common.Hash{transferTopic,
			common.BytesToHash(walletAddr.Bytes()), common.BytesToHash(otherAddr.Bytes())},
		Data:  common.BigToHash(big.NewInt(5000000)).Bytes(),
		Index: 0,
	}
	foreignLog := &types.Log{
		Address: otherAddr,
		Topics:  []common.Hash{common.HexToHash("0x0badc0de00000000000000000000000000000000000000000000000000000000")},
		Index:   1,
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		To:       &usdcAddr,
		Gas:      60000,
		GasPrice: big.NewInt(1000000000),
		Data:     transferCalldata(otherAddr, big.NewInt(5000000)),
	})
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(19000000),
		GasUsed:     52000,
		Logs:        []*types.Log{transferLog, foreignLog},
	}
	lookup := &chain.Result{Receipt: receipt, Tx: tx, From: walletAddr, HasFrom: true}

	lines := r.OnChainSection(ctx, unshieldItem(), lookup, dec, true)
	out := strings.Join(lines, "\n")

	for _, want := range []string{
		"On-Chain Lookup",
		"Status: Success",
		"Function: transfer()",
		"Detected Wallet Actions (3)",
		"[ERC20] Unshielded 5.0 USDC to 0x222222...222222",
		"[ERC20] Called transfer: 5.0 USDC to 0x222222...222222",
		"[ERC20] Sent 5.0 USDC to 0x222222...222222",
		"Decoded Events (2)",
		"Unknown(0x0badc0de…)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOnChainSectionHiddenEvents(t *testing.T) {
	r := testRenderer()
	dec, err := decoder.New()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	tx := types.NewTx(&types.LegacyTx{To: &usdcAddr, GasPrice: big.NewInt(1), Gas: 21000})
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1), Logs: nil}
	lookup := &chain.Result{Receipt: receipt, Tx: tx}

	lines := r.OnChainSection(context.Background(), unshieldItem(), lookup, dec, false)
	out := strings.Join(lines, "\n")
	if !strings.Contains(out, "Hidden (0 available)") {
		t.Fatalf("hidden-events line missing:\n%s", out)
	}
}

func TestDetailView(t *testing.T) {
	r := testRenderer()
	out := r.DetailView(context.Background(), unshieldItem(), 1)
	for _, want := range []string{
		"0xaaaaaaaa",
		"UNSHIELD",
		"5.0 USDC",
		otherAddr.Hex(),
		"Unshield Fee: 0.0125 USDC",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}

type stubHinter struct {
	category wallet.Category
}

func (s stubHinter) Category(item wallet.HistoryItem) wallet.Category {
	return s.category
}

func TestDetailViewEngineHint(t *testing.T) {
	r := testRenderer()
	r.Categories = stubHinter{category: wallet.CategoryUnshieldERC20s}

	out := r.DetailView(context.Background(), unshieldItem(), 1)
	if !strings.Contains(out, "Engine Hint") || !strings.Contains(out, "UnshieldERC20s") {
		t.Fatalf("engine hint missing:\n%s", out)
	}

	r.Categories = stubHinter{category: wallet.CategoryUnknown}
	out = r.DetailView(context.Background(), unshieldItem(), 1)
	if strings.Contains(out, "Engine Hint") {
		t.Fatalf("unknown hint must not render:\n%s", out)
	}
}

func TestSummaryLineConfiguredPrecision(t *testing.T) {
	r := testRenderer()
	r.Inferencer.Precision = 2
	item := unshieldItem()
	item.UnshieldERC20Amounts[0].Amount = wallet.NewAmount(1234567)

	line := r.SummaryLine(context.Background(), item, 1)
	if !strings.Contains(line, "1.23 USDC") {
		t.Fatalf("configured precision not applied: %q", line)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(0); got != "Unknown Date" {
		t.Fatalf("zero timestamp = %q", got)
	}
	if got := formatTimestamp(1700000000); !strings.Contains(got, "2023") {
		t.Fatalf("timestamp render = %q", got)
	}
}
