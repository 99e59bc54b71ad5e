package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"railterm/internal/history"
	"railterm/internal/tokens"
	"railterm/internal/wallet"
)

// NameResolver resolves display names for NFT contracts.
type NameResolver interface {
	ContractName(ctx context.Context, network, address string) (string, error)
}

// CategoryHinter exposes the wallet engine's classification hint for an
// item. *wallet.RPCEngine satisfies it.
type CategoryHinter interface {
	Category(item wallet.HistoryItem) wallet.Category
}

// Renderer builds the terminal representation of history items. All of
// its methods degrade per entry: a failed metadata lookup falls back to
// a raw form, never to an error.
type Renderer struct {
	Inferencer *history.Inferencer
	Resolver   tokens.Resolver
	Names      NameResolver
	// Categories supplies the engine's per-item hint, shown in the
	// detail view beside the locally derived actions. Optional.
	Categories CategoryHinter
	Network    string
	// WalletAddress seeds the address book for on-chain attribution.
	WalletAddress string
}

func (r *Renderer) precision() int {
	if r.Inferencer != nil {
		return r.Inferencer.Precision
	}
	return 0
}

func formatTimestamp(ts int64) string {
	if ts == 0 {
		return "Unknown Date"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}

func actionBadge(evaluated []history.EvaluatedAction) string {
	label := "UNKNOWN"
	if primary, ok := history.Primary(evaluated); ok {
		label = string(primary.Action)
	}
	padded := fmt.Sprintf("[%-9s]", label)
	return colorFor(label)(padded)
}

func formatActionList(evaluated []history.EvaluatedAction) string {
	if len(evaluated) == 0 {
		return grey("UNKNOWN")
	}
	parts := make([]string, 0, len(evaluated))
	for _, e := range evaluated {
		parts = append(parts, colorFor(string(e.Action))(fmt.Sprintf("%s [%s]", e.Action, e.Asset)))
	}
	return strings.Join(parts, ", ")
}

// SummaryLine renders one list row. UNKNOWN items render with a grey
// badge and an em-dash amount; they are never omitted.
func (r *Renderer) SummaryLine(ctx context.Context, item wallet.HistoryItem, index int) string {
	evaluated := history.Classify(item)
	actions := history.Actions(evaluated)

	var primaryAmounts []wallet.ERC20Amount
	switch {
	case containsAction(actions, history.ActionUnshield):
		primaryAmounts = item.UnshieldERC20Amounts
	case containsAction(actions, history.ActionShield), containsAction(actions, history.ActionReceive):
		primaryAmounts = item.ReceiveERC20Amounts
	case containsAction(actions, history.ActionSend):
		primaryAmounts = item.TransferERC20Amounts
	}
	if len(primaryAmounts) == 0 {
		primaryAmounts = append(primaryAmounts, item.ReceiveERC20Amounts...)
		primaryAmounts = append(primaryAmounts, item.TransferERC20Amounts...)
		primaryAmounts = append(primaryAmounts, item.UnshieldERC20Amounts...)
	}

	amountStr := history.SummaryAmountString(
		r.Inferencer.TokenSummaries(ctx, erc20Amounts(primaryAmounts)), r.precision())

	nftSummary := ""
	if amountStr == "" {
		switch {
		case containsAction(actions, history.ActionUnshield):
			nftSummary = history.FormatNFTListSummary(item.UnshieldNFTAmounts)
		case containsAction(actions, history.ActionSend):
			nftSummary = history.FormatNFTListSummary(item.TransferNFTAmounts)
		case containsAction(actions, history.ActionShield), containsAction(actions, history.ActionReceive):
			nftSummary = history.FormatNFTListSummary(item.ReceiveNFTAmounts)
		}
		if nftSummary == "" {
			all := append([]wallet.NFTAmount{}, item.ReceiveNFTAmounts...)
			all = append(all, item.TransferNFTAmounts...)
			all = append(all, item.UnshieldNFTAmounts...)
			nftSummary = history.FormatNFTListSummary(all)
		}
	}

	amountOrNFT := "—"
	if amountStr != "" {
		amountOrNFT = amountStr
	} else if nftSummary != "" {
		amountOrNFT = "[NFT] " + nftSummary
	}

	block := ""
	if item.BlockNumber > 0 {
		block = fmt.Sprintf("#%d", item.BlockNumber)
	}

	return fmt.Sprintf("%s %s %s %s %s",
		grey(fmt.Sprintf("[%3d]", index)),
		actionBadge(evaluated),
		amountOrNFT,
		grey(formatTimestamp(item.Timestamp)),
		dim(block),
	)
}

func containsAction(actions []history.Action, action history.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func erc20Amounts(amounts []wallet.ERC20Amount) []history.TokenAmount {
	out := make([]history.TokenAmount, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, history.TokenAmount{TokenAddress: a.TokenAddress, Amount: a.Amount.Big()})
	}
	return out
}
