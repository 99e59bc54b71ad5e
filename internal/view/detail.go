package view

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"railterm/internal/history"
	"railterm/internal/tokens"
	"railterm/internal/wallet"
)

// DetailView renders the full drill-down for one history item.
func (r *Renderer) DetailView(ctx context.Context, item wallet.HistoryItem, index int) string {
	evaluated := history.Classify(item)
	actions := history.Actions(evaluated)

	headerLabel := "UNKNOWN"
	if len(actions) > 0 {
		parts := make([]string, 0, len(actions))
		for _, a := range actions {
			parts = append(parts, string(a))
		}
		headerLabel = strings.Join(parts, "+")
	}
	headerColor := grey
	if len(actions) == 1 {
		headerColor = colorFor(string(actions[0]))
	}

	var lines []string
	rule := grey(strings.Repeat("═", 60))
	lines = append(lines, "", rule)
	lines = append(lines, fmt.Sprintf("  %s  %s  %s%s",
		bold("Transaction Detail"), headerColor("["+headerLabel+"]"), grey("#"), grey(fmt.Sprint(index))))
	lines = append(lines, rule, "")

	txid := item.TxID
	if txid == "" {
		txid = "(pending)"
	}
	lines = append(lines, fmt.Sprintf("  %s:         %s", bold(grey("TXID")), txid))
	if item.TxidVersion != "" {
		lines = append(lines, fmt.Sprintf("  %s:      %s (v%d)", bold(grey("Version")), item.TxidVersion, item.Version))
	}
	block := "Pending"
	if item.BlockNumber > 0 {
		block = fmt.Sprintf("#%d", item.BlockNumber)
	}
	lines = append(lines, fmt.Sprintf("  %s:        %s", bold(grey("Block")), block))
	lines = append(lines, fmt.Sprintf("  %s:    %s", bold(grey("Timestamp")), formatTimestamp(item.Timestamp)))
	lines = append(lines, fmt.Sprintf("  %s:      %s", bold(grey("Actions")), formatActionList(evaluated)))
	if r.Categories != nil {
		if hint := r.Categories.Category(item); hint != wallet.CategoryUnknown {
			lines = append(lines, fmt.Sprintf("  %s:  %s", bold(grey("Engine Hint")), dim(hint.String())))
		}
	}
	lines = append(lines, "")

	lines = r.erc20Section(ctx, lines, bold(green("Received ERC20s")), item.ReceiveERC20Amounts, erc20SectionOpts{
		counterpartyLabel: "From",
		counterparty:      func(a wallet.ERC20Amount) string { return a.SenderAddress },
		showShieldFee:     true,
		showBucket:        true,
	})
	lines = r.erc20Section(ctx, lines, bold(red("Transferred ERC20s")), item.TransferERC20Amounts, erc20SectionOpts{
		counterpartyLabel: "To",
		counterparty:      func(a wallet.ERC20Amount) string { return a.RecipientAddress },
	})
	lines = r.erc20Section(ctx, lines, bold(yellow("Unshielded ERC20s")), item.UnshieldERC20Amounts, erc20SectionOpts{
		counterpartyLabel: "To",
		counterparty:      func(a wallet.ERC20Amount) string { return a.RecipientAddress },
		showUnshieldFee:   true,
	})

	if len(item.ChangeERC20Amounts) > 0 {
		lines = append(lines, "  "+bold(dim("Change ERC20s"))+":")
		for i, chg := range item.ChangeERC20Amounts {
			lines = append(lines, "    "+r.amountLine(ctx, i, chg))
		}
		lines = append(lines, "")
	}

	if fee := item.BroadcasterFeeERC20Amount; fee != nil {
		lines = append(lines, "  "+bold(magenta("Broadcaster Fee"))+":")
		if info, err := r.Resolver.TokenInfo(ctx, r.Network, fee.TokenAddress); err == nil {
			lines = append(lines, "    "+tokens.FormatTokenAmount(fee.Amount.Big(), info.Decimals, info.Symbol, r.precision()))
			lines = append(lines, fmt.Sprintf("    %s: %s", grey("POI Valid"), poiLabel(fee.HasValidPOI)))
		} else {
			lines = append(lines, fmt.Sprintf("    %s — %s", tokens.TruncateHash(fee.TokenAddress, 8), fee.Amount.Big().String()))
		}
		lines = append(lines, "")
	}

	lines = r.nftSection(ctx, lines, bold(green("Received NFTs")), item.ReceiveNFTAmounts, "From",
		func(a wallet.NFTAmount) string { return a.SenderAddress }, false)
	lines = r.nftSection(ctx, lines, bold(red("Transferred NFTs")), item.TransferNFTAmounts, "To",
		func(a wallet.NFTAmount) string { return a.RecipientAddress }, false)
	lines = r.nftSection(ctx, lines, bold(yellow("Unshielded NFTs")), item.UnshieldNFTAmounts, "To",
		func(a wallet.NFTAmount) string { return a.RecipientAddress }, true)

	lines = append(lines, r.feeSummary(ctx, item)...)
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

type erc20SectionOpts struct {
	counterpartyLabel string
	counterparty      func(wallet.ERC20Amount) string
	showShieldFee     bool
	showUnshieldFee   bool
	showBucket        bool
}

func (r *Renderer) erc20Section(ctx context.Context, lines []string, header string, amounts []wallet.ERC20Amount, opts erc20SectionOpts) []string {
	if len(amounts) == 0 {
		return lines
	}
	lines = append(lines, "  "+header+":")
	for i, entry := range amounts {
		info, err := r.Resolver.TokenInfo(ctx, r.Network, entry.TokenAddress)
		if err != nil {
			lines = append(lines, fmt.Sprintf("    [%d] %s — %s",
				i, tokens.TruncateHash(entry.TokenAddress, 8), entry.Amount.Big().String()))
			continue
		}
		lines = append(lines, fmt.Sprintf("    [%d] %s",
			i, tokens.FormatTokenAmount(entry.Amount.Big(), info.Decimals, info.Symbol, r.precision())))
		if cp := opts.counterparty(entry); cp != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey(opts.counterpartyLabel), cp))
		}
		if entry.MemoText != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey("Memo"), entry.MemoText))
		}
		if opts.showShieldFee && entry.ShieldFee != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey("Shield Fee"), entry.ShieldFee))
		}
		if opts.showUnshieldFee && entry.UnshieldFee != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey("Unshield Fee"), entry.UnshieldFee))
		}
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("POI Valid"), poiLabel(entry.HasValidPOI)))
		if opts.showBucket && entry.BalanceBucket != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey("Bucket"), entry.BalanceBucket))
		}
	}
	return append(lines, "")
}

func (r *Renderer) amountLine(ctx context.Context, i int, entry wallet.ERC20Amount) string {
	info, err := r.Resolver.TokenInfo(ctx, r.Network, entry.TokenAddress)
	if err != nil {
		return fmt.Sprintf("[%d] %s — %s", i, tokens.TruncateHash(entry.TokenAddress, 8), entry.Amount.Big().String())
	}
	return fmt.Sprintf("[%d] %s", i, tokens.FormatTokenAmount(entry.Amount.Big(), info.Decimals, info.Symbol, r.precision()))
}

func (r *Renderer) nftSection(ctx context.Context, lines []string, header string, nfts []wallet.NFTAmount, counterpartyLabel string, counterparty func(wallet.NFTAmount) string, showUnshieldFee bool) []string {
	if len(nfts) == 0 {
		return lines
	}
	lines = append(lines, "  "+header+":")
	for i, nft := range nfts {
		label := tokens.TruncateHash(nft.NFTAddress, 8)
		if r.Names != nil {
			if name, err := r.Names.ContractName(ctx, r.Network, nft.NFTAddress); err == nil && name != "" {
				label = fmt.Sprintf("%s (%s)", name, tokens.TruncateHash(nft.NFTAddress, 4))
			}
		}
		lines = append(lines, fmt.Sprintf("    [%d] %s (ID: %s) x%s",
			i, label, nft.TokenSubID, nft.Amount.Big().String()))
		if cp := counterparty(nft); cp != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey(counterpartyLabel), cp))
		}
		if showUnshieldFee && nft.UnshieldFee != "" {
			lines = append(lines, fmt.Sprintf("        %s: %s", grey("Unshield Fee"), nft.UnshieldFee))
		}
	}
	return append(lines, "")
}

func (r *Renderer) feeSummary(ctx context.Context, item wallet.HistoryItem) []string {
	rule := grey(strings.Repeat("─", 60))
	lines := []string{rule, "  " + bold("Fees & Protocol Costs") + ":"}
	hasFees := false

	if fee := item.BroadcasterFeeERC20Amount; fee != nil {
		if info, err := r.Resolver.TokenInfo(ctx, r.Network, fee.TokenAddress); err == nil {
			lines = append(lines, fmt.Sprintf("    %s:  %s",
				grey("Broadcaster"), tokens.FormatTokenAmount(fee.Amount.Big(), info.Decimals, info.Symbol, r.precision())))
			hasFees = true
		}
	}

	for _, rcv := range item.ReceiveERC20Amounts {
		lines, hasFees = r.feeLine(ctx, lines, hasFees, "Shield Fee", rcv.TokenAddress, rcv.ShieldFee)
	}
	for _, uns := range item.UnshieldERC20Amounts {
		lines, hasFees = r.feeLine(ctx, lines, hasFees, "Unshield Fee", uns.TokenAddress, uns.UnshieldFee)
	}

	if !hasFees {
		lines = append(lines, "    "+dim("None / Self-Relayed"))
	}
	return append(lines, rule)
}

func (r *Renderer) feeLine(ctx context.Context, lines []string, hasFees bool, label, tokenAddress, rawFee string) ([]string, bool) {
	if rawFee == "" || rawFee == "0" || !tokens.IsNumeral(rawFee) {
		return lines, hasFees
	}
	info, err := r.Resolver.TokenInfo(ctx, r.Network, tokenAddress)
	if err != nil {
		return lines, hasFees
	}
	fee, ok := new(big.Int).SetString(rawFee, 10)
	if !ok || fee.Sign() <= 0 {
		return lines, hasFees
	}
	lines = append(lines, fmt.Sprintf("    %s: %s",
		grey(label), tokens.FormatTokenAmount(fee, info.Decimals, info.Symbol, r.precision())))
	return lines, true
}

func poiLabel(valid bool) string {
	if valid {
		return green("Yes")
	}
	return red("No")
}
